package dashboard

import (
	"time"

	"edutrack/app/config"
	"edutrack/app/database"
	"edutrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App) {
	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware, auth.RequireAdmin())
	api.Get("/", GetDashboardAPI)
}

func GetDashboardAPI(c *fiber.Ctx) error {
	d, err := database.GetFinanceDashboard(config.GetDB(), auth.SchoolID(c), time.Now())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error", "details": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": d})
}
