package classes

import (
	"edutrack/app/config"
	"edutrack/app/database"
	"edutrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// Read-only class endpoints backing the fee configuration pickers.

func SetupClassesRoutes(app *fiber.App) {
	api := app.Group("/api/classes")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetClassesAPI)
	api.Get("/:id", GetClassAPI)
}

func GetClassesAPI(c *fiber.Ctx) error {
	classList, err := database.GetClasses(config.GetDB(), auth.SchoolID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error", "details": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": classList})
}

func GetClassAPI(c *fiber.Ctx) error {
	class, err := database.GetClassByID(config.GetDB(), auth.SchoolID(c), c.Params("id"))
	if err != nil {
		if err == database.ErrNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "Not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error", "details": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": class})
}
