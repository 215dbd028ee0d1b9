package payroll

import (
	"edutrack/app/database"
	"edutrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupPayrollRoutes(app *fiber.App) {
	api := app.Group("/api/staff-payments")
	api.Use(auth.AuthMiddleware, auth.RequireAdmin())
	api.Get("/", GetStaffPaymentsAPI)
	api.Get("/:id", GetStaffPaymentAPI)
	api.Post("/", CreateStaffPaymentAPI)
}

func errStatus(c *fiber.Ctx, err error) error {
	switch err {
	case database.ErrNotFound:
		return c.Status(404).JSON(fiber.Map{"error": "Not found"})
	case database.ErrInvalidAmount:
		return c.Status(400).JSON(fiber.Map{"error": "Amount must be greater than zero"})
	}
	return c.Status(500).JSON(fiber.Map{"error": "Database error", "details": err.Error()})
}
