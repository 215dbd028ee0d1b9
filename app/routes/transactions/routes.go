package transactions

import (
	"edutrack/app/database"
	"edutrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupTransactionsRoutes(app *fiber.App) {
	api := app.Group("/api/transactions")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetTransactionsAPI)
	api.Get("/:id", GetTransactionAPI)
	api.Post("/", auth.RequireAdmin(), CreateTransactionAPI)
	api.Put("/:id", auth.RequireAdmin(), UpdateTransactionAPI)
	api.Delete("/:id", auth.RequireAdmin(), DeleteTransactionAPI)
}

func errStatus(c *fiber.Ctx, err error) error {
	switch err {
	case database.ErrNotFound:
		return c.Status(404).JSON(fiber.Map{"error": "Not found"})
	}
	return c.Status(500).JSON(fiber.Map{"error": "Database error", "details": err.Error()})
}
