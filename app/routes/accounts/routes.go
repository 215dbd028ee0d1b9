package accounts

import (
	"edutrack/app/database"
	"edutrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAccountsRoutes(app *fiber.App) {
	api := app.Group("/api/accounts")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetAccountsAPI)
	api.Get("/:id", GetAccountAPI)
	api.Post("/", auth.RequireAdmin(), CreateAccountAPI)
	api.Put("/:id", auth.RequireAdmin(), UpdateAccountAPI)
	api.Delete("/:id", auth.RequireAdmin(), DeleteAccountAPI)
}

func errStatus(c *fiber.Ctx, err error) error {
	switch err {
	case database.ErrNotFound:
		return c.Status(404).JSON(fiber.Map{"error": "Not found"})
	case database.ErrDuplicateItem:
		return c.Status(409).JSON(fiber.Map{"error": "An account with this code already exists"})
	case database.ErrAccountInUse:
		return c.Status(409).JSON(fiber.Map{"error": "Account has transactions and cannot be deleted"})
	}
	return c.Status(500).JSON(fiber.Map{"error": "Database error", "details": err.Error()})
}
