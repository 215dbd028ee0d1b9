package budgets

import (
	"edutrack/app/database"
	"edutrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupBudgetsRoutes(app *fiber.App) {
	api := app.Group("/api/budgets")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetBudgetsAPI)
	api.Get("/active", GetActiveBudgetAPI)
	api.Get("/:id", GetBudgetAPI)
	api.Get("/:id/report", GetBudgetReportAPI)
	api.Post("/", auth.RequireAdmin(), CreateBudgetAPI)
	api.Post("/:id/activate", auth.RequireAdmin(), ActivateBudgetAPI)
	api.Post("/:id/items", auth.RequireAdmin(), AddBudgetItemAPI)
	api.Put("/items/:itemId", auth.RequireAdmin(), UpdateBudgetItemAPI)
	api.Delete("/items/:itemId", auth.RequireAdmin(), DeleteBudgetItemAPI)
}

func errStatus(c *fiber.Ctx, err error) error {
	switch err {
	case database.ErrNotFound:
		return c.Status(404).JSON(fiber.Map{"error": "Not found"})
	case database.ErrDuplicateItem:
		return c.Status(409).JSON(fiber.Map{"error": "A budget item for this account already exists"})
	case database.ErrInvalidAmount:
		return c.Status(400).JSON(fiber.Map{"error": "Invalid budget dates or amount"})
	}
	return c.Status(500).JSON(fiber.Map{"error": "Database error", "details": err.Error()})
}
