package budgets

import (
	"edutrack/app/config"
	"edutrack/app/database"
	"edutrack/app/models"
	"edutrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func GetBudgetsAPI(c *fiber.Ctx) error {
	budgets, err := database.GetBudgets(config.GetDB(), auth.SchoolID(c))
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": budgets})
}

func GetBudgetAPI(c *fiber.Ctx) error {
	budget, err := database.GetBudgetByID(config.GetDB(), auth.SchoolID(c), c.Params("id"))
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": budget})
}

func GetActiveBudgetAPI(c *fiber.Ctx) error {
	budget, err := database.GetActiveBudget(config.GetDB(), auth.SchoolID(c))
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": budget})
}

func CreateBudgetAPI(c *fiber.Ctx) error {
	var budget models.Budget
	if err := c.BodyParser(&budget); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if budget.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	}

	budget.SchoolID = auth.SchoolID(c)
	if err := database.CreateBudget(config.GetDB(), &budget); err != nil {
		return errStatus(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "data": budget})
}

func ActivateBudgetAPI(c *fiber.Ctx) error {
	if err := database.SetActiveBudget(config.GetDB(), auth.SchoolID(c), c.Params("id")); err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Budget activated"})
}

func AddBudgetItemAPI(c *fiber.Ctx) error {
	var item models.BudgetItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if item.AccountID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "account_id is required"})
	}
	if item.BudgetedAmount.IsNegative() {
		return c.Status(400).JSON(fiber.Map{"error": "Budgeted amount cannot be negative"})
	}

	item.BudgetID = c.Params("id")
	if err := database.AddBudgetItem(config.GetDB(), auth.SchoolID(c), &item); err != nil {
		return errStatus(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "data": item})
}

func UpdateBudgetItemAPI(c *fiber.Ctx) error {
	var item models.BudgetItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if item.BudgetedAmount.IsNegative() {
		return c.Status(400).JSON(fiber.Map{"error": "Budgeted amount cannot be negative"})
	}

	item.ID = c.Params("itemId")
	if err := database.UpdateBudgetItem(config.GetDB(), auth.SchoolID(c), &item); err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

func DeleteBudgetItemAPI(c *fiber.Ctx) error {
	if err := database.DeleteBudgetItem(config.GetDB(), auth.SchoolID(c), c.Params("itemId")); err != nil {
		return errStatus(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetBudgetReportAPI returns the budget with derived actuals per item, the
// rollup summary, and threshold alerts in one response.
func GetBudgetReportAPI(c *fiber.Ctx) error {
	budget, err := database.GetBudgetWithActuals(config.GetDB(), auth.SchoolID(c), c.Params("id"))
	if err != nil {
		return errStatus(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"budget":  budget,
			"summary": models.SummarizeBudgetItems(budget.Items),
			"alerts":  models.ClassifyBudgetAlerts(budget.Items),
		},
	})
}
