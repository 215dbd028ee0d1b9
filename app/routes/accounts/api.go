package accounts

import (
	"edutrack/app/config"
	"edutrack/app/database"
	"edutrack/app/models"
	"edutrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func GetAccountsAPI(c *fiber.Ctx) error {
	accountType := models.AccountType(c.Query("type"))
	if accountType != "" && !accountType.IsValid() {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid account type"})
	}

	accounts, err := database.GetAccounts(config.GetDB(), auth.SchoolID(c), accountType)
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": accounts})
}

func GetAccountAPI(c *fiber.Ctx) error {
	account, err := database.GetAccountByID(config.GetDB(), auth.SchoolID(c), c.Params("id"))
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": account})
}

func CreateAccountAPI(c *fiber.Ctx) error {
	var account models.Account
	if err := c.BodyParser(&account); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if account.Code == "" || account.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Code and name are required"})
	}
	if !account.Type.IsValid() {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid account type"})
	}

	account.SchoolID = auth.SchoolID(c)
	if err := database.CreateAccount(config.GetDB(), &account); err != nil {
		return errStatus(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "data": account})
}

func UpdateAccountAPI(c *fiber.Ctx) error {
	var account models.Account
	if err := c.BodyParser(&account); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !account.Type.IsValid() {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid account type"})
	}

	account.ID = c.Params("id")
	account.SchoolID = auth.SchoolID(c)
	if err := database.UpdateAccount(config.GetDB(), &account); err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": account})
}

func DeleteAccountAPI(c *fiber.Ctx) error {
	if err := database.DeleteAccount(config.GetDB(), auth.SchoolID(c), c.Params("id")); err != nil {
		return errStatus(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
