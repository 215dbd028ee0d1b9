package fees

import (
	"edutrack/app/config"
	"edutrack/app/database"
	"edutrack/app/models"
	"edutrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func GetClassFeesAPI(c *fiber.Ctx) error {
	fees, err := database.GetClassFees(config.GetDB(), auth.SchoolID(c), c.Query("class_id"))
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fees})
}

func GetClassFeeAPI(c *fiber.Ctx) error {
	cf, err := database.GetClassFeeByID(config.GetDB(), auth.SchoolID(c), c.Params("id"))
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": cf})
}

func CreateClassFeeAPI(c *fiber.Ctx) error {
	var cf models.ClassFee
	if err := c.BodyParser(&cf); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if cf.FeeTypeID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "fee_type_id is required"})
	}
	if !cf.Amount.IsPositive() {
		return c.Status(400).JSON(fiber.Map{"error": "Amount must be positive"})
	}
	if cf.DueDate.IsZero() {
		return c.Status(400).JSON(fiber.Map{"error": "due_date is required"})
	}

	cf.SchoolID = auth.SchoolID(c)
	if err := database.CreateClassFee(config.GetDB(), &cf); err != nil {
		return errStatus(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "data": cf})
}

func UpdateClassFeeAPI(c *fiber.Ctx) error {
	var cf models.ClassFee
	if err := c.BodyParser(&cf); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !cf.Amount.IsPositive() {
		return c.Status(400).JSON(fiber.Map{"error": "Amount must be positive"})
	}

	cf.ID = c.Params("id")
	cf.SchoolID = auth.SchoolID(c)
	if err := database.UpdateClassFee(config.GetDB(), &cf); err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": cf})
}

func DeleteClassFeeAPI(c *fiber.Ctx) error {
	if err := database.DeleteClassFee(config.GetDB(), auth.SchoolID(c), c.Params("id")); err != nil {
		return errStatus(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
