package fees

import (
	"edutrack/app/config"
	"edutrack/app/database"
	"edutrack/app/models"
	"edutrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func GetFeeTypesAPI(c *fiber.Ctx) error {
	feeTypes, err := database.GetFeeTypes(config.GetDB(), auth.SchoolID(c))
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": feeTypes})
}

func GetFeeTypeAPI(c *fiber.Ctx) error {
	ft, err := database.GetFeeTypeByID(config.GetDB(), auth.SchoolID(c), c.Params("id"))
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": ft})
}

func CreateFeeTypeAPI(c *fiber.Ctx) error {
	var ft models.FeeType
	if err := c.BodyParser(&ft); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if ft.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	}
	if !ft.Kind.IsValid() {
		return c.Status(400).JSON(fiber.Map{"error": "Kind must be mandatory or optional"})
	}

	ft.SchoolID = auth.SchoolID(c)
	if err := database.CreateFeeType(config.GetDB(), &ft); err != nil {
		return errStatus(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "data": ft})
}

func UpdateFeeTypeAPI(c *fiber.Ctx) error {
	var ft models.FeeType
	if err := c.BodyParser(&ft); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	ft.ID = c.Params("id")
	ft.SchoolID = auth.SchoolID(c)
	if err := database.UpdateFeeType(config.GetDB(), &ft); err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": ft})
}

func DeleteFeeTypeAPI(c *fiber.Ctx) error {
	if err := database.DeleteFeeType(config.GetDB(), auth.SchoolID(c), c.Params("id")); err != nil {
		return errStatus(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
