package fees

import (
	"edutrack/app/config"
	"edutrack/app/database"
	"edutrack/app/models"
	"edutrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// canActForStudent reports whether the caller may manage a student's
// opt-ins. Staff act for any student in their school; everyone else only
// for the student linked to their own account.
func canActForStudent(c *fiber.Ctx, studentID string) bool {
	user := c.Locals("user").(*models.User)
	if user.HasRole("admin") || user.HasRole("bursar") {
		return true
	}
	own, err := database.GetStudentByUserID(config.GetDB(), auth.SchoolID(c), user.ID)
	return err == nil && own.ID == studentID
}

func GetStudentOptInsAPI(c *fiber.Ctx) error {
	optIns, err := database.GetStudentOptIns(config.GetDB(), auth.SchoolID(c), c.Params("studentId"))
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": optIns})
}

func OptIntoFeeAPI(c *fiber.Ctx) error {
	var optIn models.OptionalFeeOptIn
	if err := c.BodyParser(&optIn); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if optIn.StudentID == "" || optIn.FeeTypeID == "" || optIn.ClassID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "student_id, fee_type_id and class_id are required"})
	}

	if !canActForStudent(c, optIn.StudentID) {
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}

	optIn.SchoolID = auth.SchoolID(c)
	if err := database.OptIntoFee(config.GetDB(), &optIn); err != nil {
		return errStatus(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "data": optIn})
}

func OptOutOfFeeAPI(c *fiber.Ctx) error {
	type OptOutRequest struct {
		StudentID string `json:"student_id"`
		FeeTypeID string `json:"fee_type_id"`
		ClassID   string `json:"class_id"`
	}

	var req OptOutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.StudentID == "" || req.FeeTypeID == "" || req.ClassID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "student_id, fee_type_id and class_id are required"})
	}

	if !canActForStudent(c, req.StudentID) {
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}

	err := database.OptOutOfFee(config.GetDB(), auth.SchoolID(c), req.StudentID, req.FeeTypeID, req.ClassID)
	if err != nil {
		return errStatus(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
