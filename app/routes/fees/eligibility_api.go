package fees

import (
	"edutrack/app/config"
	"edutrack/app/database"
	"edutrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// GetFeeRosterAPI lists the students currently on the class fee's roster.
func GetFeeRosterAPI(c *fiber.Ctx) error {
	students, err := database.ListFeeRoster(config.GetDB(), auth.SchoolID(c), c.Params("id"))
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": students})
}

// GetEligibleStudentsAPI lists candidates for the roster: students of the
// fee's target class not yet added to it.
func GetEligibleStudentsAPI(c *fiber.Ctx) error {
	students, err := database.ListEligibleStudents(config.GetDB(), auth.SchoolID(c), c.Params("id"))
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": students})
}

func AddStudentsToFeeAPI(c *fiber.Ctx) error {
	type AddStudentsRequest struct {
		StudentIDs []string `json:"student_ids"`
	}

	var req AddStudentsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.StudentIDs) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "student_ids is required"})
	}

	added, err := database.AddStudentsToFee(config.GetDB(), auth.SchoolID(c), c.Params("id"), req.StudentIDs)
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"added": added}})
}

func RemoveStudentFromFeeAPI(c *fiber.Ctx) error {
	err := database.RemoveStudentFromFee(config.GetDB(), auth.SchoolID(c), c.Params("id"), c.Params("studentId"))
	if err != nil {
		return errStatus(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
