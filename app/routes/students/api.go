package students

import (
	"edutrack/app/config"
	"edutrack/app/database"
	"edutrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// Read-only roster endpoints. Student admission and record management live in
// the admin system; the finance service only needs pickers and name lookups.

func SetupStudentsRoutes(app *fiber.App) {
	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetStudentsAPI)
	api.Get("/:id", GetStudentAPI)
}

func GetStudentsAPI(c *fiber.Ctx) error {
	students, err := database.GetStudents(config.GetDB(), auth.SchoolID(c), c.Query("class_id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error", "details": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": students})
}

func GetStudentAPI(c *fiber.Ctx) error {
	student, err := database.GetStudentByID(config.GetDB(), auth.SchoolID(c), c.Params("id"))
	if err != nil {
		if err == database.ErrNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "Not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error", "details": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": student})
}
