package fees

import (
	"edutrack/app/database"
	"edutrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupFeesRoutes(app *fiber.App) {
	// Fee type catalog
	feeTypes := app.Group("/api/fee-types")
	feeTypes.Use(auth.AuthMiddleware)
	feeTypes.Get("/", GetFeeTypesAPI)
	feeTypes.Get("/:id", GetFeeTypeAPI)
	feeTypes.Post("/", auth.RequireAdmin(), CreateFeeTypeAPI)
	feeTypes.Put("/:id", auth.RequireAdmin(), UpdateFeeTypeAPI)
	feeTypes.Delete("/:id", auth.RequireAdmin(), DeleteFeeTypeAPI)

	// Class fees and their rosters
	classFees := app.Group("/api/class-fees")
	classFees.Use(auth.AuthMiddleware)
	classFees.Get("/", GetClassFeesAPI)
	classFees.Get("/:id", GetClassFeeAPI)
	classFees.Post("/", auth.RequireAdmin(), CreateClassFeeAPI)
	classFees.Put("/:id", auth.RequireAdmin(), UpdateClassFeeAPI)
	classFees.Delete("/:id", auth.RequireAdmin(), DeleteClassFeeAPI)
	classFees.Get("/:id/students", GetFeeRosterAPI)
	classFees.Get("/:id/eligible-students", GetEligibleStudentsAPI)
	classFees.Post("/:id/students", auth.RequireAdmin(), AddStudentsToFeeAPI)
	classFees.Delete("/:id/students/:studentId", auth.RequireAdmin(), RemoveStudentFromFeeAPI)

	// Optional fee opt-ins. Students and parents manage their own; the
	// handlers enforce ownership for non-staff callers.
	optIns := app.Group("/api/opt-ins")
	optIns.Use(auth.AuthMiddleware)
	optIns.Get("/students/:studentId", GetStudentOptInsAPI)
	optIns.Post("/", OptIntoFeeAPI)
	optIns.Delete("/", OptOutOfFeeAPI)
}

// errStatus maps storage sentinels to HTTP responses; unknown errors are 500s.
func errStatus(c *fiber.Ctx, err error) error {
	switch err {
	case database.ErrNotFound:
		return c.Status(404).JSON(fiber.Map{"error": "Not found"})
	case database.ErrPaymentsExist:
		return c.Status(409).JSON(fiber.Map{"error": "Payments have been recorded; operation refused"})
	case database.ErrFeeTypeInUse:
		return c.Status(409).JSON(fiber.Map{"error": "Class fees reference this fee type; delete them first"})
	case database.ErrDuplicateItem:
		return c.Status(409).JSON(fiber.Map{"error": "Already exists"})
	case database.ErrNotOptional:
		return c.Status(422).JSON(fiber.Map{"error": "Fee type is not optional"})
	case database.ErrNoClassFee:
		return c.Status(422).JSON(fiber.Map{"error": "No class fee exists for this fee type and class"})
	}
	return c.Status(500).JSON(fiber.Map{"error": "Database error", "details": err.Error()})
}
