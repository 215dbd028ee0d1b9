package payments

import (
	"edutrack/app/database"
	"edutrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentsRoutes(app *fiber.App) {
	// Gateway callbacks authenticate with a shared secret, not a user token.
	app.Post("/api/payments/gateway-callback", GatewayCallbackAPI)

	api := app.Group("/api/payments")
	api.Use(auth.AuthMiddleware)
	api.Post("/", auth.RequireAdmin(), RecordPaymentAPI)
	api.Get("/students/:studentId/ledger", GetStudentLedgerAPI)
	api.Get("/collection-summary", auth.RequireAdmin(), GetCollectionSummariesAPI)
	api.Get("/unposted", auth.RequireAdmin(), GetUnpostedPaymentsAPI)
	api.Post("/unposted/repost", auth.RequireAdmin(), RepostUnpostedAPI)
}

func errStatus(c *fiber.Ctx, err error) error {
	if database.IsOverpayment(err) {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}
	switch err {
	case database.ErrNotFound:
		return c.Status(404).JSON(fiber.Map{"error": "Not found"})
	case database.ErrNotEligible:
		return c.Status(422).JSON(fiber.Map{"error": "Student is not eligible for this fee"})
	case database.ErrInvalidAmount:
		return c.Status(400).JSON(fiber.Map{"error": "Amount must be greater than zero"})
	}
	return c.Status(500).JSON(fiber.Map{"error": "Database error", "details": err.Error()})
}
