package payments

import (
	"crypto/subtle"
	"os"
	"time"

	"edutrack/app/config"
	"edutrack/app/database"
	"edutrack/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// GatewayCallbackAPI ingests a payment notification from the mobile-money
// gateway. Amounts arrive in minor units. The gateway retries on timeout, so
// the reference doubles as an idempotency key: a replay returns the original
// payment with a 200 instead of recording a duplicate.
func GatewayCallbackAPI(c *fiber.Ctx) error {
	secret := os.Getenv("GATEWAY_SECRET")
	provided := c.Get("X-Gateway-Secret")
	if secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(provided)) != 1 {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid gateway secret"})
	}

	type GatewayCallbackRequest struct {
		SchoolID    string `json:"school_id"`
		StudentID   string `json:"student_id"`
		ClassFeeID  string `json:"class_fee_id"`
		AmountMinor int64  `json:"amount_minor"`
		Reference   string `json:"reference"`
		PaidAt      int64  `json:"paid_at"` // unix seconds
	}

	var req GatewayCallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.SchoolID == "" || req.StudentID == "" || req.ClassFeeID == "" || req.Reference == "" {
		return c.Status(400).JSON(fiber.Map{"error": "school_id, student_id, class_fee_id and reference are required"})
	}

	paidDate := time.Now()
	if req.PaidAt > 0 {
		paidDate = time.Unix(req.PaidAt, 0)
	}

	receipt, err := database.RecordStudentPayment(config.GetDB(), database.RecordPaymentInput{
		SchoolID:         req.SchoolID,
		StudentID:        req.StudentID,
		ClassFeeID:       req.ClassFeeID,
		Amount:           decimal.New(req.AmountMinor, -2),
		Method:           "gateway",
		GatewayReference: &req.Reference,
		PaidDate:         paidDate,
	})
	if err != nil {
		return errStatus(c, err)
	}

	if receipt.AlreadyRecorded {
		return c.JSON(fiber.Map{"success": true, "data": receipt})
	}

	services.PostFeeIncomeLogged(config.GetDB(), receipt)
	return c.Status(201).JSON(fiber.Map{"success": true, "data": receipt})
}
