package payments

import (
	"time"

	"edutrack/app/config"
	"edutrack/app/database"
	"edutrack/app/models"
	"edutrack/app/routes/auth"
	"edutrack/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func RecordPaymentAPI(c *fiber.Ctx) error {
	type RecordPaymentRequest struct {
		StudentID  string          `json:"student_id"`
		ClassFeeID string          `json:"class_fee_id"`
		Amount     decimal.Decimal `json:"amount"`
		Method     string          `json:"method"`
		PaidDate   time.Time       `json:"paid_date"`
	}

	var req RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.StudentID == "" || req.ClassFeeID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "student_id and class_fee_id are required"})
	}
	if req.PaidDate.IsZero() {
		req.PaidDate = time.Now()
	}

	receipt, err := database.RecordStudentPayment(config.GetDB(), database.RecordPaymentInput{
		SchoolID:   auth.SchoolID(c),
		StudentID:  req.StudentID,
		ClassFeeID: req.ClassFeeID,
		Amount:     req.Amount,
		Method:     req.Method,
		PaidDate:   req.PaidDate,
	})
	if err != nil {
		return errStatus(c, err)
	}

	// The payment is committed; ledger posting must not fail the request.
	services.PostFeeIncomeLogged(config.GetDB(), receipt)

	return c.Status(201).JSON(fiber.Map{"success": true, "data": receipt})
}

// GetStudentLedgerAPI returns a student's full fee history. Staff can read
// any student in their school; other users only the student linked to their
// own account.
func GetStudentLedgerAPI(c *fiber.Ctx) error {
	studentID := c.Params("studentId")
	user := c.Locals("user").(*models.User)

	if !user.HasRole("admin") && !user.HasRole("bursar") && !user.HasRole("teacher") {
		own, err := database.GetStudentByUserID(config.GetDB(), auth.SchoolID(c), user.ID)
		if err != nil || own.ID != studentID {
			return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
		}
	}

	entries, err := database.GetStudentLedger(config.GetDB(), auth.SchoolID(c), studentID, time.Now())
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": entries})
}

func GetCollectionSummariesAPI(c *fiber.Ctx) error {
	summaries, err := database.GetClassFeeCollectionSummaries(config.GetDB(), auth.SchoolID(c), c.Query("class_id"))
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": summaries})
}

func GetUnpostedPaymentsAPI(c *fiber.Ctx) error {
	unposted, err := services.UnpostedFeePayments(config.GetDB(), auth.SchoolID(c))
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": unposted})
}

func RepostUnpostedAPI(c *fiber.Ctx) error {
	posted, err := services.RepostUnpostedFeePayments(config.GetDB(), auth.SchoolID(c))
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"posted": posted}})
}
