package transactions

import (
	"strconv"
	"time"

	"edutrack/app/config"
	"edutrack/app/database"
	"edutrack/app/models"
	"edutrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Manual ledger entries get their own prefix so bridge-posted references
// remain recognizable at a glance.
const manualReferencePrefix = "TXN"

func GetTransactionsAPI(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	filters := database.TransactionFilters{
		AccountID: c.Query("account_id"),
		Type:      models.TransactionType(c.Query("type")),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
		Limit:     limit,
		Offset:    offset,
	}
	if filters.Type != "" && !filters.Type.IsValid() {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction type"})
	}

	txns, err := database.GetTransactions(config.GetDB(), auth.SchoolID(c), filters)
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": txns})
}

func GetTransactionAPI(c *fiber.Ctx) error {
	t, err := database.GetTransactionByID(config.GetDB(), auth.SchoolID(c), c.Params("id"))
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": t})
}

func CreateTransactionAPI(c *fiber.Ctx) error {
	type CreateTransactionRequest struct {
		AccountID   string                 `json:"account_id"`
		Amount      decimal.Decimal        `json:"amount"`
		Type        models.TransactionType `json:"type"`
		Date        time.Time              `json:"date"`
		Description string                 `json:"description"`
		Notes       string                 `json:"notes"`
	}

	var req CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.AccountID == "" || req.Description == "" {
		return c.Status(400).JSON(fiber.Map{"error": "account_id and description are required"})
	}
	if !req.Amount.IsPositive() {
		return c.Status(400).JSON(fiber.Map{"error": "Amount must be positive"})
	}
	if !req.Type.IsValid() {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction type"})
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	schoolID := auth.SchoolID(c)
	db := config.GetDB()

	tx, err := db.Begin()
	if err != nil {
		return errStatus(c, err)
	}
	defer tx.Rollback()

	reference, err := database.NextTransactionReference(tx, schoolID, manualReferencePrefix, time.Now())
	if err != nil {
		return errStatus(c, err)
	}

	t := &models.Transaction{
		SchoolID:    schoolID,
		Reference:   reference,
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Type:        req.Type,
		Date:        req.Date,
		Description: req.Description,
		Notes:       req.Notes,
	}
	if err := database.InsertTransaction(tx, t); err != nil {
		return errStatus(c, err)
	}
	if err := tx.Commit(); err != nil {
		return errStatus(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "data": t})
}

func UpdateTransactionAPI(c *fiber.Ctx) error {
	var t models.Transaction
	if err := c.BodyParser(&t); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !t.Amount.IsPositive() {
		return c.Status(400).JSON(fiber.Map{"error": "Amount must be positive"})
	}
	if !t.Type.IsValid() {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction type"})
	}

	t.ID = c.Params("id")
	t.SchoolID = auth.SchoolID(c)
	if err := database.UpdateTransaction(config.GetDB(), &t); err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": t})
}

func DeleteTransactionAPI(c *fiber.Ctx) error {
	if err := database.DeleteTransaction(config.GetDB(), auth.SchoolID(c), c.Params("id")); err != nil {
		return errStatus(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
