package payroll

import (
	"edutrack/app/config"
	"edutrack/app/database"
	"edutrack/app/models"
	"edutrack/app/routes/auth"
	"edutrack/app/services"

	"github.com/gofiber/fiber/v2"
)

func GetStaffPaymentsAPI(c *fiber.Ctx) error {
	payments, err := database.GetStaffPayments(config.GetDB(), auth.SchoolID(c), c.Query("staff_id"))
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": payments})
}

func GetStaffPaymentAPI(c *fiber.Ctx) error {
	payment, err := database.GetStaffPaymentByID(config.GetDB(), auth.SchoolID(c), c.Params("id"))
	if err != nil {
		return errStatus(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": payment})
}

func CreateStaffPaymentAPI(c *fiber.Ctx) error {
	var sp models.StaffPayment
	if err := c.BodyParser(&sp); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if sp.StaffID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "staff_id is required"})
	}
	if !sp.Type.IsValid() {
		return c.Status(400).JSON(fiber.Map{"error": "Type must be salary or bonus"})
	}
	if sp.PeriodStart.IsZero() || sp.PeriodEnd.IsZero() || sp.PeriodEnd.Before(sp.PeriodStart) {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid payment period"})
	}

	sp.SchoolID = auth.SchoolID(c)
	if err := database.CreateStaffPayment(config.GetDB(), &sp); err != nil {
		return errStatus(c, err)
	}

	staff, err := database.GetUserByID(config.GetDB(), sp.StaffID)
	staffName := sp.StaffID
	if err == nil {
		staffName = staff.FullName()
	}

	// The disbursement is committed; ledger posting must not fail the request.
	services.PostStaffExpenseLogged(config.GetDB(), &sp, staffName)

	return c.Status(201).JSON(fiber.Map{"success": true, "data": sp})
}
