package database

import (
	"database/sql"

	"edutrack/app/models"
)

// CreateStaffPayment records a payroll disbursement. The caller posts the
// matching expense transaction through the reconciliation bridge after the
// row is committed.
func CreateStaffPayment(db *sql.DB, sp *models.StaffPayment) error {
	if !sp.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	var exists bool
	err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND school_id = $2 AND is_active = true)`,
		sp.StaffID, sp.SchoolID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	query := `INSERT INTO staff_payments (school_id, staff_id, amount, type, period_start, period_end, paid_at, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), $7)
			  RETURNING id, paid_at`

	return db.QueryRow(query, sp.SchoolID, sp.StaffID, sp.Amount, sp.Type,
		sp.PeriodStart, sp.PeriodEnd, sp.Notes).Scan(&sp.ID, &sp.PaidAt)
}

func GetStaffPayments(db *sql.DB, schoolID, staffID string) ([]*models.StaffPayment, error) {
	query := `SELECT sp.id, sp.school_id, sp.staff_id, sp.amount, sp.type,
			  sp.period_start, sp.period_end, sp.paid_at, sp.notes,
			  u.id, u.first_name, u.last_name, u.email
			  FROM staff_payments sp
			  JOIN users u ON sp.staff_id = u.id
			  WHERE sp.school_id = $1`
	args := []interface{}{schoolID}
	if staffID != "" {
		query += ` AND sp.staff_id = $2`
		args = append(args, staffID)
	}
	query += ` ORDER BY sp.paid_at DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []*models.StaffPayment{}
	for rows.Next() {
		sp := &models.StaffPayment{Staff: &models.User{}}
		var notes sql.NullString
		err := rows.Scan(&sp.ID, &sp.SchoolID, &sp.StaffID, &sp.Amount, &sp.Type,
			&sp.PeriodStart, &sp.PeriodEnd, &sp.PaidAt, &notes,
			&sp.Staff.ID, &sp.Staff.FirstName, &sp.Staff.LastName, &sp.Staff.Email)
		if err != nil {
			return nil, err
		}
		sp.Notes = notes.String
		payments = append(payments, sp)
	}
	return payments, nil
}

func GetStaffPaymentByID(db *sql.DB, schoolID, paymentID string) (*models.StaffPayment, error) {
	sp := &models.StaffPayment{Staff: &models.User{}}
	var notes sql.NullString
	query := `SELECT sp.id, sp.school_id, sp.staff_id, sp.amount, sp.type,
			  sp.period_start, sp.period_end, sp.paid_at, sp.notes,
			  u.id, u.first_name, u.last_name, u.email
			  FROM staff_payments sp
			  JOIN users u ON sp.staff_id = u.id
			  WHERE sp.id = $1 AND sp.school_id = $2`

	err := db.QueryRow(query, paymentID, schoolID).Scan(
		&sp.ID, &sp.SchoolID, &sp.StaffID, &sp.Amount, &sp.Type,
		&sp.PeriodStart, &sp.PeriodEnd, &sp.PaidAt, &notes,
		&sp.Staff.ID, &sp.Staff.FirstName, &sp.Staff.LastName, &sp.Staff.Email,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	sp.Notes = notes.String
	return sp, nil
}
