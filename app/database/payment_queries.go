package database

import (
	"database/sql"
	"time"

	"edutrack/app/models"

	"github.com/shopspring/decimal"
)

// RecordPaymentInput carries everything needed to record one installment.
type RecordPaymentInput struct {
	SchoolID   string
	StudentID  string
	ClassFeeID string
	Amount     decimal.Decimal
	Method     string
	// GatewayReference is set only for payments arriving via the gateway
	// callback; replays of the same reference return the original payment.
	GatewayReference *string
	PaidDate         time.Time
}

// RecordStudentPayment records a partial payment against a (student, class
// fee) pair. The class fee row is locked for the duration of the transaction
// so two concurrent payments cannot both pass the overpayment check and push
// the running total past the fee amount.
func RecordStudentPayment(db *sql.DB, input RecordPaymentInput) (*models.PaymentReceipt, error) {
	if !input.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if input.GatewayReference != nil {
		receipt, err := findPaymentByGatewayRef(tx, input.SchoolID, *input.GatewayReference)
		if err != nil && err != sql.ErrNoRows {
			return nil, err
		}
		if err == nil {
			receipt.AlreadyRecorded = true
			return receipt, nil
		}
	}

	var feeAmount decimal.Decimal
	var dueDate time.Time
	var feeTypeName string
	err = tx.QueryRow(`SELECT cf.amount, cf.due_date, ft.name
					   FROM class_fees cf
					   JOIN fee_types ft ON cf.fee_type_id = ft.id
					   WHERE cf.id = $1 AND cf.school_id = $2 AND cf.deleted_at IS NULL
					   FOR UPDATE OF cf`,
		input.ClassFeeID, input.SchoolID).Scan(&feeAmount, &dueDate, &feeTypeName)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	owes, err := hasObligation(tx, input.SchoolID, input.StudentID, input.ClassFeeID)
	if err != nil {
		return nil, err
	}
	if !owes {
		return nil, ErrNotEligible
	}

	var totalPaid decimal.Decimal
	err = tx.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM student_fee_payments
					   WHERE class_fee_id = $1 AND student_id = $2`,
		input.ClassFeeID, input.StudentID).Scan(&totalPaid)
	if err != nil {
		return nil, err
	}

	remaining := feeAmount.Sub(totalPaid)
	if input.Amount.GreaterThan(remaining) {
		return nil, &OverpaymentError{Requested: input.Amount, Remaining: remaining}
	}

	payment := &models.StudentFeePayment{
		SchoolID:         input.SchoolID,
		StudentID:        input.StudentID,
		ClassFeeID:       input.ClassFeeID,
		Amount:           input.Amount,
		Method:           input.Method,
		GatewayReference: input.GatewayReference,
		PaidDate:         input.PaidDate,
	}
	err = tx.QueryRow(`INSERT INTO student_fee_payments (school_id, student_id, class_fee_id, amount, method, gateway_reference, paid_date, created_at)
					   VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
					   RETURNING id, created_at`,
		payment.SchoolID, payment.StudentID, payment.ClassFeeID, payment.Amount,
		payment.Method, payment.GatewayReference, payment.PaidDate,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return nil, err
	}

	var studentName string
	var className sql.NullString
	err = tx.QueryRow(`SELECT s.first_name || ' ' || s.last_name, c.name
					   FROM students s
					   LEFT JOIN classes c ON s.class_id = c.id
					   WHERE s.id = $1 AND s.school_id = $2`,
		input.StudentID, input.SchoolID).Scan(&studentName, &className)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	newTotal := totalPaid.Add(input.Amount)
	return &models.PaymentReceipt{
		Payment:          payment,
		StudentName:      studentName,
		ClassName:        className.String,
		FeeTypeName:      feeTypeName,
		FeeAmount:        feeAmount,
		TotalPaidToDate:  newTotal,
		RemainingBalance: feeAmount.Sub(newTotal),
	}, nil
}

// findPaymentByGatewayRef rebuilds the receipt for an already-recorded
// gateway payment.
func findPaymentByGatewayRef(q Querier, schoolID, gatewayRef string) (*models.PaymentReceipt, error) {
	p := &models.StudentFeePayment{}
	var feeAmount decimal.Decimal
	var feeTypeName, studentName string
	var className sql.NullString
	err := q.QueryRow(`SELECT p.id, p.school_id, p.student_id, p.class_fee_id, p.amount, p.method,
					   p.gateway_reference, p.paid_date, p.created_at,
					   cf.amount, ft.name, s.first_name || ' ' || s.last_name, c.name
					   FROM student_fee_payments p
					   JOIN class_fees cf ON p.class_fee_id = cf.id
					   JOIN fee_types ft ON cf.fee_type_id = ft.id
					   JOIN students s ON p.student_id = s.id
					   LEFT JOIN classes c ON s.class_id = c.id
					   WHERE p.school_id = $1 AND p.gateway_reference = $2`,
		schoolID, gatewayRef).Scan(
		&p.ID, &p.SchoolID, &p.StudentID, &p.ClassFeeID, &p.Amount, &p.Method,
		&p.GatewayReference, &p.PaidDate, &p.CreatedAt,
		&feeAmount, &feeTypeName, &studentName, &className,
	)
	if err != nil {
		return nil, err
	}

	var totalPaid decimal.Decimal
	err = q.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM student_fee_payments
					  WHERE class_fee_id = $1 AND student_id = $2`,
		p.ClassFeeID, p.StudentID).Scan(&totalPaid)
	if err != nil {
		return nil, err
	}

	return &models.PaymentReceipt{
		Payment:          p,
		StudentName:      studentName,
		ClassName:        className.String,
		FeeTypeName:      feeTypeName,
		FeeAmount:        feeAmount,
		TotalPaidToDate:  totalPaid,
		RemainingBalance: feeAmount.Sub(totalPaid),
	}, nil
}

// GetStudentLedger assembles a student's full fee history: every obligation
// they currently hold (mandatory roster entries plus live opt-ins), the
// derived status for each, and the payments behind the totals.
func GetStudentLedger(db *sql.DB, schoolID, studentID string, now time.Time) ([]*models.StudentLedgerEntry, error) {
	query := `SELECT cf.id, cf.school_id, cf.fee_type_id, cf.class_id, cf.amount, cf.due_date,
			  cf.created_at, cf.updated_at, ft.name, ft.kind, COALESCE(c.name, '')
			  FROM class_fees cf
			  JOIN fee_types ft ON cf.fee_type_id = ft.id
			  LEFT JOIN classes c ON cf.class_id = c.id
			  WHERE cf.school_id = $1 AND cf.deleted_at IS NULL
			  AND (
				  (ft.kind = 'mandatory' AND EXISTS (
					  SELECT 1 FROM fee_eligibility fe
					  WHERE fe.class_fee_id = cf.id AND fe.student_id = $2))
				  OR
				  (ft.kind = 'optional' AND EXISTS (
					  SELECT 1 FROM optional_fee_opt_ins o
					  WHERE o.school_id = cf.school_id AND o.student_id = $2
					  AND o.fee_type_id = cf.fee_type_id AND o.class_id = cf.class_id))
			  )
			  ORDER BY cf.due_date`

	rows, err := db.Query(query, schoolID, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*models.StudentLedgerEntry{}
	for rows.Next() {
		cf := &models.ClassFee{}
		entry := &models.StudentLedgerEntry{ClassFee: cf}
		err := rows.Scan(&cf.ID, &cf.SchoolID, &cf.FeeTypeID, &cf.ClassID, &cf.Amount, &cf.DueDate,
			&cf.CreatedAt, &cf.UpdatedAt, &entry.FeeTypeName, &entry.FeeKind, &entry.ClassName)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, entry := range entries {
		payments, err := getPaymentsForPair(db, schoolID, studentID, entry.ClassFee.ID)
		if err != nil {
			return nil, err
		}
		entry.Payments = payments

		totalPaid := decimal.Zero
		for _, p := range payments {
			totalPaid = totalPaid.Add(p.Amount)
		}
		entry.Status = models.ComputeFeeStatus(entry.ClassFee.Amount, totalPaid, entry.ClassFee.DueDate, now)
	}
	return entries, nil
}

func getPaymentsForPair(db *sql.DB, schoolID, studentID, classFeeID string) ([]*models.StudentFeePayment, error) {
	query := `SELECT id, school_id, student_id, class_fee_id, amount, method, gateway_reference, paid_date, created_at
			  FROM student_fee_payments
			  WHERE school_id = $1 AND student_id = $2 AND class_fee_id = $3
			  ORDER BY paid_date, created_at`

	rows, err := db.Query(query, schoolID, studentID, classFeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []*models.StudentFeePayment{}
	for rows.Next() {
		p := &models.StudentFeePayment{}
		err := rows.Scan(&p.ID, &p.SchoolID, &p.StudentID, &p.ClassFeeID, &p.Amount,
			&p.Method, &p.GatewayReference, &p.PaidDate, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// GetClassFeeCollectionSummaries reports collection progress per class fee:
// roster size, how many students are fully paid, and collected vs expected
// totals. Optional fees count opt-ins as the roster.
func GetClassFeeCollectionSummaries(db *sql.DB, schoolID, classID string) ([]*models.ClassFeeCollectionSummary, error) {
	query := `SELECT cf.id, ft.name, COALESCE(c.name, ''), cf.amount, cf.due_date,
			  COUNT(r.student_id),
			  COUNT(r.student_id) FILTER (WHERE COALESCE(pp.total_paid, 0) >= cf.amount),
			  COALESCE(SUM(pp.total_paid), 0)
			  FROM class_fees cf
			  JOIN fee_types ft ON cf.fee_type_id = ft.id
			  LEFT JOIN classes c ON cf.class_id = c.id
			  LEFT JOIN LATERAL (
				  SELECT fe.student_id FROM fee_eligibility fe
				  WHERE fe.class_fee_id = cf.id AND ft.kind = 'mandatory'
				  UNION
				  SELECT o.student_id FROM optional_fee_opt_ins o
				  WHERE o.school_id = cf.school_id AND o.fee_type_id = cf.fee_type_id
				  AND o.class_id = cf.class_id AND ft.kind = 'optional'
			  ) r ON true
			  LEFT JOIN LATERAL (
				  SELECT SUM(p.amount) AS total_paid FROM student_fee_payments p
				  WHERE p.class_fee_id = cf.id AND p.student_id = r.student_id
			  ) pp ON true
			  WHERE cf.school_id = $1 AND cf.deleted_at IS NULL`
	args := []interface{}{schoolID}
	if classID != "" {
		query += ` AND cf.class_id = $2`
		args = append(args, classID)
	}
	query += ` GROUP BY cf.id, ft.name, c.name, cf.amount, cf.due_date
			   ORDER BY cf.due_date DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []*models.ClassFeeCollectionSummary{}
	for rows.Next() {
		s := &models.ClassFeeCollectionSummary{}
		err := rows.Scan(&s.ClassFeeID, &s.FeeTypeName, &s.ClassName, &s.FeeAmount, &s.DueDate,
			&s.TotalStudents, &s.PaidStudents, &s.TotalCollected)
		if err != nil {
			return nil, err
		}
		s.TotalExpected = s.FeeAmount.Mul(decimal.NewFromInt(int64(s.TotalStudents)))
		summaries = append(summaries, s)
	}
	return summaries, nil
}
