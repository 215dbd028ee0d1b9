package services

import (
	"database/sql"
	"log"

	"edutrack/app/models"
)

// UnpostedFeePayment is one fee payment the bridge never got into the ledger.
type UnpostedFeePayment struct {
	Payment     *models.StudentFeePayment `json:"payment"`
	StudentName string                    `json:"student_name"`
	FeeTypeName string                    `json:"fee_type_name"`
}

// UnpostedFeePayments lists fee payments with no matching ledger transaction.
// Because bridge failures are swallowed at request time, this report is the
// recovery path: an operator re-posts the gaps it surfaces.
func UnpostedFeePayments(db *sql.DB, schoolID string) ([]*UnpostedFeePayment, error) {
	query := `SELECT p.id, p.school_id, p.student_id, p.class_fee_id, p.amount, p.method,
			  p.gateway_reference, p.paid_date, p.created_at,
			  s.first_name || ' ' || s.last_name, ft.name
			  FROM student_fee_payments p
			  JOIN students s ON p.student_id = s.id
			  JOIN class_fees cf ON p.class_fee_id = cf.id
			  JOIN fee_types ft ON cf.fee_type_id = ft.id
			  LEFT JOIN transactions t ON t.fee_payment_id = p.id AND t.deleted_at IS NULL
			  WHERE p.school_id = $1 AND t.id IS NULL
			  ORDER BY p.created_at`

	rows, err := db.Query(query, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	unposted := []*UnpostedFeePayment{}
	for rows.Next() {
		u := &UnpostedFeePayment{Payment: &models.StudentFeePayment{}}
		p := u.Payment
		err := rows.Scan(&p.ID, &p.SchoolID, &p.StudentID, &p.ClassFeeID, &p.Amount, &p.Method,
			&p.GatewayReference, &p.PaidDate, &p.CreatedAt,
			&u.StudentName, &u.FeeTypeName)
		if err != nil {
			return nil, err
		}
		unposted = append(unposted, u)
	}
	return unposted, nil
}

// RepostUnpostedFeePayments walks the unposted report and retries each post.
// It returns how many were posted; individual failures are logged and
// skipped so one bad row cannot block the rest.
func RepostUnpostedFeePayments(db *sql.DB, schoolID string) (int, error) {
	unposted, err := UnpostedFeePayments(db, schoolID)
	if err != nil {
		return 0, err
	}

	posted := 0
	for _, u := range unposted {
		receipt := &models.PaymentReceipt{
			Payment:     u.Payment,
			StudentName: u.StudentName,
			FeeTypeName: u.FeeTypeName,
		}
		if _, err := PostFeeIncome(db, receipt); err != nil {
			log.Printf("reconciliation: re-post of payment %s failed: %v", u.Payment.ID, err)
			continue
		}
		posted++
	}
	return posted, nil
}
