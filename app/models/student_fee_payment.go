package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StudentFeePayment is one installment payment against a (student, class fee)
// pair. Rows are append-only; the running total across rows may never exceed
// the class fee amount.
type StudentFeePayment struct {
	ID         string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SchoolID   string          `json:"school_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	StudentID  string          `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ClassFeeID string          `json:"class_fee_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount     decimal.Decimal `json:"amount" gorm:"not null;type:numeric(12,2)" validate:"required"`
	Method     string          `json:"method,omitempty" gorm:"type:varchar(50)"`
	// GatewayReference is set when the payment arrived through the payment
	// gateway callback. It is unique per school and used as an idempotency
	// hint on replayed callbacks.
	GatewayReference *string   `json:"gateway_reference,omitempty" gorm:"index"`
	PaidDate         time.Time `json:"paid_date" gorm:"not null;index"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// FeeStatus is the derived (never stored) payment position of a student
// against a class fee.
type FeeStatus struct {
	TotalPaid decimal.Decimal `json:"total_paid"`
	Remaining decimal.Decimal `json:"remaining"`
	IsPaid    bool            `json:"is_paid"`
	IsOverdue bool            `json:"is_overdue"`
}

// ComputeFeeStatus derives the payment position from the fee amount, the sum
// of recorded payments, and the due date. OVERDUE is a time-derived modifier
// of the unpaid states, not a stored state.
func ComputeFeeStatus(feeAmount, totalPaid decimal.Decimal, dueDate, now time.Time) FeeStatus {
	remaining := feeAmount.Sub(totalPaid)
	isPaid := remaining.LessThanOrEqual(decimal.Zero)
	return FeeStatus{
		TotalPaid: totalPaid,
		Remaining: remaining,
		IsPaid:    isPaid,
		IsOverdue: !isPaid && now.After(dueDate),
	}
}

// PaymentReceipt is the context returned after recording a payment, enough
// for an external renderer to produce a receipt.
type PaymentReceipt struct {
	Payment          *StudentFeePayment `json:"payment"`
	StudentName      string             `json:"student_name"`
	ClassName        string             `json:"class_name,omitempty"`
	FeeTypeName      string             `json:"fee_type_name"`
	FeeAmount        decimal.Decimal    `json:"fee_amount"`
	TotalPaidToDate  decimal.Decimal    `json:"total_paid_to_date"`
	RemainingBalance decimal.Decimal    `json:"remaining_balance"`
	// AlreadyRecorded is true when a gateway callback replayed a reference
	// that was recorded before; the original payment is returned unchanged.
	AlreadyRecorded bool `json:"already_recorded,omitempty"`
}

// StudentLedgerEntry is one obligation line in a student's fee history,
// grouped by class fee.
type StudentLedgerEntry struct {
	ClassFee    *ClassFee            `json:"class_fee"`
	FeeTypeName string               `json:"fee_type_name"`
	FeeKind     FeeKind              `json:"fee_kind"`
	ClassName   string               `json:"class_name,omitempty"`
	Status      FeeStatus            `json:"status"`
	Payments    []*StudentFeePayment `json:"payments"`
}

// ClassFeeCollectionSummary is the class-level reporting row: how many of the
// obligated students have fully paid, and how much has come in against the
// expected total.
type ClassFeeCollectionSummary struct {
	ClassFeeID     string          `json:"class_fee_id"`
	FeeTypeName    string          `json:"fee_type_name"`
	ClassName      string          `json:"class_name,omitempty"`
	FeeAmount      decimal.Decimal `json:"fee_amount"`
	DueDate        time.Time       `json:"due_date"`
	TotalStudents  int             `json:"total_students"`
	PaidStudents   int             `json:"paid_students"`
	TotalExpected  decimal.Decimal `json:"total_expected"`
	TotalCollected decimal.Decimal `json:"total_collected"`
}
