package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an append-only ledger entry of money moved against an
// account. Entries are immutable once posted except for explicit admin
// corrections, which sit outside the reconciliation path.
type Transaction struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SchoolID    string          `json:"school_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Reference   string          `json:"reference" gorm:"not null" validate:"required"` // unique per school, e.g. FEE-2026-0001
	AccountID   string          `json:"account_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount      decimal.Decimal `json:"amount" gorm:"not null;type:numeric(12,2)" validate:"required"`
	Type        TransactionType `json:"type" gorm:"not null;type:varchar(20)" validate:"required"`
	Date        time.Time       `json:"date" gorm:"not null;index;type:date" validate:"required"`
	Description string          `json:"description" gorm:"not null"`
	Notes       string          `json:"notes,omitempty" gorm:"type:text"`

	// Back-references used by the out-of-band reconciliation report to match
	// ledger entries to the payment that produced them.
	FeePaymentID   *string `json:"fee_payment_id,omitempty" gorm:"index;type:uuid"`
	StaffPaymentID *string `json:"staff_payment_id,omitempty" gorm:"index;type:uuid"`

	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	Account   *Account   `json:"account,omitempty" gorm:"foreignKey:AccountID;references:ID"` // optional for JSON responses
}

// StaffPayment represents a payroll disbursement (salary or bonus) to a staff
// user. Each disbursement is posted into the ledger by the reconciliation
// bridge as a SAL-/BON- expense transaction.
type StaffPayment struct {
	ID          string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SchoolID    string           `json:"school_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	StaffID     string           `json:"staff_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount      decimal.Decimal  `json:"amount" gorm:"not null;type:numeric(12,2)" validate:"required"`
	Type        StaffPaymentType `json:"type" gorm:"not null;type:varchar(20)" validate:"required"`
	PeriodStart time.Time        `json:"period_start" gorm:"not null;type:date" validate:"required"`
	PeriodEnd   time.Time        `json:"period_end" gorm:"not null;type:date" validate:"required"`
	PaidAt      time.Time        `json:"paid_at" gorm:"autoCreateTime"`
	Notes       string           `json:"notes,omitempty" gorm:"type:text"`

	Staff *User `json:"staff,omitempty" gorm:"foreignKey:StaffID;references:ID"`
}
