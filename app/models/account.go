package models

import "time"

// Account is a category in the school's chart of accounts. Transactions and
// budget items reference accounts; an account with transactions cannot be
// deleted.
type Account struct {
	ID        string      `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SchoolID  string      `json:"school_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Code      string      `json:"code" gorm:"not null" validate:"required"` // unique per school
	Name      string      `json:"name" gorm:"not null" validate:"required"`
	Type      AccountType `json:"type" gorm:"not null;type:varchar(20)" validate:"required"`
	IsActive  bool        `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time  `json:"deleted_at,omitempty" gorm:"index"`
}

// Default accounts the reconciliation bridge posts against. They are ensured
// to exist (upsert by code) before every posting, so the bridge is
// self-initializing per school.
const (
	FeeIncomeAccountCode     = "4100"
	FeeIncomeAccountName     = "Student Fee Income"
	SalaryExpenseAccountCode = "5100"
	SalaryExpenseAccountName = "Salary Expense"
)
