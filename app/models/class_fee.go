package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClassFee is a financial obligation template: this fee type costs this
// amount, due on this date, for this class. A nil ClassID means an
// individual/group fee whose roster is managed by hand. Amount edits never
// retroactively alter recorded payments.
type ClassFee struct {
	ID        string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SchoolID  string          `json:"school_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FeeTypeID string          `json:"fee_type_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ClassID   *string         `json:"class_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	Amount    decimal.Decimal `json:"amount" gorm:"not null;type:numeric(12,2)" validate:"required"`
	DueDate   time.Time       `json:"due_date" gorm:"not null;type:date" validate:"required"`
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time      `json:"deleted_at,omitempty" gorm:"index"`

	FeeType *FeeType `json:"fee_type,omitempty" gorm:"foreignKey:FeeTypeID;references:ID"` // optional for JSON responses
	Class   *Class   `json:"class,omitempty" gorm:"foreignKey:ClassID;references:ID"`
}

// FeeEligibility is the explicit roster of students who owe a class fee.
// A student may be removed only while their payments against the fee sum to
// zero.
type FeeEligibility struct {
	ClassFeeID string    `json:"class_fee_id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	StudentID  string    `json:"student_id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// OptionalFeeOptIn is a student's voluntary enrollment into an optional fee
// type for a class. Its presence is what makes the matching ClassFee owed;
// opting out deletes the record and leaves payment history untouched.
type OptionalFeeOptIn struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SchoolID  string    `json:"school_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	StudentID string    `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FeeTypeID string    `json:"fee_type_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ClassID   string    `json:"class_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	OptedInAt time.Time `json:"opted_in_at" gorm:"autoCreateTime"`
}
