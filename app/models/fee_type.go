package models

import "time"

// FeeType represents a category of fee a school charges. The kind tag decides
// how eligibility for its class fees is resolved: mandatory fee types use an
// explicit roster, optional fee types require a student opt-in.
type FeeType struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SchoolID    string     `json:"school_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Name        string     `json:"name" gorm:"not null" validate:"required"` // unique per school
	Kind        FeeKind    `json:"kind" gorm:"not null;type:varchar(20)" validate:"required,oneof=mandatory optional"`
	Description *string    `json:"description,omitempty" gorm:"type:text"`
	IsActive    bool       `json:"is_active" gorm:"default:true;index"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}
