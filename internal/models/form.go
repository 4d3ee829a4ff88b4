package models

import (
	"time"

	"gorm.io/datatypes"
)

// FormDefinition stores a form schema exactly as authored. Fields holds
// either a flat question array or a sectioned array; both shapes stay valid
// for already-stored definitions and are normalized in memory on read.
// CreatedAt is immutable across edits.
type FormDefinition struct {
	ID          string         `gorm:"size:64;primaryKey"`
	ClubID      string         `gorm:"type:char(36);index;not null"`
	ClubName    string         `gorm:"size:255"`
	Title       string         `gorm:"size:255"`
	Description string         `gorm:"type:text"`
	Fields      datatypes.JSON `gorm:"type:json"`
	Settings    datatypes.JSON `gorm:"type:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FormResponse is one submission against a FormDefinition. Each response is
// its own row so concurrent submissions never rewrite a shared collection.
// Responses are append-only; the only mutation is per-response deletion.
type FormResponse struct {
	ID          string         `gorm:"size:64;primaryKey"`
	FormID      string         `gorm:"size:64;index;not null"`
	Data        datatypes.JSON `gorm:"type:json"`
	SubmittedAt time.Time
}

// TableName overrides the table name for FormDefinition
func (FormDefinition) TableName() string {
	return "forms"
}

// TableName overrides the table name for FormResponse
func (FormResponse) TableName() string {
	return "form_responses"
}
