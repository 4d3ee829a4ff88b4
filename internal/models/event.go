package models

import "time"

// Event is a club event proposal. It is created unapproved and becomes
// publicly visible once an admin approves it. Budget and receipt flags track
// whether the owning club has uploaded the corresponding documents.
type Event struct {
	ID                uint64 `gorm:"primaryKey;autoIncrement"`
	ClubID            string `gorm:"type:char(36);index;not null"`
	ClubName          string `gorm:"size:255"`
	EventName         string `gorm:"size:255;not null"`
	Description       string `gorm:"type:text"`
	Date              string `gorm:"size:64;not null"`
	TargetGrades      string `gorm:"size:255"`
	ProposalLink      string `gorm:"size:512"`
	Approved          bool   `gorm:"not null;default:false"`
	BudgetSubmitted   bool   `gorm:"not null;default:false"`
	ReceiptsSubmitted bool   `gorm:"not null;default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName overrides the table name for Event
func (Event) TableName() string {
	return "events"
}
