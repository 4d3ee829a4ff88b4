package models

import "time"

// Shortcut maps a short identifier to a destination URL. Ids live in one
// global namespace; uniqueness is enforced by the primary key and a
// duplicate-key error on insert is the conflict signal.
type Shortcut struct {
	ID        string `gorm:"size:64;primaryKey"`
	Link      string `gorm:"type:text;not null"`
	ClubID    string `gorm:"type:char(36);index;not null"`
	ClubName  string `gorm:"size:255"`
	Visits    uint64 `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for Shortcut
func (Shortcut) TableName() string {
	return "shortcuts"
}
