package models

import "time"

// Alert is an admin-issued announcement shown to all clubs.
type Alert struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Title     string `gorm:"size:255;not null"`
	Message   string `gorm:"type:text;not null"`
	Severity  string `gorm:"size:32;not null;default:info"`
	CreatedAt time.Time
}

// TableName overrides the table name for Alert
func (Alert) TableName() string {
	return "alerts"
}
