package models

import "time"

// Club is the tenant record. The primary key is the Authorizer user id, so
// every ownership check keys on the immutable auth identity. Name is unique
// and denormalized onto owned records for display only.
type Club struct {
	ID          string `gorm:"type:char(36);primaryKey"`
	Name        string `gorm:"uniqueIndex;size:255;not null"`
	Description string `gorm:"type:text"`
	Logo        string `gorm:"size:512"`
	Banner      string `gorm:"size:512"`
	LinkText    string `gorm:"size:255"`
	Link        string `gorm:"size:512"`
	IsAdmin     bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the table name for Club
func (Club) TableName() string {
	return "clubs"
}
