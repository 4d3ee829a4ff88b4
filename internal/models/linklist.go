package models

import "time"

// LinkListEntry is one row of a club's public link-list page.
// Position drives display order; lower positions render first.
type LinkListEntry struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	ClubID    string `gorm:"type:char(36);index;not null"`
	ClubName  string `gorm:"size:255;index"`
	Headline  string `gorm:"size:255;not null"`
	URL       string `gorm:"size:512;not null"`
	Position  int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for LinkListEntry
func (LinkListEntry) TableName() string {
	return "linklist"
}
