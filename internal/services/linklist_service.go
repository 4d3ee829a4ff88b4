package services

import (
	"errors"
	"fmt"

	"github.com/clubworks/clubhub/internal/models"
	"github.com/clubworks/clubhub/internal/types"
	"gorm.io/gorm"
)

// ReorderItem pairs an entry id with its new position. Both values tolerate
// string-typed numbers from loosely typed clients.
type ReorderItem struct {
	ID       types.FlexUint64 `json:"id"`
	Position types.FlexUint64 `json:"position"`
}

// AddLinkListEntry appends a link to the club's list at the next free
// position.
func AddLinkListEntry(db *gorm.DB, club *models.Club, headline, url string) (*models.LinkListEntry, error) {
	var maxPos int
	err := db.Model(&models.LinkListEntry{}).
		Where("club_id = ?", club.ID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read list positions: %w", err)
	}

	entry := &models.LinkListEntry{
		ClubID:   club.ID,
		ClubName: club.Name,
		Headline: headline,
		URL:      url,
		Position: maxPos + 1,
	}
	if err := db.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to add link: %w", err)
	}
	return entry, nil
}

// EditLinkListEntry updates the headline and URL of one entry. An entry
// owned by another club returns ErrForbidden.
func EditLinkListEntry(db *gorm.DB, club *models.Club, id uint64, headline, url string) (*models.LinkListEntry, error) {
	entry, err := getOwnedEntry(db, club, id)
	if err != nil {
		return nil, err
	}

	entry.Headline = headline
	entry.URL = url
	if err := db.Save(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to edit link: %w", err)
	}
	return entry, nil
}

// DeleteLinkListEntry removes one entry from the club's list.
func DeleteLinkListEntry(db *gorm.DB, club *models.Club, id uint64) error {
	if _, err := getOwnedEntry(db, club, id); err != nil {
		return err
	}
	if err := db.Where("id = ?", id).
		Delete(&models.LinkListEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	return nil
}

// ReorderLinkList applies new positions to the club's entries in one
// transaction. Every item must belong to the club or the whole reorder is
// rolled back.
func ReorderLinkList(db *gorm.DB, club *models.Club, items []ReorderItem) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			result := tx.Model(&models.LinkListEntry{}).
				Where("id = ? AND club_id = ?", item.ID.Uint64(), club.ID).
				Update("position", int(item.Position.Uint64()))
			if result.Error != nil {
				return fmt.Errorf("failed to reorder link: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return ErrForbidden
			}
		}
		return nil
	})
}

// ListLinkListByClubName returns a club's links in display order, for the
// public link-list page addressed by club name.
func ListLinkListByClubName(db *gorm.DB, clubName string) ([]models.LinkListEntry, error) {
	var entries []models.LinkListEntry
	if err := db.Where("club_name = ?", clubName).
		Order("position ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	return entries, nil
}

// ListLinkListByClub returns a club's own links in display order.
func ListLinkListByClub(db *gorm.DB, clubID string) ([]models.LinkListEntry, error) {
	var entries []models.LinkListEntry
	if err := db.Where("club_id = ?", clubID).
		Order("position ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	return entries, nil
}

func getOwnedEntry(db *gorm.DB, club *models.Club, id uint64) (*models.LinkListEntry, error) {
	var entry models.LinkListEntry
	if err := db.Where("id = ?", id).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load link: %w", err)
	}
	if entry.ClubID != club.ID {
		return nil, ErrForbidden
	}
	return &entry, nil
}
