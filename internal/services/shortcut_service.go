package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/clubworks/clubhub/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// CreateShortcut allocates a shortlink owned by club. When customID is empty
// a random id is generated. Uniqueness rides on the primary-key constraint;
// a duplicate-key failure from the insert is the conflict signal, there is no
// check-then-insert race window.
func CreateShortcut(db *gorm.DB, club *models.Club, customID, link string) (*models.Shortcut, error) {
	id := customID
	if id == "" {
		var err error
		id, err = RandomToken(ShortIDLength)
		if err != nil {
			return nil, err
		}
	}

	shortcut := &models.Shortcut{
		ID:       id,
		Link:     link,
		ClubID:   club.ID,
		ClubName: club.Name,
	}

	if err := db.Create(shortcut).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create shortcut: %w", err)
	}

	return shortcut, nil
}

// UpdateShortcut changes the destination of a shortlink owned by club.
// The filter matches id and owner together, so an id owned by another club
// reads as not-found rather than forbidden.
func UpdateShortcut(db *gorm.DB, club *models.Club, id, link string) (*models.Shortcut, error) {
	result := db.Model(&models.Shortcut{}).
		Where("id = ? AND club_id = ?", id, club.ID).
		Update("link", link)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update shortcut: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var shortcut models.Shortcut
	if err := db.Where("id = ?", id).First(&shortcut).Error; err != nil {
		return nil, fmt.Errorf("failed to reload shortcut: %w", err)
	}
	return &shortcut, nil
}

// DeleteShortcut removes a shortlink owned by club. Deleting an absent or
// foreign id is a no-op.
func DeleteShortcut(db *gorm.DB, club *models.Club, id string) error {
	if err := db.Where("id = ? AND club_id = ?", id, club.ID).
		Delete(&models.Shortcut{}).Error; err != nil {
		return fmt.Errorf("failed to delete shortcut: %w", err)
	}
	return nil
}

// ResolveShortcut looks up a shortlink by id across all tenants, bumps its
// visit counter atomically in the store, and returns the destination URL.
// This is the hot path: one point lookup plus one in-place increment.
func ResolveShortcut(db *gorm.DB, id string) (string, error) {
	var shortcut models.Shortcut
	err := db.Clauses(hints.CommentBefore("select", "shortlink_resolve")).
		Where("id = ?", id).
		First(&shortcut).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to resolve shortcut: %w", err)
	}

	// Atomic increment; concurrent resolutions never lose a count.
	if err := db.Model(&models.Shortcut{}).
		Where("id = ?", id).
		UpdateColumn("visits", gorm.Expr("visits + ?", 1)).Error; err != nil {
		return "", fmt.Errorf("failed to count visit: %w", err)
	}

	return shortcut.Link, nil
}

// ListShortcutsByClub returns all shortlinks owned by the club, newest first.
func ListShortcutsByClub(db *gorm.DB, clubID string) ([]models.Shortcut, error) {
	var shortcuts []models.Shortcut
	if err := db.Where("club_id = ?", clubID).
		Order("created_at DESC").
		Find(&shortcuts).Error; err != nil {
		return nil, fmt.Errorf("failed to list shortcuts: %w", err)
	}
	return shortcuts, nil
}

// isDuplicateKey reports whether err is a uniqueness-constraint violation.
// TranslateError covers the common drivers; the string checks catch the rest.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key")
}
