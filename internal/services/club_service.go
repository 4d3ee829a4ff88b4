package services

import (
	"errors"
	"fmt"

	"github.com/clubworks/clubhub/internal/models"
	"gorm.io/gorm"
)

// CreateClub registers a club profile keyed by the authenticated user id.
// Club names are unique portal-wide; the unique index on name is the
// authority and a duplicate insert surfaces as ErrConflict.
func CreateClub(db *gorm.DB, userID, name, description string) (*models.Club, error) {
	club := &models.Club{
		ID:          userID,
		Name:        name,
		Description: description,
	}
	if err := db.Create(club).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create club: %w", err)
	}
	return club, nil
}

// GetClubByUserID loads the club profile for an authenticated user id.
func GetClubByUserID(db *gorm.DB, userID string) (*models.Club, error) {
	var club models.Club
	if err := db.Where("id = ?", userID).First(&club).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load club: %w", err)
	}
	return &club, nil
}

// GetClubByName loads a club profile by its display name.
func GetClubByName(db *gorm.DB, name string) (*models.Club, error) {
	var club models.Club
	if err := db.Where("name = ?", name).First(&club).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load club: %w", err)
	}
	return &club, nil
}

// ClubProfileUpdate carries the editable profile fields. Empty strings mean
// "leave unchanged" for the asset URLs, which are set by upload handlers.
type ClubProfileUpdate struct {
	Description string `json:"description"`
	LinkText    string `json:"linkText"`
	Link        string `json:"link"`
	Logo        string `json:"-"`
	Banner      string `json:"-"`
}

// UpdateClubProfile applies a profile update to the club row. The club name
// and id are immutable; denormalized club_name columns elsewhere stay valid.
func UpdateClubProfile(db *gorm.DB, club *models.Club, update *ClubProfileUpdate) (*models.Club, error) {
	values := map[string]interface{}{
		"description": update.Description,
		"link_text":   update.LinkText,
		"link":        update.Link,
	}
	if update.Logo != "" {
		values["logo"] = update.Logo
	}
	if update.Banner != "" {
		values["banner"] = update.Banner
	}

	if err := db.Model(&models.Club{}).
		Where("id = ?", club.ID).
		Updates(values).Error; err != nil {
		return nil, fmt.Errorf("failed to update club profile: %w", err)
	}
	return GetClubByUserID(db, club.ID)
}

// ListClubs returns every non-admin club profile ordered by name, for the
// public explore page.
func ListClubs(db *gorm.DB) ([]models.Club, error) {
	var clubs []models.Club
	if err := db.Where("is_admin = ?", false).
		Order("name ASC").
		Find(&clubs).Error; err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	return clubs, nil
}

// AdminListClubs returns every club profile, admin rows included.
func AdminListClubs(db *gorm.DB) ([]models.Club, error) {
	var clubs []models.Club
	if err := db.Order("name ASC").Find(&clubs).Error; err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	return clubs, nil
}

// AdminUpdateClub lets an admin edit another club's name and description.
// A name collision with an existing club returns ErrConflict. The rename and
// its propagation to the denormalized club_name columns commit together.
func AdminUpdateClub(db *gorm.DB, clubID, name, description string) (*models.Club, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Club{}).
			Where("id = ?", clubID).
			Updates(map[string]interface{}{
				"name":        name,
				"description": description,
			})
		if result.Error != nil {
			if isDuplicateKey(result.Error) {
				return ErrConflict
			}
			return fmt.Errorf("failed to update club: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		// Keep the denormalized display names in step with the rename.
		for _, m := range []interface{}{&models.Shortcut{}, &models.Event{}, &models.FormDefinition{}, &models.LinkListEntry{}} {
			if err := tx.Model(m).
				Where("club_id = ?", clubID).
				Update("club_name", name).Error; err != nil {
				return fmt.Errorf("failed to propagate club rename: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return GetClubByUserID(db, clubID)
}

// AdminDeleteClub removes a club and everything it owns. Shortcuts, events,
// forms with their responses, and linklist entries all go in one transaction.
func AdminDeleteClub(db *gorm.DB, clubID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var formIDs []string
		if err := tx.Model(&models.FormDefinition{}).
			Where("club_id = ?", clubID).
			Pluck("id", &formIDs).Error; err != nil {
			return fmt.Errorf("failed to collect form ids: %w", err)
		}
		if len(formIDs) > 0 {
			if err := tx.Where("form_id IN ?", formIDs).
				Delete(&models.FormResponse{}).Error; err != nil {
				return fmt.Errorf("failed to delete form responses: %w", err)
			}
		}

		for _, m := range []interface{}{
			&models.FormDefinition{},
			&models.Shortcut{},
			&models.Event{},
			&models.LinkListEntry{},
		} {
			if err := tx.Where("club_id = ?", clubID).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to delete club data: %w", err)
			}
		}

		result := tx.Where("id = ?", clubID).Delete(&models.Club{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete club: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
