package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/clubworks/clubhub/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FormInput is the payload for creating or editing a form definition.
// Fields and Settings are stored verbatim; normalization happens on read.
type FormInput struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Fields      json.RawMessage `json:"fields"`
	Settings    json.RawMessage `json:"settings"`
}

// SaveForm creates or updates a form definition owned by club. A missing id
// means create; an existing id is an edit that preserves CreatedAt. Editing a
// form owned by another club returns ErrForbidden.
func SaveForm(db *gorm.DB, club *models.Club, input *FormInput) (*models.FormDefinition, error) {
	now := time.Now()

	if input.ID != "" {
		var existing models.FormDefinition
		err := db.Where("id = ?", input.ID).First(&existing).Error
		switch {
		case err == nil:
			if existing.ClubID != club.ID {
				return nil, ErrForbidden
			}
			existing.Title = input.Title
			existing.Description = input.Description
			existing.Fields = datatypes.JSON(input.Fields)
			existing.Settings = datatypes.JSON(input.Settings)
			existing.UpdatedAt = now
			if err := db.Save(&existing).Error; err != nil {
				return nil, fmt.Errorf("failed to update form: %w", err)
			}
			return &existing, nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Client-supplied id for a new form, fall through to create.
		default:
			return nil, fmt.Errorf("failed to load form: %w", err)
		}
	}

	id := input.ID
	if id == "" {
		var err error
		id, err = timestampedID("form")
		if err != nil {
			return nil, err
		}
	}

	form := &models.FormDefinition{
		ID:          id,
		ClubID:      club.ID,
		ClubName:    club.Name,
		Title:       input.Title,
		Description: input.Description,
		Fields:      datatypes.JSON(input.Fields),
		Settings:    datatypes.JSON(input.Settings),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(form).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create form: %w", err)
	}
	return form, nil
}

// GetForm loads a form definition owned by club.
func GetForm(db *gorm.DB, club *models.Club, id string) (*models.FormDefinition, error) {
	form, err := GetFormByID(db, id)
	if err != nil {
		return nil, err
	}
	if form.ClubID != club.ID {
		return nil, ErrForbidden
	}
	return form, nil
}

// GetFormByID loads a form definition regardless of owner. The public
// submission page uses this to render any club's form.
func GetFormByID(db *gorm.DB, id string) (*models.FormDefinition, error) {
	var form models.FormDefinition
	if err := db.Where("id = ?", id).First(&form).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load form: %w", err)
	}
	return &form, nil
}

// ListForms returns all form definitions owned by the club, newest first.
func ListForms(db *gorm.DB, clubID string) ([]models.FormDefinition, error) {
	var forms []models.FormDefinition
	if err := db.Where("club_id = ?", clubID).
		Order("created_at DESC").
		Find(&forms).Error; err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	return forms, nil
}

// DeleteForm removes a form and all of its responses in one transaction, so
// a failure partway never orphans responses.
func DeleteForm(db *gorm.DB, club *models.Club, id string) error {
	form, err := GetForm(db, club, id)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_id = ?", form.ID).
			Delete(&models.FormResponse{}).Error; err != nil {
			return fmt.Errorf("failed to delete responses: %w", err)
		}
		if err := tx.Where("id = ?", form.ID).
			Delete(&models.FormDefinition{}).Error; err != nil {
			return fmt.Errorf("failed to delete form: %w", err)
		}
		return nil
	})
}

// SubmitResponse records one submission against a form. Submission is public;
// the only gate is that the form exists. Each submission is its own row, so
// concurrent submitters never overwrite each other.
func SubmitResponse(db *gorm.DB, formID string, data map[string]interface{}) (*models.FormResponse, error) {
	if _, err := GetFormByID(db, formID); err != nil {
		return nil, err
	}

	id, err := timestampedID("resp")
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response data: %w", err)
	}

	response := &models.FormResponse{
		ID:          id,
		FormID:      formID,
		Data:        datatypes.JSON(raw),
		SubmittedAt: time.Now(),
	}
	if err := db.Create(response).Error; err != nil {
		return nil, fmt.Errorf("failed to store response: %w", err)
	}
	return response, nil
}

// ListResponses returns the submissions for a form owned by club, oldest
// first. The form and its responses come back together so the caller can
// derive the column set from the definition.
func ListResponses(db *gorm.DB, club *models.Club, formID string) (*models.FormDefinition, []models.FormResponse, error) {
	form, err := GetForm(db, club, formID)
	if err != nil {
		return nil, nil, err
	}

	var responses []models.FormResponse
	if err := db.Where("form_id = ?", formID).
		Order("submitted_at ASC").
		Find(&responses).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to list responses: %w", err)
	}
	return form, responses, nil
}

// DeleteResponse removes a single submission from a form owned by club.
// Deleting an absent response is a no-op.
func DeleteResponse(db *gorm.DB, club *models.Club, formID, responseID string) error {
	if _, err := GetForm(db, club, formID); err != nil {
		return err
	}

	if err := db.Where("id = ? AND form_id = ?", responseID, formID).
		Delete(&models.FormResponse{}).Error; err != nil {
		return fmt.Errorf("failed to delete response: %w", err)
	}
	return nil
}
