package services

import (
	"errors"
	"fmt"

	"github.com/clubworks/clubhub/internal/models"
	"github.com/clubworks/clubhub/internal/storage"
	"gorm.io/gorm"
)

// EventInput is the payload for proposing an event.
type EventInput struct {
	EventName    string `json:"eventName"`
	Description  string `json:"description"`
	Date         string `json:"date"`
	TargetGrades string `json:"targetGrades"`
	ProposalLink string `json:"proposalLink"`
}

// ApprovedEvent is a public event listing joined with the owning club's logo.
type ApprovedEvent struct {
	models.Event
	ClubLogo string `json:"clubLogo"`
}

// EventDocuments bundles an event with its uploaded budget and receipt files.
type EventDocuments struct {
	Event    models.Event    `json:"event"`
	Budget   []storage.Entry `json:"budget"`
	Receipts []storage.Entry `json:"receipts"`
}

// CreateEvent records a new event proposal for club. Events start unapproved
// and stay off the public listing until an admin approves them.
func CreateEvent(db *gorm.DB, club *models.Club, input *EventInput) (*models.Event, error) {
	event := &models.Event{
		ClubID:       club.ID,
		ClubName:     club.Name,
		EventName:    input.EventName,
		Description:  input.Description,
		Date:         input.Date,
		TargetGrades: input.TargetGrades,
		ProposalLink: input.ProposalLink,
	}
	if err := db.Create(event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// GetEvent loads an event owned by club.
func GetEvent(db *gorm.DB, club *models.Club, id uint64) (*models.Event, error) {
	var event models.Event
	err := db.Where("id = ? AND club_id = ?", id, club.ID).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	return &event, nil
}

// ListClubEvents returns all of a club's events, newest date first.
func ListClubEvents(db *gorm.DB, clubID string) ([]models.Event, error) {
	var events []models.Event
	if err := db.Where("club_id = ?", clubID).
		Order("date DESC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// ListApprovedEvents returns every approved event with the owning club's
// logo attached. Logos are resolved in one batched query keyed by club id.
func ListApprovedEvents(db *gorm.DB) ([]ApprovedEvent, error) {
	var events []models.Event
	if err := db.Where("approved = ?", true).
		Order("date DESC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list approved events: %w", err)
	}

	clubIDs := make([]string, 0, len(events))
	seen := make(map[string]bool)
	for _, e := range events {
		if !seen[e.ClubID] {
			seen[e.ClubID] = true
			clubIDs = append(clubIDs, e.ClubID)
		}
	}

	logos := make(map[string]string, len(clubIDs))
	if len(clubIDs) > 0 {
		var clubs []models.Club
		if err := db.Where("id IN ?", clubIDs).Find(&clubs).Error; err != nil {
			return nil, fmt.Errorf("failed to load club logos: %w", err)
		}
		for _, c := range clubs {
			logos[c.ID] = c.Logo
		}
	}

	out := make([]ApprovedEvent, 0, len(events))
	for _, e := range events {
		out = append(out, ApprovedEvent{Event: e, ClubLogo: logos[e.ClubID]})
	}
	return out, nil
}

// ApproveEvent marks an event as approved, making it publicly visible.
func ApproveEvent(db *gorm.DB, id uint64) error {
	result := db.Model(&models.Event{}).
		Where("id = ?", id).
		Update("approved", true)
	if result.Error != nil {
		return fmt.Errorf("failed to approve event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEvent removes an event entirely.
func DeleteEvent(db *gorm.DB, id uint64) error {
	result := db.Where("id = ?", id).Delete(&models.Event{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetBudgetSubmitted flags an event's budget documents as uploaded.
func SetBudgetSubmitted(db *gorm.DB, club *models.Club, id uint64) error {
	return setEventFlag(db, club, id, "budget_submitted")
}

// SetReceiptsSubmitted flags an event's receipt documents as uploaded.
func SetReceiptsSubmitted(db *gorm.DB, club *models.Club, id uint64) error {
	return setEventFlag(db, club, id, "receipts_submitted")
}

func setEventFlag(db *gorm.DB, club *models.Club, id uint64, column string) error {
	result := db.Model(&models.Event{}).
		Where("id = ? AND club_id = ?", id, club.ID).
		Update(column, true)
	if result.Error != nil {
		return fmt.Errorf("failed to update event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// BudgetPath returns the storage prefix for an event's budget documents.
func BudgetPath(clubID string, eventID uint64) string {
	return fmt.Sprintf("budgets/%s/%d", clubID, eventID)
}

// ReceiptsPath returns the storage prefix for an event's receipt documents.
func ReceiptsPath(clubID string, eventID uint64) string {
	return fmt.Sprintf("receipts/%s/%d", clubID, eventID)
}

// ListEventsWithDocuments returns every event together with its uploaded
// budget and receipt files, for the admin finance view.
func ListEventsWithDocuments(db *gorm.DB, store storage.Store) ([]EventDocuments, error) {
	var events []models.Event
	if err := db.Order("date DESC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	out := make([]EventDocuments, 0, len(events))
	for _, e := range events {
		budget, err := store.List(BudgetPath(e.ClubID, e.ID))
		if err != nil {
			return nil, fmt.Errorf("failed to list budget documents: %w", err)
		}
		receipts, err := store.List(ReceiptsPath(e.ClubID, e.ID))
		if err != nil {
			return nil, fmt.Errorf("failed to list receipt documents: %w", err)
		}
		out = append(out, EventDocuments{Event: e, Budget: budget, Receipts: receipts})
	}
	return out, nil
}
