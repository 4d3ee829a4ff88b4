package services

import (
	"fmt"

	"github.com/clubworks/clubhub/internal/models"
	"gorm.io/gorm"
)

// CreateAlert publishes a portal-wide announcement. Severity defaults to
// "info" at the column level when empty.
func CreateAlert(db *gorm.DB, title, message, severity string) (*models.Alert, error) {
	alert := &models.Alert{
		Title:    title,
		Message:  message,
		Severity: severity,
	}
	if err := db.Create(alert).Error; err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}
	return alert, nil
}

// ListAlerts returns all announcements, newest first.
func ListAlerts(db *gorm.DB) ([]models.Alert, error) {
	var alerts []models.Alert
	if err := db.Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

// DeleteAlert removes an announcement.
func DeleteAlert(db *gorm.DB, id uint64) error {
	result := db.Where("id = ?", id).Delete(&models.Alert{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete alert: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
