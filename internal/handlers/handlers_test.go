package handlers_test

import (
	"testing"

	"github.com/clubworks/clubhub/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Club{},
		&models.Shortcut{},
		&models.Event{},
		&models.LinkListEntry{},
		&models.Alert{},
		&models.FormDefinition{},
		&models.FormResponse{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func createTestClub(t *testing.T, db *gorm.DB, userID, name string) *models.Club {
	t.Helper()

	club := &models.Club{ID: userID, Name: name, Description: "test club"}
	if err := db.Create(club).Error; err != nil {
		t.Fatalf("Failed to create test club: %v", err)
	}
	return club
}
