package services_test

import (
	"errors"
	"testing"

	"github.com/clubworks/clubhub/internal/models"
	"github.com/clubworks/clubhub/internal/services"
)

func TestCreateAndResolveShortcut(t *testing.T) {
	db := setupTestDB(t)
	club := createTestClub(t, db, "user-1", "Chess Club")

	shortcut, err := services.CreateShortcut(db, club, "chess", "https://example.com/chess")
	if err != nil {
		t.Fatalf("Failed to create shortcut: %v", err)
	}
	if shortcut.Visits != 0 {
		t.Errorf("Expected new shortcut to start at 0 visits, got %d", shortcut.Visits)
	}

	link, err := services.ResolveShortcut(db, "chess")
	if err != nil {
		t.Fatalf("Failed to resolve shortcut: %v", err)
	}
	if link != "https://example.com/chess" {
		t.Errorf("Expected destination link, got %q", link)
	}

	// Each resolution counts one visit.
	if _, err := services.ResolveShortcut(db, "chess"); err != nil {
		t.Fatalf("Failed to resolve shortcut twice: %v", err)
	}

	var stored models.Shortcut
	if err := db.First(&stored, "id = ?", "chess").Error; err != nil {
		t.Fatalf("Failed to load shortcut: %v", err)
	}
	if stored.Visits != 2 {
		t.Errorf("Expected 2 visits, got %d", stored.Visits)
	}
}

func TestCreateShortcutGeneratesID(t *testing.T) {
	db := setupTestDB(t)
	club := createTestClub(t, db, "user-1", "Chess Club")

	shortcut, err := services.CreateShortcut(db, club, "", "https://example.com")
	if err != nil {
		t.Fatalf("Failed to create shortcut: %v", err)
	}
	if len(shortcut.ID) != services.ShortIDLength {
		t.Errorf("Expected generated id of length %d, got %q", services.ShortIDLength, shortcut.ID)
	}
}

func TestCreateShortcutConflict(t *testing.T) {
	db := setupTestDB(t)
	club := createTestClub(t, db, "user-1", "Chess Club")
	other := createTestClub(t, db, "user-2", "Robotics Club")

	if _, err := services.CreateShortcut(db, club, "taken", "https://example.com/a"); err != nil {
		t.Fatalf("Failed to create shortcut: %v", err)
	}

	_, err := services.CreateShortcut(db, other, "taken", "https://example.com/b")
	if !errors.Is(err, services.ErrConflict) {
		t.Fatalf("Expected ErrConflict, got %v", err)
	}

	// The losing insert must not disturb the existing record.
	link, err := services.ResolveShortcut(db, "taken")
	if err != nil {
		t.Fatalf("Failed to resolve shortcut: %v", err)
	}
	if link != "https://example.com/a" {
		t.Errorf("Expected original destination to survive conflict, got %q", link)
	}
}

func TestResolveUnknownShortcut(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.ResolveShortcut(db, "missing")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestUpdateShortcutOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestClub(t, db, "user-1", "Chess Club")
	intruder := createTestClub(t, db, "user-2", "Robotics Club")

	if _, err := services.CreateShortcut(db, owner, "mine", "https://example.com/old"); err != nil {
		t.Fatalf("Failed to create shortcut: %v", err)
	}

	// A foreign club editing the id reads as not-found.
	_, err := services.UpdateShortcut(db, intruder, "mine", "https://evil.example.com")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for foreign update, got %v", err)
	}

	updated, err := services.UpdateShortcut(db, owner, "mine", "https://example.com/new")
	if err != nil {
		t.Fatalf("Failed to update own shortcut: %v", err)
	}
	if updated.Link != "https://example.com/new" {
		t.Errorf("Expected updated link, got %q", updated.Link)
	}
}

func TestUpdateShortcutSameLink(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestClub(t, db, "user-1", "Chess Club")

	if _, err := services.CreateShortcut(db, owner, "same", "https://example.com/page"); err != nil {
		t.Fatalf("Failed to create shortcut: %v", err)
	}

	// Saving the current destination again must read as a successful update,
	// not a missing row. Matched rows are what distinguishes ownership misses,
	// not changed rows.
	updated, err := services.UpdateShortcut(db, owner, "same", "https://example.com/page")
	if err != nil {
		t.Fatalf("Expected no-change update to succeed, got %v", err)
	}
	if updated.Link != "https://example.com/page" {
		t.Errorf("Expected link unchanged, got %q", updated.Link)
	}
}

func TestDeleteShortcutIdempotent(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestClub(t, db, "user-1", "Chess Club")
	intruder := createTestClub(t, db, "user-2", "Robotics Club")

	if _, err := services.CreateShortcut(db, owner, "gone", "https://example.com"); err != nil {
		t.Fatalf("Failed to create shortcut: %v", err)
	}

	// A foreign delete is a silent no-op and leaves the record alone.
	if err := services.DeleteShortcut(db, intruder, "gone"); err != nil {
		t.Fatalf("Expected foreign delete to be a no-op, got %v", err)
	}
	if _, err := services.ResolveShortcut(db, "gone"); err != nil {
		t.Fatalf("Shortcut should survive a foreign delete: %v", err)
	}

	if err := services.DeleteShortcut(db, owner, "gone"); err != nil {
		t.Fatalf("Failed to delete shortcut: %v", err)
	}
	if err := services.DeleteShortcut(db, owner, "gone"); err != nil {
		t.Fatalf("Expected repeat delete to be a no-op, got %v", err)
	}

	_, err := services.ResolveShortcut(db, "gone")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestListShortcutsByClub(t *testing.T) {
	db := setupTestDB(t)
	club := createTestClub(t, db, "user-1", "Chess Club")
	other := createTestClub(t, db, "user-2", "Robotics Club")

	for _, id := range []string{"one", "two"} {
		if _, err := services.CreateShortcut(db, club, id, "https://example.com/"+id); err != nil {
			t.Fatalf("Failed to create shortcut: %v", err)
		}
	}
	if _, err := services.CreateShortcut(db, other, "theirs", "https://example.com/x"); err != nil {
		t.Fatalf("Failed to create shortcut: %v", err)
	}

	shortcuts, err := services.ListShortcutsByClub(db, club.ID)
	if err != nil {
		t.Fatalf("Failed to list shortcuts: %v", err)
	}
	if len(shortcuts) != 2 {
		t.Fatalf("Expected 2 shortcuts, got %d", len(shortcuts))
	}
	for _, s := range shortcuts {
		if s.ClubID != club.ID {
			t.Errorf("Expected only own shortcuts, got one for %q", s.ClubID)
		}
	}
}
