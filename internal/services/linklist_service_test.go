package services_test

import (
	"errors"
	"testing"

	"github.com/clubworks/clubhub/internal/services"
	"github.com/clubworks/clubhub/internal/types"
)

func TestAddLinkListEntryPositions(t *testing.T) {
	db := setupTestDB(t)
	club := createTestClub(t, db, "user-1", "Chess Club")

	first, err := services.AddLinkListEntry(db, club, "Join us", "https://example.com/join")
	if err != nil {
		t.Fatalf("Failed to add entry: %v", err)
	}
	second, err := services.AddLinkListEntry(db, club, "Calendar", "https://example.com/cal")
	if err != nil {
		t.Fatalf("Failed to add entry: %v", err)
	}

	if first.Position != 1 || second.Position != 2 {
		t.Errorf("Expected positions 1 and 2, got %d and %d", first.Position, second.Position)
	}
}

func TestEditLinkListEntryOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestClub(t, db, "user-1", "Chess Club")
	intruder := createTestClub(t, db, "user-2", "Robotics Club")

	entry, err := services.AddLinkListEntry(db, owner, "Join us", "https://example.com/join")
	if err != nil {
		t.Fatalf("Failed to add entry: %v", err)
	}

	_, err = services.EditLinkListEntry(db, intruder, entry.ID, "Hijack", "https://evil.example.com")
	if !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("Expected ErrForbidden, got %v", err)
	}

	_, err = services.EditLinkListEntry(db, owner, 9999, "Nope", "https://example.com")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	edited, err := services.EditLinkListEntry(db, owner, entry.ID, "Join today", "https://example.com/join2")
	if err != nil {
		t.Fatalf("Failed to edit entry: %v", err)
	}
	if edited.Headline != "Join today" {
		t.Errorf("Expected edited headline, got %q", edited.Headline)
	}
}

func TestReorderLinkList(t *testing.T) {
	db := setupTestDB(t)
	club := createTestClub(t, db, "user-1", "Chess Club")

	a, _ := services.AddLinkListEntry(db, club, "A", "https://example.com/a")
	b, _ := services.AddLinkListEntry(db, club, "B", "https://example.com/b")

	err := services.ReorderLinkList(db, club, []services.ReorderItem{
		{ID: types.FlexUint64(a.ID), Position: 2},
		{ID: types.FlexUint64(b.ID), Position: 1},
	})
	if err != nil {
		t.Fatalf("Failed to reorder: %v", err)
	}

	entries, err := services.ListLinkListByClub(db, club.ID)
	if err != nil {
		t.Fatalf("Failed to list entries: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != b.ID || entries[1].ID != a.ID {
		t.Errorf("Expected order B then A, got %+v", entries)
	}
}

func TestReorderLinkListKeepsUnchangedPositions(t *testing.T) {
	db := setupTestDB(t)
	club := createTestClub(t, db, "user-1", "Chess Club")

	a, _ := services.AddLinkListEntry(db, club, "A", "https://example.com/a")
	b, _ := services.AddLinkListEntry(db, club, "B", "https://example.com/b")
	c, _ := services.AddLinkListEntry(db, club, "C", "https://example.com/c")

	// Dragging one item leaves the rest at their current positions. Those
	// no-change updates still match their rows and must not be mistaken for
	// foreign entries.
	err := services.ReorderLinkList(db, club, []services.ReorderItem{
		{ID: types.FlexUint64(a.ID), Position: 1},
		{ID: types.FlexUint64(b.ID), Position: 3},
		{ID: types.FlexUint64(c.ID), Position: 2},
	})
	if err != nil {
		t.Fatalf("Expected reorder with an unchanged position to succeed, got %v", err)
	}

	entries, err := services.ListLinkListByClub(db, club.ID)
	if err != nil {
		t.Fatalf("Failed to list entries: %v", err)
	}
	if len(entries) != 3 || entries[0].ID != a.ID || entries[1].ID != c.ID || entries[2].ID != b.ID {
		t.Errorf("Expected order A, C, B, got %+v", entries)
	}
}

func TestReorderLinkListForeignEntryRollsBack(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestClub(t, db, "user-1", "Chess Club")
	other := createTestClub(t, db, "user-2", "Robotics Club")

	mine, _ := services.AddLinkListEntry(db, owner, "Mine", "https://example.com/m")
	theirs, _ := services.AddLinkListEntry(db, other, "Theirs", "https://example.com/t")

	err := services.ReorderLinkList(db, owner, []services.ReorderItem{
		{ID: types.FlexUint64(mine.ID), Position: 5},
		{ID: types.FlexUint64(theirs.ID), Position: 1},
	})
	if !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("Expected ErrForbidden, got %v", err)
	}

	// The whole reorder rolls back, including the legal first update.
	entries, err := services.ListLinkListByClub(db, owner.ID)
	if err != nil {
		t.Fatalf("Failed to list entries: %v", err)
	}
	if entries[0].Position != 1 {
		t.Errorf("Expected position untouched after rollback, got %d", entries[0].Position)
	}
}

func TestListLinkListByClubName(t *testing.T) {
	db := setupTestDB(t)
	club := createTestClub(t, db, "user-1", "Chess Club")

	if _, err := services.AddLinkListEntry(db, club, "Join us", "https://example.com/join"); err != nil {
		t.Fatalf("Failed to add entry: %v", err)
	}

	entries, err := services.ListLinkListByClubName(db, "Chess Club")
	if err != nil {
		t.Fatalf("Failed to list by club name: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	// Unknown club names just have empty lists.
	empty, err := services.ListLinkListByClubName(db, "Nobody")
	if err != nil || len(empty) != 0 {
		t.Errorf("Expected empty list for unknown club, got %v, %v", empty, err)
	}
}
