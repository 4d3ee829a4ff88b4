package services_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/clubworks/clubhub/internal/models"
	"github.com/clubworks/clubhub/internal/services"
)

func TestSaveFormCreateAndEdit(t *testing.T) {
	db := setupTestDB(t)
	club := createTestClub(t, db, "user-1", "Chess Club")

	form, err := services.SaveForm(db, club, &services.FormInput{
		Title:  "Signup",
		Fields: json.RawMessage(`[{"id":"name","label":"Name"}]`),
	})
	if err != nil {
		t.Fatalf("Failed to create form: %v", err)
	}
	if form.ID == "" {
		t.Fatal("Expected a generated form id")
	}
	created := form.CreatedAt

	time.Sleep(5 * time.Millisecond)
	edited, err := services.SaveForm(db, club, &services.FormInput{
		ID:     form.ID,
		Title:  "Signup v2",
		Fields: json.RawMessage(`[{"id":"name","label":"Full name"}]`),
	})
	if err != nil {
		t.Fatalf("Failed to edit form: %v", err)
	}
	if edited.Title != "Signup v2" {
		t.Errorf("Expected edited title, got %q", edited.Title)
	}
	if !edited.CreatedAt.Equal(created) {
		t.Errorf("Expected CreatedAt to survive edits: %v vs %v", edited.CreatedAt, created)
	}
	if !edited.UpdatedAt.After(created) {
		t.Errorf("Expected UpdatedAt to advance on edit")
	}
}

func TestSaveFormForeignEdit(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestClub(t, db, "user-1", "Chess Club")
	intruder := createTestClub(t, db, "user-2", "Robotics Club")

	form, err := services.SaveForm(db, owner, &services.FormInput{Title: "Signup"})
	if err != nil {
		t.Fatalf("Failed to create form: %v", err)
	}

	_, err = services.SaveForm(db, intruder, &services.FormInput{ID: form.ID, Title: "Hijack"})
	if !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("Expected ErrForbidden, got %v", err)
	}
}

func TestSubmitResponse(t *testing.T) {
	db := setupTestDB(t)
	club := createTestClub(t, db, "user-1", "Chess Club")

	form, err := services.SaveForm(db, club, &services.FormInput{Title: "Signup"})
	if err != nil {
		t.Fatalf("Failed to create form: %v", err)
	}

	first, err := services.SubmitResponse(db, form.ID, map[string]interface{}{"name": "Ada"})
	if err != nil {
		t.Fatalf("Failed to submit response: %v", err)
	}
	second, err := services.SubmitResponse(db, form.ID, map[string]interface{}{"name": "Grace"})
	if err != nil {
		t.Fatalf("Failed to submit second response: %v", err)
	}

	if first.ID == second.ID {
		t.Errorf("Expected unique response ids, both were %q", first.ID)
	}
	if second.SubmittedAt.Before(first.SubmittedAt) {
		t.Errorf("Expected non-decreasing SubmittedAt")
	}

	var count int64
	db.Model(&models.FormResponse{}).Where("form_id = ?", form.ID).Count(&count)
	if count != 2 {
		t.Errorf("Expected 2 response rows, got %d", count)
	}
}

func TestSubmitResponseUnknownForm(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.SubmitResponse(db, "form_nope", map[string]interface{}{"a": "b"})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestListResponsesOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestClub(t, db, "user-1", "Chess Club")
	intruder := createTestClub(t, db, "user-2", "Robotics Club")

	form, err := services.SaveForm(db, owner, &services.FormInput{Title: "Signup"})
	if err != nil {
		t.Fatalf("Failed to create form: %v", err)
	}
	if _, err := services.SubmitResponse(db, form.ID, map[string]interface{}{"name": "Ada"}); err != nil {
		t.Fatalf("Failed to submit response: %v", err)
	}

	_, _, err = services.ListResponses(db, intruder, form.ID)
	if !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("Expected ErrForbidden for foreign club, got %v", err)
	}

	_, _, err = services.ListResponses(db, owner, "form_nope")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for unknown form, got %v", err)
	}

	gotForm, responses, err := services.ListResponses(db, owner, form.ID)
	if err != nil {
		t.Fatalf("Failed to list responses: %v", err)
	}
	if gotForm.ID != form.ID {
		t.Errorf("Expected the form back with its responses")
	}
	if len(responses) != 1 {
		t.Fatalf("Expected 1 response, got %d", len(responses))
	}
}

func TestDeleteResponse(t *testing.T) {
	db := setupTestDB(t)
	club := createTestClub(t, db, "user-1", "Chess Club")

	form, err := services.SaveForm(db, club, &services.FormInput{Title: "Signup"})
	if err != nil {
		t.Fatalf("Failed to create form: %v", err)
	}
	keep, _ := services.SubmitResponse(db, form.ID, map[string]interface{}{"name": "Ada"})
	drop, _ := services.SubmitResponse(db, form.ID, map[string]interface{}{"name": "Grace"})

	if err := services.DeleteResponse(db, club, form.ID, drop.ID); err != nil {
		t.Fatalf("Failed to delete response: %v", err)
	}
	// Deleting the same response again is a no-op.
	if err := services.DeleteResponse(db, club, form.ID, drop.ID); err != nil {
		t.Fatalf("Expected repeat delete to be a no-op, got %v", err)
	}

	_, responses, err := services.ListResponses(db, club, form.ID)
	if err != nil {
		t.Fatalf("Failed to list responses: %v", err)
	}
	if len(responses) != 1 || responses[0].ID != keep.ID {
		t.Errorf("Expected exactly the kept response to remain, got %+v", responses)
	}
}

func TestDeleteFormCascades(t *testing.T) {
	db := setupTestDB(t)
	club := createTestClub(t, db, "user-1", "Chess Club")

	form, err := services.SaveForm(db, club, &services.FormInput{Title: "Signup"})
	if err != nil {
		t.Fatalf("Failed to create form: %v", err)
	}
	if _, err := services.SubmitResponse(db, form.ID, map[string]interface{}{"name": "Ada"}); err != nil {
		t.Fatalf("Failed to submit response: %v", err)
	}

	if err := services.DeleteForm(db, club, form.ID); err != nil {
		t.Fatalf("Failed to delete form: %v", err)
	}

	var formCount, respCount int64
	db.Model(&models.FormDefinition{}).Where("id = ?", form.ID).Count(&formCount)
	db.Model(&models.FormResponse{}).Where("form_id = ?", form.ID).Count(&respCount)
	if formCount != 0 || respCount != 0 {
		t.Errorf("Expected form and responses gone, got %d forms, %d responses", formCount, respCount)
	}
}
