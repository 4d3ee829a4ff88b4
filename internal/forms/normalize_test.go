package forms

import (
	"testing"
)

func TestNormalizeFlatFields(t *testing.T) {
	raw := []byte(`[
		{"id": "name", "label": "Your name", "type": "text", "required": true},
		{"label": "Grade", "type": "select"}
	]`)

	schema := Normalize(raw)

	if len(schema.Sections) != 1 {
		t.Fatalf("Expected 1 section, got %d", len(schema.Sections))
	}
	if schema.Sections[0].ID != "main" {
		t.Errorf("Expected implicit section id 'main', got %q", schema.Sections[0].ID)
	}
	if len(schema.FlatFields) != 2 {
		t.Fatalf("Expected 2 flat fields, got %d", len(schema.FlatFields))
	}

	// Second question had no id; it is numbered by flattened position.
	if got := schema.FlatFields[1]["id"]; got != "q_2" {
		t.Errorf("Expected generated id 'q_2', got %v", got)
	}
	if got := schema.FlatFields[0]["id"]; got != "name" {
		t.Errorf("Expected authored id to survive, got %v", got)
	}
}

func TestNormalizeSectionedFields(t *testing.T) {
	raw := []byte(`[
		{"id": "about", "title": "About you", "questions": [
			{"id": "name", "label": "Name"},
			{"label": "Email"}
		]},
		{"questions": [
			{}
		]}
	]`)

	schema := Normalize(raw)

	if len(schema.Sections) != 2 {
		t.Fatalf("Expected 2 sections, got %d", len(schema.Sections))
	}
	if schema.Sections[0].ID != "about" {
		t.Errorf("Expected authored section id, got %q", schema.Sections[0].ID)
	}
	if schema.Sections[1].ID != "section_1" {
		t.Errorf("Expected generated section id 'section_1', got %q", schema.Sections[1].ID)
	}

	if len(schema.FlatFields) != 3 {
		t.Fatalf("Expected 3 flat fields, got %d", len(schema.FlatFields))
	}

	// Defaults are numbered across sections by flattened position.
	last := schema.FlatFields[2]
	if last["id"] != "q_3" {
		t.Errorf("Expected generated id 'q_3', got %v", last["id"])
	}
	if last["label"] != "Question 3" {
		t.Errorf("Expected generated label 'Question 3', got %v", last["label"])
	}
	if last["type"] != "text" {
		t.Errorf("Expected default type 'text', got %v", last["type"])
	}
	if last["required"] != false {
		t.Errorf("Expected default required false, got %v", last["required"])
	}
}

func TestNormalizeSharesQuestionMaps(t *testing.T) {
	raw := []byte(`[{"questions": [{"label": "Q"}]}]`)

	schema := Normalize(raw)

	if len(schema.FlatFields) != 1 || len(schema.Sections[0].Questions) != 1 {
		t.Fatalf("Unexpected schema shape: %+v", schema)
	}
	// The generated id written during flattening must be visible through the
	// section view too.
	if got := schema.Sections[0].Questions[0]["id"]; got != "q_1" {
		t.Errorf("Expected section view to share question maps, got id %v", got)
	}
}

func TestNormalizeInvalidInput(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(``), []byte(`not json`), []byte(`{"a":1}`)} {
		schema := Normalize(raw)
		if len(schema.Sections) != 1 || schema.Sections[0].ID != "main" {
			t.Errorf("Expected empty 'main' section for %q, got %+v", raw, schema.Sections)
		}
		if len(schema.FlatFields) != 0 {
			t.Errorf("Expected no flat fields for %q, got %d", raw, len(schema.FlatFields))
		}
	}
}

func TestNormalizeDropsNonObjectQuestions(t *testing.T) {
	raw := []byte(`[{"questions": [{"label": "ok"}, "stray", 42]}]`)

	schema := Normalize(raw)

	if len(schema.FlatFields) != 1 {
		t.Fatalf("Expected 1 question, got %d", len(schema.FlatFields))
	}
	if schema.FlatFields[0]["label"] != "ok" {
		t.Errorf("Expected surviving question, got %v", schema.FlatFields[0])
	}
}
