// Package forms normalizes stored form schemas. Definitions authored before
// sections existed stored a flat question array; newer ones store an array of
// sections each holding a question array. Both shapes must keep working for
// already-stored definitions, so everything funnels through Normalize and the
// rest of the code only ever sees the canonical shape.
package forms

import (
	"encoding/json"
	"fmt"
)

// Section is one group of questions in the canonical schema.
type Section struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Questions   []map[string]interface{} `json:"questions"`
}

// Schema is the canonical in-memory form shape. Sections drives grouped
// rendering (including gotoSections branching); FlatFields is the ordered
// question list that drives the response table's column set. Both views share
// the same underlying question maps.
type Schema struct {
	Sections   []Section                `json:"sections"`
	FlatFields []map[string]interface{} `json:"flatFields"`
}

// Normalize converts a stored fields value, flat or sectioned, into a Schema.
// Invalid or absent input yields a single empty "main" section. Questions get
// generated ids (q_<n>) and labels (Question <n>) where missing, numbered by
// flattened position starting at 1.
func Normalize(raw []byte) Schema {
	var fields []map[string]interface{}
	if len(raw) > 0 {
		// Malformed input is treated the same as absent input.
		_ = json.Unmarshal(raw, &fields)
	}

	var sections []Section
	if isSectioned(fields) {
		sections = make([]Section, 0, len(fields))
		for i, sec := range fields {
			sections = append(sections, Section{
				ID:          stringOr(sec["id"], fmt.Sprintf("section_%d", i)),
				Title:       stringOr(sec["title"], ""),
				Description: stringOr(sec["description"], ""),
				Questions:   questionList(sec["questions"]),
			})
		}
	} else {
		// Flat input becomes a single implicit section.
		questions := make([]map[string]interface{}, 0, len(fields))
		for _, q := range fields {
			if q != nil {
				questions = append(questions, q)
			}
		}
		sections = []Section{{ID: "main", Questions: questions}}
	}

	flat := make([]map[string]interface{}, 0)
	pos := 0
	for si := range sections {
		for _, q := range sections[si].Questions {
			pos++
			if s, ok := q["id"].(string); !ok || s == "" {
				q["id"] = fmt.Sprintf("q_%d", pos)
			}
			if s, ok := q["label"].(string); !ok || s == "" {
				q["label"] = fmt.Sprintf("Question %d", pos)
			}
			if _, ok := q["type"].(string); !ok {
				q["type"] = "text"
			}
			if _, ok := q["required"].(bool); !ok {
				q["required"] = false
			}
			flat = append(flat, q)
		}
	}

	return Schema{Sections: sections, FlatFields: flat}
}

// isSectioned reports whether fields is a non-empty sequence whose first
// element carries a questions array. That is the only shape marker; flat
// questions never have one.
func isSectioned(fields []map[string]interface{}) bool {
	if len(fields) == 0 || fields[0] == nil {
		return false
	}
	_, ok := fields[0]["questions"].([]interface{})
	return ok
}

// questionList coerces a section's questions value into object maps,
// dropping anything that is not an object.
func questionList(v interface{}) []map[string]interface{} {
	items, ok := v.([]interface{})
	if !ok {
		return []map[string]interface{}{}
	}
	questions := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if q, ok := item.(map[string]interface{}); ok {
			questions = append(questions, q)
		}
	}
	return questions
}

func stringOr(v interface{}, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}
