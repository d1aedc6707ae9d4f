package plan

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// documentSchema describes the stored plan document shape. Dates are left as
// bare value types because the store accepts several representations
// (RFC 3339, bare dates, epoch timestamps); dateutil normalizes them on decode.
var documentSchema = map[string]any{
	"type":     "object",
	"required": []any{"id", "lessons"},
	"properties": map[string]any{
		"id":         map[string]any{"type": "string", "minLength": 1},
		"student_id": map[string]any{"type": "string"},
		"lessons": map[string]any{
			"type":  "array",
			"items": lessonSchema,
		},
		"review_queue": poolSchema,
		"mastered":     poolSchema,
	},
}

var lessonSchema = map[string]any{
	"type":     "object",
	"required": []any{"id", "scheduled_date"},
	"properties": map[string]any{
		"id":             map[string]any{"type": "string", "minLength": 1},
		"title":          map[string]any{"type": "string"},
		"scheduled_date": dateSchema,
		"items":          map[string]any{"type": "array", "items": unitSchema},
		"structures":     map[string]any{"type": "array", "items": unitSchema},
	},
}

var unitSchema = map[string]any{
	"type":     "object",
	"required": []any{"text"},
	"properties": map[string]any{
		"id":          map[string]any{"type": "string"},
		"kind":        map[string]any{"enum": []any{"item", "structure"}},
		"text":        map[string]any{"type": "string", "minLength": 1},
		"translation": map[string]any{"type": "string"},
		"notes":       map[string]any{"type": "string"},
		"schedule": map[string]any{
			"type": []any{"object", "null"},
			"properties": map[string]any{
				"interval":    map[string]any{"type": "number", "minimum": 0},
				"due_date":    dateSchema,
				"repetitions": map[string]any{"type": "integer", "minimum": 0},
				"ease_factor": map[string]any{"type": "number"},
				"last_grade":  map[string]any{"type": "integer", "minimum": 0, "maximum": 5},
			},
		},
		"last_reviewed_at": dateSchema,
		"updated_at":       dateSchema,
	},
}

var poolSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": unitSchema,
}

var dateSchema = map[string]any{
	"type": []any{"string", "number", "null"},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler expects a parsed JSON value, not raw bytes.
		raw, err := json.Marshal(documentSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://plan-document.json"
		if err := c.AddResource(url, parsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

// ValidateDocument checks raw JSON against the plan document schema.
func ValidateDocument(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := compiled()
	if err != nil {
		return fmt.Errorf("compile plan schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("plan document: %w", err)
	}
	return nil
}

// Decode validates and unmarshals a stored plan document, then checks the
// pool-exclusivity invariant. This is the single entry point for plan JSON
// crossing into the engine.
func Decode(raw []byte) (*Plan, error) {
	if err := ValidateDocument(raw); err != nil {
		return nil, err
	}
	var p Plan
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	p.EnsurePools()
	if err := CheckExclusivity(&p); err != nil {
		return nil, fmt.Errorf("plan %s: %w", p.ID, err)
	}
	return &p, nil
}

// Encode marshals a plan back into its stored document form.
func Encode(p *Plan) ([]byte, error) {
	p.EnsurePools()
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode plan %s: %w", p.ID, err)
	}
	return raw, nil
}
