package progress

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const snapshotSchemaURL = "schema://progress-snapshot.json"

var nullableTime = map[string]any{
	"type": []any{"string", "null"},
}

var lessonSchema = map[string]any{
	"type":     "object",
	"required": []any{"completed", "score", "timeSpent"},
	"properties": map[string]any{
		"completed":   map[string]any{"type": "boolean"},
		"score":       map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
		"timeSpent":   map[string]any{"type": "integer", "minimum": 0},
		"completedAt": nullableTime,
		"sequence": map[string]any{
			"type": []any{"object", "null"},
			"properties": map[string]any{
				"progress": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
				"completedUnits": map[string]any{
					"type":  []any{"array", "null"},
					"items": map[string]any{"type": "string"},
				},
				"currentUnit":   map[string]any{"type": "string"},
				"currentGroup":  map[string]any{"type": []any{"integer", "null"}, "minimum": 0},
				"lastStudiedAt": nullableTime,
			},
		},
	},
}

// snapshotSchema describes the persisted JSON document.
var snapshotSchema = map[string]any{
	"type":     "object",
	"required": []any{"version", "subjects", "overall"},
	"properties": map[string]any{
		"version":  map[string]any{"type": "integer", "minimum": 1},
		"revision": map[string]any{"type": "integer", "minimum": 0},
		"writer":   map[string]any{"type": "string"},
		"subjects": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":     "object",
				"required": []any{"lessons"},
				"properties": map[string]any{
					"lessons": map[string]any{
						"type":                 "object",
						"additionalProperties": lessonSchema,
					},
					"totalLessons":    map[string]any{"type": "integer", "minimum": 0},
					"overallProgress": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
				},
			},
		},
		"overall": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"totalCompleted":  map[string]any{"type": "integer", "minimum": 0},
				"totalLessons":    map[string]any{"type": "integer", "minimum": 0},
				"overallProgress": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
				"lastActiveDate":  nullableTime,
				"streakDays":      map[string]any{"type": "integer", "minimum": 0},
			},
		},
	},
}

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiledSnapshotSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any), not Go
		// literals with int values. Round-trip through JSON to get one.
		defBytes, err := json.Marshal(snapshotSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(snapshotSchemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(snapshotSchemaURL)
	})
	return compiledSchema, compileErr
}

// decodeSnapshot validates raw JSON against the snapshot schema and decodes it.
func decodeSnapshot(raw []byte) (*Snapshot, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrInvalidSnapshot, err)
	}

	schema, err := compiledSnapshotSchema()
	if err != nil {
		return nil, fmt.Errorf("compile snapshot schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return &snap, nil
}
