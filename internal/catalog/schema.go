package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const trailFileSchemaURL = "schema://trail-file.json"

// trailFileSchema describes the shape of a YAML trail file.
var trailFileSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"modules": map[string]any{
			"type":  "array",
			"items": moduleSchema,
		},
	},
	"required":             []any{"modules"},
	"additionalProperties": false,
}

var moduleSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":             map[string]any{"type": "string", "minLength": 1},
		"title":          map[string]any{"type": "string", "minLength": 1},
		"description":    map[string]any{"type": "string"},
		"hazard": map[string]any{
			"type": "string",
			"enum": []any{"flood", "landslide", "heat", "storm", "general"},
		},
		"estimated_time": map[string]any{"type": "string"},
		"reward":         map[string]any{"type": "string"},
		"pages": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{"type": "string"},
					"body":  map[string]any{"type": "string"},
					"kind": map[string]any{
						"type": "string",
						"enum": []any{"text", "image", "video"},
					},
					"hint": map[string]any{"type": "string"},
				},
				"required":             []any{"title", "body"},
				"additionalProperties": false,
			},
		},
		"quiz": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":     map[string]any{"type": "string", "minLength": 1},
					"prompt": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":     "array",
						"items":    map[string]any{"type": "string"},
						"minItems": 2,
					},
					"answer":      map[string]any{"type": "string"},
					"explanation": map[string]any{"type": "string"},
				},
				"required":             []any{"id", "prompt", "options", "answer"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"id", "title", "reward"},
	"additionalProperties": false,
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The jsonschema library expects a parsed JSON value, so the Go literal
	// (which holds ints) goes through JSON first.
	def, err := jsonValue(trailFileSchema)
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(trailFileSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(trailFileSchemaURL)
})

// validateShape checks a decoded trail document against the trail file schema.
func validateShape(doc any) error {
	parsed, err := jsonValue(doc)
	if err != nil {
		return fmt.Errorf("convert trail document: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile trail schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// jsonValue marshals v and parses it back so only JSON-native values remain.
func jsonValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}
