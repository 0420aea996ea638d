package bank

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/smartquiz/internal/schema"
)

// fileSchema describes the YAML bank file layout.
var fileSchema = map[string]any{
	"type":                 "object",
	"required":             []any{"questions"},
	"additionalProperties": false,
	"properties": map[string]any{
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":                 "object",
				"required":             []any{"id", "category", "prompt", "choices", "answer"},
				"additionalProperties": false,
				"properties": map[string]any{
					"id":       map[string]any{"type": "integer", "minimum": 1},
					"category": map[string]any{"type": "string", "minLength": 1},
					"prompt":   map[string]any{"type": "string", "minLength": 1},
					"choices": map[string]any{
						"type":     "array",
						"minItems": ChoiceCount,
						"maxItems": ChoiceCount,
						"items":    map[string]any{"type": "string", "minLength": 1},
					},
					"answer":      map[string]any{"type": "integer", "minimum": 0, "maximum": ChoiceCount - 1},
					"explanation": map[string]any{"type": "string"},
				},
			},
		},
	},
}

type bankFile struct {
	Questions []Question `yaml:"questions"`
}

// Parse decodes a YAML bank document, validates its shape against the bank
// schema and then applies the question rules enforced by New.
func Parse(data []byte) (*Bank, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode bank yaml: %w", err)
	}

	// yaml.v3 yields Go ints and typed maps; normalize to JSON values.
	normalized, err := schema.Normalize(doc)
	if err != nil {
		return nil, fmt.Errorf("decode bank yaml: %w", err)
	}
	if err := schema.Validate("question-bank", fileSchema, normalized); err != nil {
		return nil, fmt.Errorf("bank validation failed: %w", err)
	}

	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode bank questions: %w", err)
	}
	return New(f.Questions)
}

// LoadFile reads and parses the YAML bank at path.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load bank %s: %w", path, err)
	}
	return b, nil
}
