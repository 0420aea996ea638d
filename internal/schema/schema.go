// Package schema validates decoded JSON values against JSON Schema
// definitions written as Go maps.
package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled caches schemas by name.
var compiled sync.Map // map[string]*jsonschema.Schema

// Validate checks v against def, compiling and caching def under name on
// first use. v must be a plain JSON value as produced by json.Unmarshal.
func Validate(name string, def map[string]any, v any) error {
	s, err := compile(name, def)
	if err != nil {
		return err
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("schema %s: %w", name, err)
	}
	return nil
}

// ValidateJSON decodes raw and validates it against def.
func ValidateJSON(name string, def map[string]any, raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return Validate(name, def, v)
}

// Normalize converts any JSON-marshalable value (for example a decoded YAML
// document) into the plain JSON value shape Validate expects.
func Normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	return out, nil
}

func compile(name string, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := compiled.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants plain JSON values, not Go-typed maps and slices.
	doc, err := Normalize(def)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}

	compiled.Store(name, s)
	return s, nil
}
