package jsonx

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kaptinlin/jsonschema"
)

// ErrInvalidJSON is returned by Schema.Validate for input that is not JSON.
var ErrInvalidJSON = errors.New("invalid json")

// Schema is a compiled JSON schema used to check the shape of upstream
// responses before they are decoded.
type Schema struct {
	name   string
	schema *jsonschema.Schema
}

// CompileSchema compiles a JSON schema document.
func CompileSchema(name string, src []byte) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return &Schema{name: name, schema: schema}, nil
}

// MustCompileSchema is like CompileSchema but panics on error. It is meant
// for package-level schemas built from constants.
func MustCompileSchema(name string, src string) *Schema {
	s, err := CompileSchema(name, []byte(src))
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks data against the schema.
func (s *Schema) Validate(data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("%s: %w", s.name, ErrInvalidJSON)
	}
	result := s.schema.ValidateJSON(data)
	if result.IsValid() {
		return nil
	}
	return fmt.Errorf("%s: schema validation failed: %v", s.name, result.Errors)
}
