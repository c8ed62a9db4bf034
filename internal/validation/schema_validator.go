// Package validation checks JSON documents against compiled JSON schemas.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaValidator validates JSON data against one compiled schema
type SchemaValidator interface {
	ValidateFile(dataPath string) error
	ValidateBytes(data []byte) error
}

type validator struct {
	name   string
	schema *jsonschema.Schema
}

// NewSchemaValidator compiles schemaJSON under name (used in error messages)
func NewSchemaValidator(name string, schemaJSON []byte) (SchemaValidator, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", name, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource %s: %w", name, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	return &validator{name: name, schema: schema}, nil
}

// ValidateFile validates a JSON file
func (v *validator) ValidateFile(dataPath string) error {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("failed to read data file %s: %w", dataPath, err)
	}
	return v.ValidateBytes(data)
}

// ValidateBytes validates raw JSON data
func (v *validator) ValidateBytes(data []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse JSON data: %w", err)
	}

	if err := v.schema.Validate(doc); err != nil {
		return formatValidationError(v.name, err)
	}
	return nil
}

// formatValidationError flattens the error tree into one line per failure
func formatValidationError(name string, err error) error {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf("validation error: %w", err)
	}

	var lines []string
	collectErrors(validationErr, &lines)
	return fmt.Errorf("%s: schema validation failed:\n%s", name, strings.Join(lines, "\n"))
}

// collectErrors walks the causes depth first, keeping the leaf failures
func collectErrors(err *jsonschema.ValidationError, lines *[]string) {
	if len(err.Causes) == 0 {
		*lines = append(*lines, formatError(err))
		return
	}
	for _, cause := range err.Causes {
		collectErrors(cause, lines)
	}
}

func formatError(err *jsonschema.ValidationError) string {
	location := "(root)"
	if len(err.InstanceLocation) > 0 {
		location = "/" + strings.Join(err.InstanceLocation, "/")
	}

	keywords := ""
	if err.ErrorKind != nil {
		keywords = strings.Join(err.ErrorKind.KeywordPath(), ".")
	}
	if keywords == "" {
		return fmt.Sprintf("  - at %s: validation failed", location)
	}
	return fmt.Sprintf("  - at %s: %s validation failed", location, keywords)
}
