// Package schema validates workspace documents against an embedded JSON Schema.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	apperrors "github.com/reglet-dev/envseal/internal/application/errors"
	"github.com/reglet-dev/envseal/internal/application/ports"
)

//go:embed workspace.schema.json
var workspaceSchema []byte

const schemaURL = "workspace.schema.json"

// Ensure interface compliance
var _ ports.DocumentValidator = (*Validator)(nil)

// Validator checks documents against the workspace schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the embedded workspace schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(schemaURL, bytes.NewReader(workspaceSchema)); err != nil {
		return nil, fmt.Errorf("failed to add workspace schema: %w", err)
	}

	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile workspace schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate returns an apperrors.ValidationError when document does not match.
func (v *Validator) Validate(document []byte) error {
	instance, err := unmarshalJSON(bytes.NewReader(document))
	if err != nil {
		return apperrors.NewValidationError("document", "not valid JSON", err)
	}

	if err := v.schema.Validate(instance); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return apperrors.NewValidationError("document", "does not match the workspace schema", err, collectMessages(validationErr)...)
		}
		return apperrors.NewValidationError("document", "schema validation failed", err)
	}
	return nil
}

// unmarshalJSON decodes r with json.Number values, as jsonschema v5 expects.
func unmarshalJSON(r io.Reader) (any, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); err == nil || err != io.EOF {
		return nil, fmt.Errorf("invalid character after top-level value")
	}
	return doc, nil
}

// collectMessages flattens the leaf messages of a validation error tree.
func collectMessages(err *jsonschema.ValidationError) []string {
	var messages []string

	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 && e.Message != "" {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)

	return messages
}
