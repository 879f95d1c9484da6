package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrNotObject is returned when a document or resource is not a JSON object.
	ErrNotObject = errors.New("not a JSON object")

	// ErrMissingResources is returned when a document has no resources array.
	ErrMissingResources = errors.New("document has no resources array")

	// ErrResourceNotFound is returned when no resource carries the requested id.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrFieldNotFound is returned when a resource's data has no such field.
	ErrFieldNotFound = errors.New("field not found")

	// ErrFieldNotMapping is returned when a field value is a scalar where a mapping is required.
	ErrFieldNotMapping = errors.New("field value is not a mapping")
)

// FieldError ties a failure to one field of one resource.
type FieldError struct {
	Err        error
	ResourceID string
	Field      string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("resource %s field %s: %v", e.ResourceID, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError creates a new field error.
func NewFieldError(resourceID, field string, err error) *FieldError {
	return &FieldError{
		ResourceID: resourceID,
		Field:      field,
		Err:        err,
	}
}
