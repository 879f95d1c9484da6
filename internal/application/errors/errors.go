// Package apperrors defines application-level error types.
package apperrors

import (
	"fmt"
)

// ValidationError indicates an import document is malformed.
type ValidationError struct {
	Cause   error
	Field   string // Part of the document that failed validation
	Message string
	Details []string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	if len(e.Details) > 0 {
		msg = fmt.Sprintf("%s (%d issues)", msg, len(e.Details))
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, cause error, details ...string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Cause:   cause,
		Details: details,
	}
}

// ResolutionError indicates a secret value could not be obtained.
type ResolutionError struct {
	Cause   error
	EnvID   string
	EnvName string
	Field   string
}

func (e *ResolutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to resolve secret %q of environment %q: %v", e.Field, e.EnvName, e.Cause)
	}
	return fmt.Sprintf("failed to resolve secret %q of environment %q", e.Field, e.EnvName)
}

func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// NewResolutionError creates a new resolution error.
func NewResolutionError(envID, envName, field string, cause error) *ResolutionError {
	return &ResolutionError{
		EnvID:   envID,
		EnvName: envName,
		Field:   field,
		Cause:   cause,
	}
}

// ConfigurationError indicates system config or setup issue.
type ConfigurationError struct {
	Cause   error
	Aspect  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Aspect, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Aspect, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(aspect, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  aspect,
		Message: message,
		Cause:   cause,
	}
}
