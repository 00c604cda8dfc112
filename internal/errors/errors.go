// Package errors provides a lightweight structured error type (CraftError)
// for category-based classification in the HTTP and CLI adapters.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of an error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryNotFound   ErrorCategory = "not_found"

	// Source document integrity errors (load-fatal)
	CategoryData       ErrorCategory = "data"
	CategoryFileSystem ErrorCategory = "filesystem"

	// External system integration errors
	CategoryNetwork ErrorCategory = "network"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// CraftError is a structured error with category, severity, and context
type CraftError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for CraftError
type ContextFields map[string]any

// Error implements the error interface
func (e *CraftError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *CraftError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *CraftError) WithContext(key string, value any) *CraftError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new CraftError
func New(category ErrorCategory, severity ErrorSeverity, message string) *CraftError {
	return &CraftError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new CraftError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *CraftError {
	return &CraftError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the outermost CraftError in err's chain.
func As(err error) (*CraftError, bool) {
	var ce *CraftError
	if stdErrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if ce, ok := As(err); ok {
		return ce.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a CraftError
func GetCategory(err error) ErrorCategory {
	if ce, ok := As(err); ok {
		return ce.Category
	}
	return CategoryInternal
}

// ValidationError creates a new validation error (400 Bad Request)
func ValidationError(message string) *CraftError {
	return &CraftError{
		Category: CategoryValidation,
		Severity: SeverityWarning,
		Message:  message,
	}
}

// NotFound creates a not-found error for a named resource
func NotFound(resource, id string) *CraftError {
	return New(CategoryNotFound, SeverityInfo, resource+" not found").
		WithContext(resource, id)
}

// WrapError wraps an existing error with a new CraftError
func WrapError(err error, category ErrorCategory, message string) *CraftError {
	return &CraftError{
		Category: category,
		Severity: SeverityError,
		Message:  message,
		Cause:    err,
	}
}
