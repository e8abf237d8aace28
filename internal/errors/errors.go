// Package errors provides typed domain errors for the affinity backend.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeMissingField indicates a required column is absent from the input
	TypeMissingField Type = "MISSING_FIELD"

	// TypeEmptyDataset indicates the dataset produced zero baskets
	TypeEmptyDataset Type = "EMPTY_DATASET"

	// TypeInvalidParameter indicates a threshold or K outside its documented domain
	TypeInvalidParameter Type = "INVALID_PARAMETER"

	// TypeDataLoad indicates a failure while loading or joining the source tables
	TypeDataLoad Type = "DATA_LOAD"

	// TypeNotFound indicates a missing resource (no analysis result yet, unknown product)
	TypeNotFound Type = "NOT_FOUND"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// TypeOf returns the domain type of an error, or TypeInternal for plain errors
func TypeOf(err error) Type {
	if e, ok := err.(*Error); ok {
		return e.Type
	}
	return TypeInternal
}

// MissingField creates a missing-column error
func MissingField(table, column string) *Error {
	return Newf(TypeMissingField, "table %s is missing required column %q", table, column)
}

// EmptyDataset creates an empty-dataset error
func EmptyDataset() *Error {
	return New(TypeEmptyDataset, "dataset contains no baskets; metric denominators are undefined")
}

// InvalidParameter creates an invalid-parameter error
func InvalidParameter(name string, value interface{}, domain string) *Error {
	return Newf(TypeInvalidParameter, "parameter %s=%v outside domain %s", name, value, domain)
}

// DataLoad wraps a loading failure
func DataLoad(message string, cause error) *Error {
	return Wrap(TypeDataLoad, message, cause)
}

// NotFound creates a not found error
func NotFound(resourceType, identifier string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", resourceType, identifier)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
