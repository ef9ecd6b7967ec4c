// Package apperror defines the error taxonomy shared by services and
// handlers.
package apperror

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("permission denied")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError is malformed input. Fields carries per-field messages.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	if e.Message == "" {
		return strings.Join(parts, ", ")
	}
	return e.Message + " (" + strings.Join(parts, ", ") + ")"
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Add appends msg to the messages of field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// HasErrors reports whether any message has been collected.
func (e *ValidationError) HasErrors() bool {
	return e.Message != "" || len(e.Fields) > 0
}

// OrNil returns e when it carries at least one message, nil otherwise.
func (e *ValidationError) OrNil() error {
	if e == nil || !e.HasErrors() {
		return nil
	}
	return e
}

func Validation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func FieldError(field, msg string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, msg)
	return e
}

type statusError struct {
	kind error
	msg  string
}

func (e *statusError) Error() string { return e.msg }

func (e *statusError) Unwrap() error { return e.kind }

func Forbidden(msg string) error {
	return &statusError{kind: ErrForbidden, msg: msg}
}

func NotFound(msg string) error {
	return &statusError{kind: ErrNotFound, msg: msg}
}

func Unauthorized(msg string) error {
	return &statusError{kind: ErrUnauthorized, msg: msg}
}
