package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies recoverable per-row normalization failures.
type ErrorKind string

const (
	ErrKindMalformedINN        ErrorKind = "malformed_inn"
	ErrKindUnknownCategoryCode ErrorKind = "unknown_category_code"
	ErrKindMissingField        ErrorKind = "missing_field"
)

// NormalizationError describes why a raw registry row was rejected. These
// errors are counted and skipped during a load, never fatal.
type NormalizationError struct {
	Kind  ErrorKind
	Field string
	Value string
}

func (e *NormalizationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: field %s", e.Kind, e.Field)
	}
	return fmt.Sprintf("%s: field %s value %q", e.Kind, e.Field, e.Value)
}

// IsNormalizationError reports whether err is a per-row rejection and, if
// so, returns it.
func IsNormalizationError(err error) (*NormalizationError, bool) {
	var normErr *NormalizationError
	if errors.As(err, &normErr) {
		return normErr, true
	}
	return nil, false
}
