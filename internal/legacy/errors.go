package legacy

import (
	"errors"
	"fmt"
)

// ShapeError represents a failure to classify or convert a persisted tree.
//
// Shape errors are local and recoverable: the caller keeps the raw bytes,
// blocks editing, and never guesses at a partial conversion. The worst case
// is "cannot load this tree yet" - the in-memory state is never corrupted.
type ShapeError struct {
	// Code identifies the error category.
	Code ShapeErrorCode

	// Message is a human-readable description.
	Message string

	// Path locates the offending node, e.g. "and[2].items".
	Path string
}

// ShapeErrorCode categorizes shape errors.
type ShapeErrorCode string

const (
	// ErrCodeMalformedShape indicates a recognized legacy shape with an
	// impossible payload, such as an "and" key holding a non-array.
	ErrCodeMalformedShape ShapeErrorCode = "MALFORMED_LEGACY_SHAPE"

	// ErrCodeUnknownShape indicates non-empty input that matches none of
	// the known shapes.
	ErrCodeUnknownShape ShapeErrorCode = "UNKNOWN_SHAPE"
)

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (at %s)", e.Code, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsMalformedShape returns true if the error is a malformed-shape error.
// Uses errors.As to handle wrapped errors.
func IsMalformedShape(err error) bool {
	var se *ShapeError
	if errors.As(err, &se) {
		return se.Code == ErrCodeMalformedShape
	}
	return false
}

// IsUnknownShape returns true if the error is an unknown-shape error.
// Uses errors.As to handle wrapped errors.
func IsUnknownShape(err error) bool {
	var se *ShapeError
	if errors.As(err, &se) {
		return se.Code == ErrCodeUnknownShape
	}
	return false
}

func malformed(path, format string, args ...any) *ShapeError {
	return &ShapeError{
		Code:    ErrCodeMalformedShape,
		Message: fmt.Sprintf(format, args...),
		Path:    path,
	}
}

func unknown(format string, args ...any) *ShapeError {
	return &ShapeError{
		Code:    ErrCodeUnknownShape,
		Message: fmt.Sprintf(format, args...),
	}
}
