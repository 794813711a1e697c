package prefs

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat matches every FormatError.
	ErrFormat = errors.New("prefs: value format")
	// ErrBounds matches every BoundsError.
	ErrBounds = errors.New("prefs: invalid bounds")
	// ErrDuplicateEntry indicates a container already holds an entry with the
	// same name.
	ErrDuplicateEntry = errors.New("prefs: duplicate entry")
	// ErrNilContainer indicates entries were added to a nil container.
	ErrNilContainer = errors.New("prefs: container is nil")
	// ErrNilEntry indicates a nil entry was passed to a container.
	ErrNilEntry = errors.New("prefs: entry is nil")
	// ErrNoEvaluator indicates an expression rule was compiled without an
	// evaluator.
	ErrNoEvaluator = errors.New("prefs: evaluator not configured")
)

// FormatError reports stored text that cannot be read as the requested
// numeric kind. It usually points at corrupted or hand-edited state.
type FormatError struct {
	Entry string
	Value string
	Kind  Kind
	Err   error
}

func (e *FormatError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("prefs: entry %q: value %q is not a valid %s: %v", e.Entry, e.Value, e.Kind, e.Err)
}

func (e *FormatError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// BoundsError reports a minimum/maximum pair that would cross.
type BoundsError struct {
	Entry   string
	Minimum float64
	Maximum float64
}

func (e *BoundsError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("prefs: entry %q: maximum %v must be greater than or equal to minimum %v", e.Entry, e.Maximum, e.Minimum)
}

// Is matches ErrBounds.
func (e *BoundsError) Is(target error) bool {
	return target == ErrBounds
}
