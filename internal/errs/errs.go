// Package errs defines the error kinds the compliance core reports to
// callers. Every kind stays distinguishable through errors.Is / errors.As;
// nothing is ever collapsed into a default safe status.
package errs

import (
	"errors"
	"fmt"
)

// ErrConflict marks an insert for a key that already exists for that date
// (cooling process, hygiene check, task completion, report). Callers may
// choose to update instead of insert.
var ErrConflict = errors.New("record already exists")

// ErrNotFound marks a lookup that matched no record.
var ErrNotFound = errors.New("record not found")

// ErrDayLocked marks a task-completion attempt while the routine day is
// closed and the next unlock time has not been reached.
var ErrDayLocked = errors.New("routine day is locked")

// ValidationError reports a value outside a classification or evaluation
// function's domain. Values are never silently coerced.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PrerequisiteError aborts a synthesis run that has no active equipment,
// tasks or staff to work with. Nothing is written when it is returned.
type PrerequisiteError struct {
	Resource string
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("missing prerequisite data: no active %s", e.Resource)
}

// PersistenceError wraps a store failure with the operation that hit it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err as a PersistenceError unless it already carries one
// of the typed kinds above (conflicts keep their identity).
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConflict) || errors.Is(err, ErrNotFound) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
