// Package apperr defines the error taxonomy shared by the store,
// engine, and exporter. All errors are synchronous and local to the
// operation that produced them; no operation partially mutates state
// and then fails.
package apperr

import (
	"errors"
	"fmt"
)

// ErrEmptyLogs is returned when an export is attempted on a task with
// no log entries. Informational, not fatal.
var ErrEmptyLogs = errors.New("task has no log entries to export")

// ErrNotFound is returned when a task id or reference resolves to
// nothing.
var ErrNotFound = errors.New("task not found")

// ValidationError indicates caller-supplied input violated a
// precondition (empty name, empty project reference, empty
// confirmation comment). The operation is a no-op; the caller is
// expected to re-prompt.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidation creates a ValidationError for the given field.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConflictError indicates an operation forbidden by current entity
// state (archive or delete while running, second pending session).
// State is unchanged.
type ConflictError struct {
	Op     string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot %s: %s", e.Op, e.Reason)
}

// NewConflict creates a ConflictError for the given operation.
func NewConflict(op, reason string) *ConflictError {
	return &ConflictError{Op: op, Reason: reason}
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// StorageError indicates a persistence read or write failed. Reads
// degrade to "no prior state"; writes surface this error so the
// caller can warn that durability is compromised for the session.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage unavailable at %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorage wraps err as a StorageError for the given path.
func NewStorage(path string, err error) *StorageError {
	return &StorageError{Path: path, Err: err}
}

// IsStorage reports whether err is a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
