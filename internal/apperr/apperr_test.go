package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidation("name", "must not be empty")
	if !IsValidation(err) {
		t.Error("expected IsValidation true")
	}
	if IsConflict(err) || IsStorage(err) {
		t.Error("validation error must not match other categories")
	}
	if msg := err.Error(); msg == "" {
		t.Error("expected a message")
	}

	wrapped := fmt.Errorf("create task: %w", err)
	if !IsValidation(wrapped) {
		t.Error("category must survive wrapping")
	}
}

func TestConflictError(t *testing.T) {
	err := NewConflict("delete", "task timer is running")
	if !IsConflict(err) {
		t.Error("expected IsConflict true")
	}
	if IsValidation(err) {
		t.Error("conflict error must not read as validation")
	}
}

func TestStorageError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorage("/data/tasks.json", cause)

	if !IsStorage(err) {
		t.Error("expected IsStorage true")
	}
	if !errors.Is(err, cause) {
		t.Error("expected the cause to be reachable via errors.Is")
	}

	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatal("expected errors.As to extract the storage error")
	}
	if se.Path != "/data/tasks.json" {
		t.Errorf("path = %q", se.Path)
	}
}

func TestSentinels(t *testing.T) {
	if !errors.Is(fmt.Errorf("export: %w", ErrEmptyLogs), ErrEmptyLogs) {
		t.Error("ErrEmptyLogs must survive wrapping")
	}
	if !errors.Is(fmt.Errorf("resolve: %w", ErrNotFound), ErrNotFound) {
		t.Error("ErrNotFound must survive wrapping")
	}
}
