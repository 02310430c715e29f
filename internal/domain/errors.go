package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors - match with errors.Is()
var (
	// ErrInvalidInput covers malformed or wrong-kind identifiers and malformed payloads
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a point lookup or delete target is absent
	ErrNotFound = errors.New("not found")
	// ErrNoOp is returned when an update resolves to zero field changes
	ErrNoOp = errors.New("no changes requested")
	// ErrDuplicateName is returned when a sibling already has the requested name
	ErrDuplicateName = errors.New("duplicate name")
	// ErrTargetNotFound is returned when the destination of a move or create is absent
	ErrTargetNotFound = errors.New("target not found")
	// ErrCycleDetected is returned when a move would place a folder under itself
	ErrCycleDetected = errors.New("cycle detected")
	// ErrRootFolder is returned for operations the root folder does not support
	ErrRootFolder = errors.New("operation not allowed on the root folder")
)

// ConflictError represents a name collision with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (folder, project, list, tag)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrDuplicateName
func (e *ConflictError) Is(target error) bool {
	return target == ErrDuplicateName
}

// DBError wraps a backend failure. The cause is kept for logging only.
type DBError struct {
	Op    string
	Cause error
}

func (e *DBError) Error() string {
	return fmt.Sprintf("database error: %s: %v", e.Op, e.Cause)
}

func (e *DBError) Unwrap() error { return e.Cause }

// WrapDB wraps err in a DBError unless it is nil or already classified.
func WrapDB(op string, err error) error {
	if err == nil {
		return nil
	}
	var dbErr *DBError
	if errors.As(err, &dbErr) || IsClassified(err) {
		return err
	}
	return &DBError{Op: op, Cause: err}
}

// IsClassified reports whether err matches one of the domain sentinels.
func IsClassified(err error) bool {
	for _, target := range []error{
		ErrInvalidInput,
		ErrNotFound,
		ErrNoOp,
		ErrDuplicateName,
		ErrTargetNotFound,
		ErrCycleDetected,
		ErrRootFolder,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
