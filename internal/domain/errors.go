package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or missing input. The caller can
// recover by correcting the request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports that a referenced item or loan does not exist.
type NotFoundError struct {
	Resource string // "item" or "loan"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConflictError reports that an operation would violate a circulation
// invariant. Expected and user-facing, not a bug.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

var (
	ErrAlreadyIssued   = &ConflictError{Reason: "item already issued"}
	ErrAlreadyReturned = &ConflictError{Reason: "loan already returned"}
)

// StorageError wraps a transient infrastructure failure. It is never
// retried by the service layer; it surfaces as a 500 and gets logged.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
