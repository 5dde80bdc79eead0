package recipe

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure kinds of a build. Every one of them is
// fatal: the build stops and no archive is returned.
var (
	// ErrNotFound is returned when a referenced entity does not exist for the
	// instruction's tenant.
	ErrNotFound = errors.New("entity not found")

	// ErrStorageFailure is returned when a binary payload cannot be fetched
	// from object storage.
	ErrStorageFailure = errors.New("object storage failure")

	// ErrValidation is returned for malformed or incomplete instructions.
	ErrValidation = errors.New("invalid instruction")
)

// Error describes a failed build step.
type Error struct {
	// Op is the operation that failed, e.g. "resolvePackage".
	Op string

	// Err is the underlying error, wrapping one of the sentinel errors.
	Err error

	// Msg identifies the entity or detail involved.
	Msg string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func notFound(op, kind, key string) error {
	return &Error{
		Op:  op,
		Err: ErrNotFound,
		Msg: fmt.Sprintf("%s %q", kind, key),
	}
}

func storageFailure(op, key string, err error) error {
	return &Error{
		Op:  op,
		Err: fmt.Errorf("%w: %w", ErrStorageFailure, err),
		Msg: fmt.Sprintf("object %q", key),
	}
}
