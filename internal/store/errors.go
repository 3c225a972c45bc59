package store

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by store operations. Callers match with
// errors.Is; the HTTP layer maps them onto status codes.
var (
	// ErrUnauthenticated means no session is present. The operation is
	// not retried.
	ErrUnauthenticated = errors.New("no active session")

	// ErrInvalidReference means no video id could be extracted from the
	// given URL. Nothing was sent to the gateway.
	ErrInvalidReference = errors.New("invalid video reference")

	// ErrNotFound means the operation targeted an id that does not
	// exist. No mutation took place.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned by the add-video path under
	// DuplicateError policy when the derived id is already present.
	ErrDuplicate = errors.New("video already in collection")

	// ErrEmptyName rejects blank board names on create and rename.
	ErrEmptyName = errors.New("board name must not be empty")
)

// PersistenceError reports a gateway call that was rejected or
// unreachable. When it is returned, the in-memory state touched by the
// failed operation has been left at (or rolled back to) its pre-call
// value.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistenceFailure reports whether err originated from a failed
// gateway call.
func IsPersistenceFailure(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

func persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
