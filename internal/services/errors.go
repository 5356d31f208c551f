// Package services defines the business logic for misinformation entries,
// contributor aliases, and the leaderboard. This file centralizes the
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler/page layer.
package services

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrEntryNotFound indicates that the requested entry does not exist.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrNotOwner is returned when a user tries to change an entry they did
	// not submit.
	ErrNotOwner = errors.New("entry belongs to another user")

	// ErrAliasTaken is returned when the requested alias is already held by
	// another profile.
	ErrAliasTaken = errors.New("alias already taken")

	// ErrUnauthenticated is returned by operations that need a session when
	// none is present.
	ErrUnauthenticated = errors.New("not signed in")

	// ErrDeleteNotConfirmed is returned when a delete arrives without a valid
	// confirmation token for that entry.
	ErrDeleteNotConfirmed = errors.New("delete not confirmed")

	// ErrIdempotencyKeyReused is returned when an Idempotency-Key already
	// produced an entry that has since been deleted.
	ErrIdempotencyKeyReused = errors.New("idempotency key already used")
)

// AliasTakenMessage is the user-facing text for ErrAliasTaken.
const AliasTakenMessage = "This alias is already taken. Please choose another."

// ValidationError reports a field that failed input rules. No store call is
// made when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RemoteFault wraps a failure of the backing store: connectivity, timeouts,
// rejected writes, and mutations of missing or foreign entries. It is never
// retried automatically.
type RemoteFault struct {
	Op  string
	Err error
}

func (e *RemoteFault) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteFault) Unwrap() error { return e.Err }

// IsTimeout reports whether err is a store call that ran out of time.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

func fault(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RemoteFault{Op: op, Err: err}
}
