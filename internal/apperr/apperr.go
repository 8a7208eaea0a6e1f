// Package apperr defines the error taxonomy shared across the API:
// validation and auth failures, write failures at the mutation
// gateways, and subscription failures on the stream.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks an operation against a record that does not
	// exist. Usually found wrapped inside a WriteError.
	ErrNotFound = errors.New("record not found")

	// ErrSaveInFlight rejects a save submitted while a previous save
	// on the same form has not settled yet.
	ErrSaveInFlight = errors.New("save already in flight")
)

// ValidationError is a user-facing message about rejected input.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// AuthError wraps a credential or token failure. The underlying
// message is passed through to the client as-is.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return e.Err.Error() }
func (e *AuthError) Unwrap() error { return e.Err }

// WriteError describes a failed mutation: which operation, against
// which collection, and for which record.
type WriteError struct {
	Op         string
	Collection string
	ID         string
	Err        error
}

func (e *WriteError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
	}
	return fmt.Sprintf("%s %s %s: %v", e.Op, e.Collection, e.ID, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// SubscriptionError describes a failed collection subscription or
// snapshot load.
type SubscriptionError struct {
	Collection string
	Err        error
}

func (e *SubscriptionError) Error() string {
	return fmt.Sprintf("subscribe %s: %v", e.Collection, e.Err)
}

func (e *SubscriptionError) Unwrap() error { return e.Err }
