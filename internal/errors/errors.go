// Package errors defines the error kinds shared by every layer. Use cases wrap a kind
// with context; HTTP handlers and CLI commands classify the result with KindOf.
package errors

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	// ErrNotFound indicates the requested customer or sync run does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the operation collides with one already running.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates a request parameter, setting or platform record is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates a missing or wrong API token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable indicates the payment platform or mail server could not serve the request.
	ErrUnavailable = errors.New("unavailable")
)

// kinds is ordered by precedence when an error wraps more than one kind.
var kinds = []error{ErrInvalidInput, ErrNotFound, ErrConflict, ErrUnauthorized, ErrUnavailable}

// KindOf returns the first error kind found in err's tree, or nil for internal errors.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Wrap adds context to err while preserving the error chain. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is like Wrap but formats the context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
