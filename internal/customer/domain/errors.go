package domain

import (
	"github.com/allisson/cardwatch/internal/errors"
)

// Customer domain errors.
var (
	// ErrCustomerNotFound indicates no customer exists for the (currency, id) pair.
	ErrCustomerNotFound = errors.Wrap(errors.ErrNotFound, "customer not found")

	// ErrInvalidCurrency indicates the merchant currency is not supported.
	ErrInvalidCurrency = errors.Wrap(errors.ErrInvalidInput, "invalid merchant currency")

	// ErrInvalidStatusFilter indicates an unknown expiration status filter.
	ErrInvalidStatusFilter = errors.Wrap(errors.ErrInvalidInput, "invalid status filter")

	// ErrInvalidRecord indicates a platform record failed boundary validation.
	ErrInvalidRecord = errors.Wrap(errors.ErrInvalidInput, "invalid platform record")

	// ErrPlatformUnavailable indicates the payment platform could not be reached or refused the request.
	ErrPlatformUnavailable = errors.Wrap(errors.ErrUnavailable, "payment platform unavailable")

	// ErrSyncInProgress indicates the merchant account is already being synchronized.
	ErrSyncInProgress = errors.Wrap(errors.ErrConflict, "sync already in progress")

	// ErrSyncRunNotFound indicates no synchronization has been recorded yet.
	ErrSyncRunNotFound = errors.Wrap(errors.ErrNotFound, "sync run not found")
)
