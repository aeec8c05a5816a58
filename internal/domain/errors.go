package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for attendance operations.
var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for malformed caller input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState is the base error for attendance rule violations.
	// The specific violations below all match it with errors.Is.
	ErrInvalidState = errors.New("invalid attendance state")

	ErrAlreadyCheckedIn  = fmt.Errorf("%w: already checked in today", ErrInvalidState)
	ErrNoCheckIn         = fmt.Errorf("%w: no check-in found for today", ErrInvalidState)
	ErrAlreadyCheckedOut = fmt.Errorf("%w: already checked out today", ErrInvalidState)

	// ErrStoreUnavailable marks a transient store or queue failure. Callers
	// may retry; check-in is idempotent against the per-day uniqueness rule.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrQueueEmpty is returned by a dequeue when no entry is visible.
	ErrQueueEmpty = errors.New("notification queue empty")

	// ErrDeliveryFailed marks a failed notification send. It never reaches
	// attendance callers; the worker retries and eventually dead-letters.
	ErrDeliveryFailed = errors.New("notification delivery failed")
)
