/*
errors.go - Centralized error types for the reservation engine

PURPOSE:
  All error types in one place. Every rejection the engine produces carries
  a human-readable reason identifying the field or rule that failed, and no
  rejection ever leaves a reservation half-updated.

ERROR CATEGORIES:
  1. Validation errors - malformed or out-of-range input, checked eagerly
  2. Lifecycle errors  - illegal transitions and unmet preconditions
  3. Lookup errors     - unknown locators

USAGE:
  if errors.Is(err, hotel.ErrPreconditionNotMet) { ... }

  var verr *hotel.ValidationError
  if errors.As(err, &verr) { fmt.Println(verr.Field) }
*/
package hotel

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDateRange is returned when departure is not strictly after
	// arrival.
	ErrInvalidDateRange = errors.New("invalid date range: departure must be after arrival")

	// ErrNotFound is returned when no reservation exists for a locator.
	ErrNotFound = errors.New("reservation not found")

	// ErrPreconditionNotMet is returned when a transition's precondition
	// fails (check-in without a room, cancel after checkout, and so on).
	ErrPreconditionNotMet = errors.New("precondition not met")

	// ErrAvailabilityConflict is returned when a date change targets a span
	// with zero free rooms on some night.
	ErrAvailabilityConflict = errors.New("no rooms available for requested dates")

	// ErrInvalidAmount is returned for non-positive payment amounts.
	ErrInvalidAmount = errors.New("payment amount must be positive")

	// ErrAlreadyFullyPaid is returned when applying a payment to a
	// reservation with nothing owing.
	ErrAlreadyFullyPaid = errors.New("reservation is already fully paid")

	// ErrValidation is the sentinel wrapped by every ValidationError.
	ErrValidation = errors.New("validation failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports a single rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ValidationErrors aggregates every rejected field so the caller can show
// them all at once instead of fixing one at a time.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	msg := fmt.Sprintf("%d fields failed validation", len(e))
	for _, v := range e {
		msg += "; " + v.Error()
	}
	return msg
}

func (e ValidationErrors) Unwrap() error { return ErrValidation }

// TransitionError reports an illegal lifecycle transition.
type TransitionError struct {
	Locator string
	From    Status
	Event   Event
	Reason  string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("reservation %s: cannot %s while %s: %s",
		e.Locator, e.Event, e.From, e.Reason)
}

func (e *TransitionError) Unwrap() error { return ErrPreconditionNotMet }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation reports whether err is a client input problem.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrInvalidAmount)
}

// IsConflict reports whether err is a state conflict the caller can resolve
// by changing the request (different dates, different transition).
func IsConflict(err error) bool {
	return errors.Is(err, ErrPreconditionNotMet) ||
		errors.Is(err, ErrAvailabilityConflict) ||
		errors.Is(err, ErrAlreadyFullyPaid)
}

// IsNotFound reports whether err indicates an unknown locator.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
