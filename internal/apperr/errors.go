package apperr

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden indicates that the caller is not allowed to touch the resource.
var ErrForbidden = errors.New("forbidden")

var (
	// ErrDuplicateOrder is returned when a delivery for the order already exists.
	ErrDuplicateOrder = fmt.Errorf("%w: delivery for order already exists", ErrConflict)
	// ErrDuplicateDriver is returned when a driver profile for the user already exists.
	ErrDuplicateDriver = fmt.Errorf("%w: driver profile already exists", ErrConflict)
	// ErrAlreadyRated is returned on a second rating attempt.
	ErrAlreadyRated = fmt.Errorf("%w: delivery already rated", ErrConflict)
	// ErrInvalidTransition is returned by the delivery state machine.
	ErrInvalidTransition = fmt.Errorf("%w: invalid status transition", ErrConflict)
	// ErrInvalidState is returned when an operation does not apply to the current status.
	ErrInvalidState = fmt.Errorf("%w: invalid delivery state", ErrConflict)
)

// ErrDriverUnavailable is returned when a driver can not take a delivery.
var ErrDriverUnavailable = errors.New("driver is not available")

// ErrNotVerified is returned when an unverified driver tries to go online.
var ErrNotVerified = errors.New("driver is not verified")

// Invalidf wraps ErrInvalid with a formatted message.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
