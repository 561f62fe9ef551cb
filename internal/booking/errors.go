// Package booking implements the booking ledger and the recurring
// series expander on top of pluggable stores. It owns the error
// taxonomy for booking operations: every expected failure is one of the
// sentinel errors below so callers can translate each kind into a
// distinct response, and "already booked" is never conflated with "not
// open for booking".
package booking

import "errors"

// ErrNotFound is returned when a referenced court, reservation or
// series does not exist. Handlers translate it into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrOutOfWindow is returned when the requested time range falls
// outside the court's operating hours.
var ErrOutOfWindow = errors.New("outside operating window")

// ErrInvalidDuration is returned when the requested duration is not in
// the court's allowed set.
var ErrInvalidDuration = errors.New("duration not allowed for this court")

// ErrForbidden is returned when the actor lacks permission for the
// requested visibility or action, e.g. cancelling somebody else's
// booking without the admin role.
var ErrForbidden = errors.New("forbidden")

// ErrSlotTaken is returned when an overlapping reservation already
// exists. This is the race-condition-sensitive case: the store must
// only report success when the check and the insert were atomic.
var ErrSlotTaken = errors.New("slot already booked")

// ErrValidation is returned for malformed input such as a non-positive
// duration, an unknown visibility value or a color on a private
// booking.
var ErrValidation = errors.New("invalid booking request")
