package scheduling

import "errors"

// Domain errors surfaced by the booking core. Handlers map these onto the
// HTTP response envelope; nothing here is fatal.
var (
	// ErrMalformedTime means the time string did not parse as a 12-hour clock value.
	ErrMalformedTime = errors.New("time must be a 12-hour clock value like \"09:15 AM\"")

	// ErrMalformedDate means the date string did not parse as YYYY-MM-DD.
	ErrMalformedDate = errors.New("date must be formatted as YYYY-MM-DD")

	// ErrSlotTaken means another non-cancelled appointment already holds the slot.
	ErrSlotTaken = errors.New("selected slot is already booked")

	// ErrNotFound covers both a missing appointment and an ownership mismatch,
	// so callers cannot probe for other users' bookings.
	ErrNotFound = errors.New("appointment not found")

	// ErrNotAllowed means the appointment's current status forbids the transition.
	ErrNotAllowed = errors.New("appointment status does not permit this action")
)
