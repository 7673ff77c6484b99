package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	// ErrDuplicateSlot is returned when (link, date, start time) is already taken.
	ErrDuplicateSlot = errors.New("slot already booked")
)
