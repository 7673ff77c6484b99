package errors

import "errors"

var (
	ErrNotFound = errors.New("availability window not found")

	ErrInvalidRange = errors.New("start time must be before end time")
)
