package errors

import "errors"

var (
	ErrNotFound = errors.New("booking link not found")

	ErrDuplicateLink = errors.New("booking link id already exists")
)
