package recluster

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrRetriesExhausted wraps the last oracle failure once every retry
	// attempt has been used up.
	ErrRetriesExhausted = errors.New("retries exhausted")
)
