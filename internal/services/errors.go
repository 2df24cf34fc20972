package services

import "errors"

// Service error taxonomy. Handlers map these onto HTTP statuses with
// errors.Is; anything that doesn't match is treated as a storage failure.
var (
	// ErrValidation marks malformed or out-of-range input, rejected before
	// any mutation is attempted
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a raffle or ticket number that does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a transition whose precondition the ticket's current
	// state does not satisfy: a lost race, or an invalid state for the
	// operation. Callers may retry against a different number or re-fetch.
	ErrConflict = errors.New("conflict")
)
