package repositories

import "errors"

// Sentinel errors shared by the repository implementations. Handlers map
// these onto HTTP status codes.
var (
	// ErrNotFound is returned when the referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidState is returned when a state transition is attempted on a
	// connection request that is no longer pending.
	ErrInvalidState = errors.New("request is not pending")
)
