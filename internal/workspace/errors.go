package workspace

import "errors"

// Failure classes surfaced by the engine. Nothing here is fatal: every
// failure leaves state unchanged and is reported to the user.
var (
	// ErrValidation marks an operation rejected before any backend call,
	// e.g. an illegal move.
	ErrValidation = errors.New("validation failed")

	// ErrConfirmationDeclined means the user kept their unsaved changes; the
	// requested operation was abandoned.
	ErrConfirmationDeclined = errors.New("confirmation declined")

	// ErrNotFound marks a reference (favorite, search hit) whose target no
	// longer exists anywhere the engine can see.
	ErrNotFound = errors.New("not found")
)
