package models

import "errors"

// Error taxonomy. Handlers map these to HTTP statuses; services wrap them
// with context using %w so errors.Is keeps working across layers.
var (
	// ErrNotFound: the requested album/media is absent or not owned by the
	// requesting user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrValidation: a required field is empty or malformed. Raised before
	// any store access.
	ErrValidation = errors.New("validation failed")

	// ErrAuthRequired: no valid session where one is mandated
	ErrAuthRequired = errors.New("authentication required")
)
