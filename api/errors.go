package api

import "errors"

var (
	// ErrInvalidBody is returned for unparseable JSON request bodies.
	ErrInvalidBody = errors.New("invalid request body")

	// ErrMissingDisplayName is returned when a profile is created without a name.
	ErrMissingDisplayName = errors.New("display_name is required")

	// ErrMissingTargetRole is returned when a gap or suggestion request omits
	// the target role.
	ErrMissingTargetRole = errors.New("target_role is required")

	// ErrDocumentTooLarge is returned when an uploaded document exceeds the
	// configured cap.
	ErrDocumentTooLarge = errors.New("document exceeds the size limit")
)
