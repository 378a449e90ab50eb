package extraction

import "errors"

var (
	// ErrNoSources indicates a run was requested without any source.
	ErrNoSources = errors.New("no sources provided")

	// ErrRunNotFound indicates the requested run ID is unknown or evicted.
	ErrRunNotFound = errors.New("extraction run not found")

	// ErrServiceClosed indicates the service pool was released.
	ErrServiceClosed = errors.New("extraction service is closed")
)
