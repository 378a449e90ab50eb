package share

import "errors"

var (
	// ErrNotShared indicates the profile exists but is not published.
	ErrNotShared = errors.New("profile is not shared")
)
