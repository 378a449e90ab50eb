package insight

import "errors"

var (
	// ErrEmptyRole indicates a blank target role was supplied.
	ErrEmptyRole = errors.New("empty target role")

	// ErrNoSkills indicates the profile has no skills to analyze.
	ErrNoSkills = errors.New("profile has no skills")
)
