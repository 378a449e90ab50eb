package sources

import "errors"

var (
	// ErrEmptyText indicates the text adapter received blank input.
	ErrEmptyText = errors.New("empty text input")

	// ErrEmptyDocument indicates a document produced no text after conversion.
	ErrEmptyDocument = errors.New("document contains no text")

	// ErrUnsupportedFormat indicates a document extension with no converter.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrEmptyUsername indicates the GitHub adapter received a blank username.
	ErrEmptyUsername = errors.New("empty GitHub username")

	// ErrUserNotFound indicates the GitHub user does not exist.
	ErrUserNotFound = errors.New("GitHub user not found")

	// ErrGitHubAPI indicates an unexpected GitHub API response.
	ErrGitHubAPI = errors.New("GitHub API request failed")
)
