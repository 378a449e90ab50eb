package openai

import "errors"

// ErrEmptyResponse indicates the model returned no choices at all.
var ErrEmptyResponse = errors.New("oracle returned an empty response")
