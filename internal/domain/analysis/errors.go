package analysis

import "errors"

var (
	// ErrMalformedResponse output model bukan JSON object yang valid
	ErrMalformedResponse = errors.New("invalid response format from AI analysis")
	// ErrIncompleteResponse JSON valid tapi field wajib hilang
	ErrIncompleteResponse = errors.New("incomplete analysis result from AI")
	// ErrEmptyResponse tidak ada choice / content
	ErrEmptyResponse = errors.New("no analysis received from AI")
)
