package model

import "errors"

var (
	// ErrMalformedInput marks client-input errors such as an unparseable
	// reservation date or a negative history count.
	ErrMalformedInput = errors.New("malformed input")

	// ErrPreprocessingMismatch marks a value that the fitted preprocessing
	// pipeline has never seen. The feature mapper only emits a closed
	// vocabulary, so this is an internal invariant violation.
	ErrPreprocessingMismatch = errors.New("preprocessing mismatch")

	// ErrModelUnavailable is returned by the inference engine once it has
	// settled into the unavailable state.
	ErrModelUnavailable = errors.New("model unavailable")
)
