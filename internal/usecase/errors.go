package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("resource already exists")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrMissingRegulation marks a recomputation attempted for a season
	// without the required regulation. This is a configuration precondition,
	// not a recoverable runtime case.
	ErrMissingRegulation = errors.New("required regulation is not configured")

	// ErrInvalidCriteria marks a rankingCriteria list containing a key
	// outside the supported vocabulary.
	ErrInvalidCriteria = errors.New("invalid ranking criteria")
)
