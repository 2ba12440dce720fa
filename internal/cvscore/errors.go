package cvscore

import "errors"

var (
	// ErrEmptyText is wrapped by the ValidationError for blank input.
	ErrEmptyText = errors.New("text is required")
	// ErrInvalidCatalog is returned by New for a catalog it cannot run with.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// ValidationError reports input rejected before any detector runs.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
