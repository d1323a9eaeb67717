package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalid      = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrGone         = errors.New("gone")
)

// Validation wraps a validator error so callers can match ErrInvalid with
// errors.Is while the API layer still reaches field-level details through
// errors.As.
type Validation struct {
	Err error
}

func (v *Validation) Error() string { return v.Err.Error() }

func (v *Validation) Unwrap() error { return v.Err }

func (v *Validation) Is(target error) bool { return target == ErrInvalid }

// Invalid wraps err as a validation failure.
func Invalid(err error) error {
	return &Validation{Err: err}
}
