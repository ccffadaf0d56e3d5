package usecase

import "errors"

var (
	// ErrInvalidInput is returned when no usable ticker was supplied.
	ErrInvalidInput = errors.New("invalid ticker input")

	// ErrCapacity is returned when the selection is already full.
	ErrCapacity = errors.New("ticker selection is full")

	// ErrSessionNotFound is returned by a SessionRepository when the session does not exist or has expired.
	ErrSessionNotFound = errors.New("session not found")
)

// InputError carries a user-facing message for a rejected add request.
// It unwraps to ErrInvalidInput or ErrCapacity.
type InputError struct {
	Err     error
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Err
}
