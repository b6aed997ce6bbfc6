package domain

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the sign-in surface never reveals which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("access forbidden")

	// ErrSelfAction blocks a caller from changing their own role or deleting
	// their own account.
	ErrSelfAction = errors.New("cannot perform this action on own account")

	ErrAccountNotFound = errors.New("account not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrEmailTaken      = errors.New("email already registered")

	// ErrSetupComplete is returned by first-run setup once any account exists.
	ErrSetupComplete = errors.New("setup already completed")
)

// ValidationError carries a field-level message for malformed input. It is
// fully recoverable by resubmission.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
