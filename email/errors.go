package email

import "github.com/netval/netval/internal/errorutil"

// Error represents an email validation error.
// See [errorutil.Error].
type Error = errorutil.Error

const (
	// ErrSyntax is returned for inputs that are not a valid address.
	ErrSyntax Error = "value is not a valid email address"
	// ErrTooLong is returned for inputs exceeding [MaxLength] before any
	// further validation is attempted.
	ErrTooLong Error = "email address is too long"
	// ErrValidatorUnavailable is returned by [Parse] when the address
	// validator has been unset with SetValidator(nil).
	ErrValidatorUnavailable Error = "no email validator is configured"
)
