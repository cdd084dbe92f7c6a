package url

import "github.com/netval/netval/internal/errorutil"

// Error represents a URL validation error.
// See [errorutil.Error].
type Error = errorutil.Error

// Input errors reported before parsing begins.
const (
	ErrEmptyInput      Error = "input is empty"
	ErrInvalidEncoding Error = "invalid utf-8 encoding"
)

// Structural parse errors.
const (
	ErrRelativeURL       Error = "relative URL without a base"
	ErrEmptyHost         Error = "empty host"
	ErrInvalidPort       Error = "invalid port number"
	ErrInvalidIPv6       Error = "invalid IPv6 address"
	ErrInvalidDomain     Error = "invalid international domain name"
	ErrSyntaxViolation   Error = "URL syntax violation"
	ErrControlCharacters Error = "leading or trailing control or space character are ignored in URLs"
)

// Constraint errors.
const (
	ErrUnsupportedScheme Error = "unsupported URL scheme"
	ErrTooLong           Error = "URL too long"
)
