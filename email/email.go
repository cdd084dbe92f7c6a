// Package email parses and normalizes email addresses with an optional
// display name, in the "Display Name <local@domain>" form.
//
// Splitting off the display name is handled here; validation and
// normalization of the bare address is delegated to a pluggable
// [Validator]. The default validator performs syntactic checks only, with
// no DNS lookups or deliverability probing.
package email

//go:generate go tool errtrace -w .
//go:generate go tool mockgen -typed -package email_test -destination mock_validator_test.go . Validator

import (
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/netval/netval/internal/errorutil"
	"github.com/netval/netval/internal/util"
)

// MaxLength is the input length ceiling, in runes, checked before the
// address is handed to the validator.
const MaxLength = 2048

// Validator checks a bare address (no display name) and returns its
// normalized form.
type Validator interface {
	Validate(addr string) (string, error)
}

// DefaultValidator is the validator installed at startup. It performs
// purely syntactic checks, see the package documentation.
var DefaultValidator Validator = stdValidator{}

type validatorBox struct{ v Validator }

var validator atomic.Value

func init() {
	validator.Store(validatorBox{v: DefaultValidator})
}

// SetValidator replaces the address validator used by [Parse]. Passing nil
// disables validation: subsequent calls to [Parse] fail with
// [ErrValidatorUnavailable] until a validator is set again.
func SetValidator(v Validator) {
	validator.Store(validatorBox{v: v})
}

// Available checks whether an address validator is configured.
func Available() bool {
	return currentValidator() != nil
}

func currentValidator() Validator {
	box, _ := validator.Load().(validatorBox)
	return box.v
}

// Parse parses src as an email address with an optional display name and
// normalizes the address through the configured [Validator]. When no
// display name is present, the name defaults to the local part of the
// normalized address, case preserved.
func Parse[T util.Byteseq](src T) (Addr, error) {
	s := string(src)
	if utf8.RuneCountInString(s) > MaxLength {
		return Addr{}, errtrace.Wrap(errorutil.NewWrapperError(ErrTooLong,
			"length must not exceed %d characters", MaxLength))
	}

	name, addr, hasName, err := splitDisplayName(s)
	if err != nil {
		return Addr{}, errtrace.Wrap(err)
	}

	v := currentValidator()
	if v == nil {
		return Addr{}, errtrace.Wrap(ErrValidatorUnavailable)
	}
	norm, err := v.Validate(addr)
	if err != nil {
		return Addr{}, errtrace.Wrap(errorutil.NewWrapperError(ErrSyntax, err))
	}

	if !hasName {
		if i := strings.LastIndexByte(norm, '@'); i >= 0 {
			name = norm[:i]
		} else {
			name = norm
		}
	}
	return Addr{name: name, addr: norm}, nil
}

// splitDisplayName splits "Display Name <addr>" inputs at the last "<".
// Quoted display names are unquoted; unquoted ones are restricted to atext
// characters and spaces, so a bare "a.b <c@d.com>" is rejected rather than
// silently accepted as a name with a dot.
func splitDisplayName(s string) (name, addr string, hasName bool, err error) {
	s = strings.TrimSpace(s)

	i := strings.LastIndexByte(s, '<')
	if i < 0 {
		return "", s, false, nil
	}
	j := strings.LastIndexByte(s, '>')
	if j < i {
		return "", "", false, errtrace.Wrap(errorutil.NewWrapperError(ErrSyntax, "unclosed angle bracket"))
	}
	if strings.TrimSpace(s[j+1:]) != "" {
		return "", "", false, errtrace.Wrap(errorutil.NewWrapperError(ErrSyntax, "unexpected characters after address"))
	}
	addr = s[i+1 : j]

	name = strings.TrimSpace(s[:i])
	if name == "" {
		return "", addr, false, nil
	}
	if name[0] == '"' {
		if len(name) < 2 || name[len(name)-1] != '"' {
			return "", "", false, errtrace.Wrap(errorutil.NewWrapperError(ErrSyntax, "unclosed quoted display name"))
		}
		name = unquoteDisplayName(name[1 : len(name)-1])
	} else {
		for _, r := range name {
			if r == ' ' || isAtextRune(r) {
				continue
			}
			return "", "", false, errtrace.Wrap(errorutil.NewWrapperError(ErrSyntax,
				"invalid character %q in unquoted display name", r))
		}
	}
	return name, addr, true, nil
}

func unquoteDisplayName(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// atext per RFC 5322, plus every code point above ASCII for
// internationalized names and local parts.
func isAtextRune(r rune) bool {
	if r >= 0x80 {
		return true
	}
	c := byte(r)
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '/', '=', '?', '^', '_', '`', '{', '|', '}', '~':
		return true
	}
	return false
}
