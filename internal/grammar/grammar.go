// Package grammar implements the character classes and percent-encoding
// rules of the URL grammar (RFC 3986 with WHATWG-style leniency).
package grammar

//go:generate go tool errtrace -w .

import (
	"github.com/netval/netval/internal/util"
)

// IsAlphaChar checks the ALPHA rule.
func IsAlphaChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// IsDigitChar checks the DIGIT rule.
func IsDigitChar(c byte) bool { return '0' <= c && c <= '9' }

// IsAlphanumChar checks the alphanum rule.
func IsAlphanumChar(c byte) bool { return IsAlphaChar(c) || IsDigitChar(c) }

// IsSchemeChar checks a non-leading scheme character:
// ALPHA / DIGIT / "+" / "-" / ".".
func IsSchemeChar(c byte) bool {
	return IsAlphanumChar(c) || c == '+' || c == '-' || c == '.'
}

var unreservedChars = map[byte]bool{
	'-': true,
	'.': true,
	'_': true,
	'~': true,
}

// IsCharUnreserved checks the unreserved rule.
func IsCharUnreserved(c byte) bool {
	return unreservedChars[c] || IsAlphanumChar(c)
}

var subDelimChars = map[byte]bool{
	'!':  true,
	'$':  true,
	'&':  true,
	'\'': true,
	'(':  true,
	')':  true,
	'*':  true,
	'+':  true,
	',':  true,
	';':  true,
	'=':  true,
}

// IsSubDelimChar checks the sub-delims rule.
func IsSubDelimChar(c byte) bool { return subDelimChars[c] }

// IsPathChar checks a character allowed verbatim in the path component
// (pchar / "/").
func IsPathChar(c byte) bool {
	return IsCharUnreserved(c) || IsSubDelimChar(c) || c == ':' || c == '@' || c == '/'
}

// IsQueryChar checks a character allowed verbatim in the query component.
func IsQueryChar(c byte) bool { return IsPathChar(c) || c == '?' }

// IsFragmentChar checks a character allowed verbatim in the fragment component.
func IsFragmentChar(c byte) bool { return IsPathChar(c) || c == '?' }

// IsUserinfoChar checks a character allowed verbatim in the userinfo
// component. The ":" separator is excluded: usernames and passwords are
// escaped independently and joined afterwards.
func IsUserinfoChar(c byte) bool {
	return IsCharUnreserved(c) || IsSubDelimChar(c)
}

var forbiddenHostChars = map[byte]bool{
	0x00: true,
	'\t': true,
	'\n': true,
	'\r': true,
	' ':  true,
	'#':  true,
	'/':  true,
	':':  true,
	'<':  true,
	'>':  true,
	'?':  true,
	'@':  true,
	'[':  true,
	'\\': true,
	']':  true,
	'^':  true,
	'|':  true,
}

// IsForbiddenHostChar checks a code point that may never appear in a
// registered host name.
func IsForbiddenHostChar(c byte) bool { return forbiddenHostChars[c] }

// SplitScheme splits s into its "scheme:" prefix and the remainder.
// A scheme is ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ) followed by ":".
// ok is false when s carries no scheme, i.e. the input is a relative
// reference.
func SplitScheme[T util.Byteseq](s T) (scheme, rest string, ok bool) {
	if len(s) == 0 || !IsAlphaChar(s[0]) {
		return "", "", false
	}
	for i := 1; i < len(s); i++ {
		switch {
		case s[i] == ':':
			return util.LCase(string(s[:i])), string(s[i+1:]), true
		case !IsSchemeChar(s[i]):
			return "", "", false
		}
	}
	return "", "", false
}

// TrimC0 removes leading and trailing ASCII control and space characters,
// reporting whether anything was removed.
func TrimC0(s string) (string, bool) {
	start, end := 0, len(s)
	for start < end && s[start] <= ' ' {
		start++
	}
	for end > start && s[end-1] <= ' ' {
		end--
	}
	return s[start:end], start > 0 || end < len(s)
}
