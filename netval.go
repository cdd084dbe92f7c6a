// Package netval is the root facade over the url and email packages:
// validation and normalization of network-shaped configuration values.
package netval

//go:generate go tool errtrace -w .

import (
	"braces.dev/errtrace"

	"github.com/netval/netval/email"
	"github.com/netval/netval/url"
)

// ParseURL parses and normalizes src as a single-host URL under cs.
// See [url.Parse].
func ParseURL(src string, cs url.Constraints) (*url.URL, error) {
	return errtrace.Wrap2(url.Parse(src, cs))
}

// ParseDSN parses and validates src under a predefined scheme profile,
// with multi-host support where the profile calls for it.
// See [url.Kind.Parse].
func ParseDSN(kind url.Kind, src string) (*url.URL, error) {
	return errtrace.Wrap2(kind.Parse(src))
}

// ParseEmail parses and normalizes src as an email address with an
// optional display name. See [email.Parse].
func ParseEmail(src string) (email.Addr, error) {
	return errtrace.Wrap2(email.Parse(src))
}
