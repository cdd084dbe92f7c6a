// Package idna converts Unicode host labels to their ASCII-compatible
// encoding (ACE, "xn--" labels) and back.
//
// The conversion profile mirrors the one used by URL parsers rather than
// the strict registration profile: STD3 ASCII rules are disabled so hosts
// like "foo_bar.example.com" survive, and non-transitional processing is
// used. Confusable detection is out of scope: look-alike Unicode labels are
// encoded, not rejected.
package idna

//go:generate go tool errtrace -w .

import (
	"strings"

	"braces.dev/errtrace"
	"golang.org/x/net/idna"

	"github.com/netval/netval/internal/errorutil"
	"github.com/netval/netval/internal/util"
)

// maxLabelLen is the DNS limit on a single encoded label, in octets.
const maxLabelLen = 63

const (
	ErrEmptyLabel   errorutil.Error = "empty host label"
	ErrInvalidLabel errorutil.Error = "invalid host label"
)

var profile = idna.New(
	idna.MapForLookup(),
	idna.StrictDomainName(false),
	idna.Transitional(false),
)

// EncodeLabel converts a single host label to its ASCII form.
//
// ASCII labels pass through unchanged except for lowercasing, which also
// makes encoding idempotent for labels already in "xn--" form. Labels that
// cannot be mapped, or that exceed 63 octets after encoding, fail with
// [ErrInvalidLabel].
func EncodeLabel(label string) (string, error) {
	if label == "" {
		return "", errtrace.Wrap(ErrEmptyLabel)
	}

	if util.IsASCII(label) {
		if len(label) > maxLabelLen {
			return "", errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidLabel, "label %q exceeds %d octets", label, maxLabelLen))
		}
		return util.LCase(label), nil
	}

	enc, err := profile.ToASCII(label)
	if err != nil || enc == "" || !util.IsASCII(enc) {
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidLabel, "label %q cannot be encoded", label))
	}
	if len(enc) > maxLabelLen {
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidLabel, "label %q exceeds %d octets after encoding", label, maxLabelLen))
	}
	return util.LCase(enc), nil
}

// Encode converts a dot-separated domain name to its ASCII form label by
// label. A single trailing empty label (root dot) is preserved; any other
// empty label fails with [ErrEmptyLabel].
func Encode(domain string) (string, error) {
	labels := strings.Split(domain, ".")
	for i, label := range labels {
		if label == "" {
			if i == len(labels)-1 {
				continue // root dot
			}
			return "", errtrace.Wrap(ErrEmptyLabel)
		}
		enc, err := EncodeLabel(label)
		if err != nil {
			return "", errtrace.Wrap(err)
		}
		labels[i] = enc
	}
	return strings.Join(labels, "."), nil
}

// Decode converts an ASCII domain name back to its Unicode form.
// Labels that fail to decode are returned unchanged.
func Decode(domain string) string {
	uni, err := profile.ToUnicode(domain)
	if err != nil {
		return domain
	}
	return uni
}
