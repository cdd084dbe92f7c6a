package email

import (
	"net"
	"strings"

	"braces.dev/errtrace"
	"golang.org/x/text/unicode/norm"

	"github.com/netval/netval/internal/errorutil"
	"github.com/netval/netval/internal/idna"
)

const (
	maxLocalLen  = 64  // octets, RFC 5321
	maxDomainLen = 255 // octets, RFC 1035
)

// stdValidator is the default [Validator]: purely syntactic RFC 5321/6531
// checks plus IDNA processing of the domain. The normalized form keeps the
// local part case as written and renders the domain in lowercase Unicode.
type stdValidator struct{}

func (stdValidator) Validate(addr string) (string, error) {
	for _, r := range addr {
		if r < ' ' || r == 0x7f {
			return "", errtrace.Wrap(errorutil.Errorf("control character in address"))
		}
	}

	at := strings.LastIndexByte(addr, '@')
	if at < 0 {
		return "", errtrace.Wrap(errorutil.Errorf("missing @-sign"))
	}
	local, domain := addr[:at], addr[at+1:]

	local, err := validateLocal(local)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	domain, err = validateDomain(domain)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	return local + "@" + domain, nil
}

func validateLocal(local string) (string, error) {
	if local == "" {
		return "", errtrace.Wrap(errorutil.Errorf("empty local part"))
	}
	local = norm.NFC.String(local)
	if len(local) > maxLocalLen {
		return "", errtrace.Wrap(errorutil.Errorf("local part exceeds %d octets", maxLocalLen))
	}

	prevDot := true // bans a leading dot
	for _, r := range local {
		switch {
		case r == '.':
			if prevDot {
				return "", errtrace.Wrap(errorutil.Errorf("consecutive or leading dot in local part"))
			}
			prevDot = true
		case isAtextRune(r):
			prevDot = false
		default:
			return "", errtrace.Wrap(errorutil.Errorf("invalid character %q in local part", r))
		}
	}
	if prevDot {
		return "", errtrace.Wrap(errorutil.Errorf("trailing dot in local part"))
	}
	return local, nil
}

func validateDomain(domain string) (string, error) {
	if domain == "" {
		return "", errtrace.Wrap(errorutil.Errorf("empty domain"))
	}
	// Address literals like [127.0.0.1] and bare IPs are not acceptable
	// as mail domains here.
	if domain[0] == '[' || net.ParseIP(domain) != nil {
		return "", errtrace.Wrap(errorutil.Errorf("IP address is not allowed as a domain"))
	}
	if strings.HasSuffix(domain, ".") {
		return "", errtrace.Wrap(errorutil.Errorf("trailing dot in domain"))
	}
	for _, r := range domain {
		if r >= 0x80 || r == '.' || r == '-' || r == '_' ||
			'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' {
			continue
		}
		return "", errtrace.Wrap(errorutil.Errorf("invalid character %q in domain", r))
	}

	enc, err := idna.Encode(domain)
	if err != nil {
		return "", errtrace.Wrap(errorutil.Errorf("invalid domain %q", domain))
	}
	if len(enc) > maxDomainLen {
		return "", errtrace.Wrap(errorutil.Errorf("domain exceeds %d octets", maxDomainLen))
	}
	if !strings.Contains(enc, ".") {
		return "", errtrace.Wrap(errorutil.Errorf("domain %q has no dot", domain))
	}
	return idna.Decode(enc), nil
}
