package url

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/netval/netval/internal/errorutil"
	"github.com/netval/netval/internal/grammar"
	"github.com/netval/netval/internal/idna"
	"github.com/netval/netval/internal/util"
)

// Authority is one "user:pass@host:port" entry of a URL authority list.
// The zero value is an empty authority. Values are immutable once built.
type Authority struct {
	user      string
	passwd    string
	host      string // normalized: lowercased, IDNA-encoded, bracketed IPv6
	port      uint16
	hasUser   bool
	hasPasswd bool
	hasPort   bool
	ipv6      bool
	opaque    bool // percent-encoded host kept verbatim
}

// Host returns an [Authority] containing the provided host and no port.
func Host(host string) Authority {
	a, err := makeHostport(host, true)
	if err != nil {
		return Authority{}
	}
	return a
}

// HostPort returns an [Authority] containing the provided host and port.
func HostPort(host string, port uint16) Authority {
	a := Host(host)
	a.port = port
	a.hasPort = true
	return a
}

// WithUser returns a copy of the authority with the provided username.
func (a Authority) WithUser(user string) Authority {
	a.user = user
	a.hasUser = user != ""
	return a
}

// WithUserPassword returns a copy of the authority with the provided
// username and password. Empty strings are stored as absent.
func (a Authority) WithUserPassword(user, passwd string) Authority {
	a = a.WithUser(user)
	a.passwd = passwd
	a.hasPasswd = passwd != ""
	return a
}

// Username returns the username, in case it is set, and a bool flag indicating whether it is set.
func (a Authority) Username() (string, bool) { return a.user, a.hasUser }

// Password returns the password, in case it is set, and a bool flag indicating whether it is set.
func (a Authority) Password() (string, bool) { return a.passwd, a.hasPasswd }

// Host returns the normalized host. An empty string means the authority
// carries no host.
func (a Authority) Host() string { return a.host }

// Port returns the port, in case it is set, and a bool flag indicating whether it is set.
func (a Authority) Port() (uint16, bool) { return a.port, a.hasPort }

// IsZero checks whether the authority is empty.
func (a Authority) IsZero() bool {
	return a.host == "" && !a.hasUser && !a.hasPasswd && !a.hasPort
}

// Equal compares this authority with another for equality.
func (a Authority) Equal(val any) bool {
	var other Authority
	switch v := val.(type) {
	case Authority:
		other = v
	case *Authority:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return a.user == other.user && a.passwd == other.passwd &&
		a.hasUser == other.hasUser && a.hasPasswd == other.hasPasswd &&
		a.host == other.host &&
		a.port == other.port && a.hasPort == other.hasPort
}

// String formats the authority as [user[:pass]@]host[:port].
func (a Authority) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	a.render(sb, 0)
	return sb.String()
}

func (a Authority) render(sb *strings.Builder, omitPort uint16) {
	if a.hasUser || a.hasPasswd {
		sb.WriteString(grammar.Escape(a.user, shouldEscapeUserinfoChar))
		if a.hasPasswd {
			sb.WriteByte(':')
			sb.WriteString(grammar.Escape(a.passwd, shouldEscapeUserinfoChar))
		}
		sb.WriteByte('@')
	}
	sb.WriteString(a.host)
	if a.hasPort && (omitPort == 0 || a.port != omitPort) {
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(int(a.port)))
	}
}

func shouldEscapeUserinfoChar(c byte) bool { return !grammar.IsUserinfoChar(c) }

// parseAuthority parses one "[userinfo@]host[:port]" segment.
// The special flag selects the host profile: special schemes require a
// registered name, an IP literal or an IDNA-encodable domain, while
// non-special schemes additionally accept opaque percent-encoded hosts.
func parseAuthority(seg string, special bool) (Authority, error) {
	var a Authority

	if i := strings.LastIndexByte(seg, '@'); i >= 0 {
		userinfo := seg[:i]
		seg = seg[i+1:]
		user, passwd := userinfo, ""
		if j := strings.LastIndexByte(userinfo, ':'); j >= 0 {
			user, passwd = userinfo[:j], userinfo[j+1:]
		}
		// Empty credentials are stored as absent, not as empty strings.
		if user = grammar.Unescape(user); user != "" {
			a.user, a.hasUser = user, true
		}
		if passwd = grammar.Unescape(passwd); passwd != "" {
			a.passwd, a.hasPasswd = passwd, true
		}
	}

	hp, err := makeHostport(seg, special)
	if err != nil {
		return Authority{}, errtrace.Wrap(err)
	}
	a.host, a.port, a.hasPort, a.ipv6, a.opaque = hp.host, hp.port, hp.hasPort, hp.ipv6, hp.opaque
	return a, nil
}

func makeHostport(hp string, special bool) (Authority, error) {
	var a Authority

	if hp == "" {
		return Authority{}, errtrace.Wrap(ErrEmptyHost)
	}

	if hp[0] == '[' {
		return errtrace.Wrap2(makeIPv6Hostport(hp))
	}

	host := hp
	// The host ends at the first colon; everything after it must be a
	// valid decimal port.
	if i := strings.IndexByte(hp, ':'); i >= 0 {
		host = hp[:i]
		if portStr := hp[i+1:]; portStr != "" {
			port, err := parsePort(portStr)
			if err != nil {
				return Authority{}, errtrace.Wrap(err)
			}
			a.port, a.hasPort = port, true
		}
	}
	if host == "" {
		return Authority{}, errtrace.Wrap(ErrEmptyHost)
	}

	host, opaque, err := normalizeHost(host, special)
	if err != nil {
		return Authority{}, errtrace.Wrap(err)
	}
	a.host, a.opaque = host, opaque
	return a, nil
}

func makeIPv6Hostport(hp string) (Authority, error) {
	var a Authority

	end := strings.IndexByte(hp, ']')
	if end < 0 {
		return Authority{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidIPv6, "missing closing bracket"))
	}
	lit := hp[1:end]
	ip := net.ParseIP(lit)
	if ip == nil || ip.To4() != nil || !strings.Contains(lit, ":") {
		return Authority{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidIPv6, "%q is not an IPv6 literal", lit))
	}
	a.host = "[" + util.LCase(lit) + "]"
	a.ipv6 = true

	rest := hp[end+1:]
	if rest == "" {
		return a, nil
	}
	if rest[0] != ':' {
		return Authority{}, errtrace.Wrap(errorutil.NewWrapperError(ErrSyntaxViolation, "unexpected characters after IPv6 literal"))
	}
	if portStr := rest[1:]; portStr != "" {
		port, err := parsePort(portStr)
		if err != nil {
			return Authority{}, errtrace.Wrap(err)
		}
		a.port, a.hasPort = port, true
	}
	return a, nil
}

func parsePort(s string) (uint16, error) {
	for i := 0; i < len(s); i++ {
		if !grammar.IsDigitChar(s[i]) {
			return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidPort, "port %q is not a number", s))
		}
	}
	port, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidPort, "port %q is out of range", s))
	}
	return uint16(port), nil
}

// normalizeHost lowercases and IDNA-encodes a registered host name.
// Percent-encoded octets are rejected for special schemes; for non-special
// schemes the host is kept verbatim as an opaque host (unix-socket DSNs
// like "postgres://u@%2Fvar%2Frun%2Fpg/db" rely on this).
func normalizeHost(host string, special bool) (string, bool, error) {
	if strings.IndexByte(host, '%') >= 0 {
		if special {
			return "", false, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidDomain, "percent-encoded host %q", host))
		}
		return host, true, nil
	}

	for i := 0; i < len(host); i++ {
		if c := host[i]; c <= ' ' || c == 0x7f || grammar.IsForbiddenHostChar(c) {
			return "", false, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidDomain, "forbidden character in host %q", host))
		}
	}

	// IPv4 literals are normalized by the stdlib.
	if ip := net.ParseIP(host); ip != nil && ip.To4() != nil {
		return ip.String(), false, nil
	}

	enc, err := idna.Encode(host)
	if err != nil {
		if errors.Is(err, idna.ErrEmptyLabel) {
			return "", false, errtrace.Wrap(errorutil.NewWrapperError(ErrEmptyHost, err))
		}
		return "", false, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidDomain, err))
	}
	return enc, false, nil
}
