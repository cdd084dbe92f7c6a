// Package url validates, normalizes and serializes URL-shaped configuration
// strings: generic URLs, HTTP/WS/FTP URLs and database or broker connection
// strings (DSNs), including comma-separated multi-host authority lists.
//
// Parsing is purely syntactic: no DNS resolution, no network I/O. Parsed
// values are immutable and safe for unsynchronized concurrent use.
package url

//go:generate go tool errtrace -w .

import (
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"

	"braces.dev/errtrace"

	"github.com/netval/netval/internal/log"
	"github.com/netval/netval/internal/util"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(log.Noop)
}

// SetLogger replaces the package logger used for debug diagnostics of
// normalization decisions. Passing nil restores the silent default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = log.Noop
	}
	logger.Store(l)
}

func lg() *slog.Logger { return logger.Load() }

// URL is an immutable parsed and normalized URL.
//
// Identity is derived from the canonical string form: two parses of
// differing but semantically identical inputs (scheme case, default port
// spelled out, ...) compare equal and hash equal.
type URL struct {
	scheme    string
	auths     []Authority
	path      string // "" means absent
	query     string
	fragment  string
	canonical string
	defPort   uint16 // effective default port, 0 = none
	hasAuth   bool   // the "//" authority form was present
	hasQuery  bool
	hasFrag   bool
}

// Scheme returns the lowercased URL scheme.
func (u *URL) Scheme() string {
	if u == nil {
		return ""
	}
	return u.scheme
}

// Host returns the normalized host of the first authority, in case one is
// present, and a bool flag indicating whether it is present.
func (u *URL) Host() (string, bool) {
	if u == nil || len(u.auths) == 0 {
		return "", false
	}
	return u.auths[0].host, true
}

// Port returns the port of the first authority, falling back to the
// profile's or the scheme's default port, and a bool flag indicating
// whether any port applies.
func (u *URL) Port() (uint16, bool) {
	if u == nil || len(u.auths) == 0 {
		return 0, false
	}
	if u.auths[0].hasPort {
		return u.auths[0].port, true
	}
	if u.defPort != 0 {
		return u.defPort, true
	}
	return 0, false
}

// Username returns the username of the first authority, in case it is set,
// and a bool flag indicating whether it is set.
func (u *URL) Username() (string, bool) {
	if u == nil || len(u.auths) == 0 {
		return "", false
	}
	return u.auths[0].Username()
}

// Password returns the password of the first authority, in case it is set,
// and a bool flag indicating whether it is set.
func (u *URL) Password() (string, bool) {
	if u == nil || len(u.auths) == 0 {
		return "", false
	}
	return u.auths[0].Password()
}

// Path returns the normalized path. An empty string means the URL carries
// no path.
func (u *URL) Path() string {
	if u == nil {
		return ""
	}
	return u.path
}

// Query returns the raw query, in case it is present, and a bool flag
// indicating whether it is present. A present-but-empty query (trailing
// bare "?") is distinct from an absent one.
func (u *URL) Query() (string, bool) {
	if u == nil {
		return "", false
	}
	return u.query, u.hasQuery
}

// Fragment returns the raw fragment, in case it is present, and a bool flag
// indicating whether it is present. A present-but-empty fragment (trailing
// bare "#") is distinct from an absent one.
func (u *URL) Fragment() (string, bool) {
	if u == nil {
		return "", false
	}
	return u.fragment, u.hasFrag
}

// Hosts returns the authority list in declaration order, with the default
// port applied to entries that carry none. Single-host URLs return a
// one-element slice; hostless URLs return nil.
func (u *URL) Hosts() []Authority {
	if u == nil || len(u.auths) == 0 {
		return nil
	}
	hosts := make([]Authority, len(u.auths))
	for i, a := range u.auths {
		if !a.hasPort && u.defPort != 0 {
			a.port, a.hasPort = u.defPort, true
		}
		hosts[i] = a
	}
	return hosts
}

func (u *URL) renderCanonical() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.WriteString(u.scheme)
	sb.WriteByte(':')
	if u.hasAuth {
		sb.WriteString("//")
		for i, a := range u.auths {
			if i > 0 {
				sb.WriteByte(',')
			}
			a.render(sb, u.defPort)
		}
	}
	sb.WriteString(u.path)
	if u.hasQuery {
		sb.WriteByte('?')
		sb.WriteString(u.query)
	}
	if u.hasFrag {
		sb.WriteByte('#')
		sb.WriteString(u.fragment)
	}
	return sb.String()
}

// String returns the canonical string form of the URL. Re-parsing the
// canonical form yields an equal URL, but it need not be byte-identical to
// the original input.
func (u *URL) String() string {
	if u == nil {
		return ""
	}
	return u.canonical
}

// Format implements fmt.Formatter for custom formatting of the URL.
func (u *URL) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods URL
		type URL hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*URL)(u))
		return
	}
}

// Equal compares this URL with another for equality by canonical form.
func (u *URL) Equal(val any) bool {
	var other *URL
	switch v := val.(type) {
	case URL:
		other = &v
	case *URL:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}
	return u.canonical == other.canonical
}

// Hash returns a 64-bit hash of the canonical form, suitable for map keys
// and content addressing. Equal URLs hash equal.
func (u *URL) Hash() uint64 {
	h := fnv.New64a()
	io.WriteString(h, u.String()) //nolint:errcheck
	return h.Sum64()
}

// Compare orders URLs lexicographically by canonical form.
func (u *URL) Compare(other *URL) int {
	return strings.Compare(u.String(), other.String())
}

// IsValid checks whether the URL was produced by a successful parse.
func (u *URL) IsValid() bool { return u != nil && u.canonical != "" }

// MarshalText implements [encoding.TextMarshaler].
func (u *URL) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// The value is parsed without profile constraints; use [Parse] with an
// explicit [Constraints] to enforce a scheme profile. Text whose authority
// section carries top-level commas is parsed as a multi-host URL, so
// [URL.MarshalText] output round-trips for both forms.
func (u *URL) UnmarshalText(text []byte) error {
	var (
		u1  *URL
		err error
	)
	if hasMultiAuthority(string(text)) {
		u1, err = ParseMultiHost(text, Constraints{})
	} else {
		u1, err = Parse(text, Constraints{})
	}
	if err != nil {
		*u = URL{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}
