package url

import (
	"encoding/binary"
	"hash/fnv"
	"io"
	"slices"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/netval/netval/internal/errorutil"
	"github.com/netval/netval/internal/util"
)

// DefaultMaxLength is the canonical-form length ceiling, in runes, applied
// when a [Constraints] value carries no explicit MaxLength.
const DefaultMaxLength = 2083

// Constraints is a declarative profile enforced on a URL after parsing.
// Every field is optional: a nil field imposes nothing. The zero value
// accepts any well-formed URL.
//
// Constraints are checked and applied in a fixed order: allowed schemes,
// host requirement, defaults (host, then port, then path), then the length
// ceiling against the canonical form.
type Constraints struct {
	// MaxLength caps the canonical form length in runes.
	// Nil applies [DefaultMaxLength].
	MaxLength *int
	// AllowedSchemes restricts the scheme to the listed set,
	// case-insensitively. Nil allows any scheme; an empty non-nil slice
	// rejects every scheme.
	AllowedSchemes []string
	// HostRequired, when set to true, rejects URLs without a host.
	HostRequired *bool
	// DefaultHost is materialized into hostless URLs of the authority form.
	DefaultHost *string
	// DefaultPort applies to authorities that carry no explicit port.
	// It is virtual: reported by accessors, omitted from the canonical form.
	DefaultPort *uint16
	// DefaultPath is materialized into URLs without a path.
	DefaultPath *string
}

// Equal compares this constraint set with another for equality.
func (cs Constraints) Equal(val any) bool {
	var other Constraints
	switch v := val.(type) {
	case Constraints:
		other = v
	case *Constraints:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return eqPtr(cs.MaxLength, other.MaxLength) &&
		slices.Equal(cs.AllowedSchemes, other.AllowedSchemes) &&
		(cs.AllowedSchemes == nil) == (other.AllowedSchemes == nil) &&
		eqPtr(cs.HostRequired, other.HostRequired) &&
		eqPtr(cs.DefaultHost, other.DefaultHost) &&
		eqPtr(cs.DefaultPort, other.DefaultPort) &&
		eqPtr(cs.DefaultPath, other.DefaultPath)
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Hash returns a 64-bit hash of the constraint set. A nil field and a set
// field hash differently even when the set field holds the zero value.
func (cs Constraints) Hash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 8)

	writeTag := func(set bool) {
		if set {
			h.Write([]byte{1}) //nolint:errcheck
		} else {
			h.Write([]byte{0}) //nolint:errcheck
		}
	}
	writeStr := func(s string) {
		binary.BigEndian.PutUint64(buf, uint64(len(s)))
		h.Write(buf) //nolint:errcheck
		io.WriteString(h, s) //nolint:errcheck
	}

	writeTag(cs.MaxLength != nil)
	if cs.MaxLength != nil {
		binary.BigEndian.PutUint64(buf, uint64(*cs.MaxLength))
		h.Write(buf) //nolint:errcheck
	}
	writeTag(cs.AllowedSchemes != nil)
	if cs.AllowedSchemes != nil {
		binary.BigEndian.PutUint64(buf, uint64(len(cs.AllowedSchemes)))
		h.Write(buf) //nolint:errcheck
		for _, s := range cs.AllowedSchemes {
			writeStr(s)
		}
	}
	writeTag(cs.HostRequired != nil)
	if cs.HostRequired != nil {
		writeTag(*cs.HostRequired)
	}
	writeTag(cs.DefaultHost != nil)
	if cs.DefaultHost != nil {
		writeStr(*cs.DefaultHost)
	}
	writeTag(cs.DefaultPort != nil)
	if cs.DefaultPort != nil {
		binary.BigEndian.PutUint64(buf, uint64(*cs.DefaultPort))
		h.Write(buf) //nolint:errcheck
	}
	writeTag(cs.DefaultPath != nil)
	if cs.DefaultPath != nil {
		writeStr(*cs.DefaultPath)
	}
	return h.Sum64()
}

// apply enforces the constraint set on a freshly parsed URL, materializes
// defaults and seals the canonical form.
func (cs Constraints) apply(u *URL) error {
	if cs.AllowedSchemes != nil {
		allowed := slices.ContainsFunc(cs.AllowedSchemes, func(s string) bool {
			return util.EqFold(s, u.scheme)
		})
		if !allowed {
			return errtrace.Wrap(errorutil.NewWrapperError(ErrUnsupportedScheme,
				"URL scheme should be %s", formatSchemes(cs.AllowedSchemes)))
		}
	}

	// The host requirement is checked before any defaulting: a required
	// host must come from the input, never from DefaultHost.
	if cs.HostRequired != nil && *cs.HostRequired && len(u.auths) == 0 {
		return errtrace.Wrap(ErrEmptyHost)
	}

	if len(u.auths) == 0 && u.hasAuth && cs.DefaultHost != nil {
		a, err := parseAuthority(*cs.DefaultHost, isSpecialScheme(u.scheme))
		if err != nil {
			return errtrace.Wrap(err)
		}
		u.auths = []Authority{a}
		lg().Debug("applied default host", "host", *cs.DefaultHost)
	}

	if cs.DefaultPort != nil {
		u.defPort = *cs.DefaultPort
	} else {
		u.defPort = knownPort(u.scheme)
	}

	if u.path == "" && u.hasAuth {
		switch {
		case cs.DefaultPath != nil:
			u.path = *cs.DefaultPath
			lg().Debug("applied default path", "path", u.path)
		case isSpecialScheme(u.scheme):
			u.path = "/"
		}
	}

	u.canonical = u.renderCanonical()

	maxLen := DefaultMaxLength
	if cs.MaxLength != nil {
		maxLen = *cs.MaxLength
	}
	if n := utf8.RuneCountInString(u.canonical); n > maxLen {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrTooLong,
			"URL should have at most %d characters, got %d", maxLen, n))
	}
	return nil
}
