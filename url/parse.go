package url

import (
	"slices"
	"strings"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/netval/netval/internal/errorutil"
	"github.com/netval/netval/internal/grammar"
	"github.com/netval/netval/internal/util"
)

// Parse parses and normalizes src as a single-host URL, then enforces cs.
// Leading and trailing C0 control characters and spaces are stripped before
// parsing. Commas in the authority are not special here: the whole section
// is treated as a single host entry.
func Parse[T util.Byteseq](src T, cs Constraints) (*URL, error) {
	return errtrace.Wrap2(parse(string(src), cs, false, false))
}

// ParseStrict is like [Parse] but rejects inputs carrying leading or
// trailing C0 control characters or spaces instead of stripping them.
func ParseStrict[T util.Byteseq](src T, cs Constraints) (*URL, error) {
	return errtrace.Wrap2(parse(string(src), cs, false, true))
}

// ParseMultiHost parses and normalizes src as a multi-host URL, splitting
// the authority section on top-level commas, then enforces cs. Each entry
// carries its own optional userinfo and port. Commas inside IPv6 brackets
// do not split.
func ParseMultiHost[T util.Byteseq](src T, cs Constraints) (*URL, error) {
	return errtrace.Wrap2(parse(string(src), cs, true, false))
}

func parse(s string, cs Constraints, multi, strict bool) (*URL, error) { //nolint:gocognit
	if !utf8.ValidString(s) {
		return nil, errtrace.Wrap(ErrInvalidEncoding)
	}
	if s == "" {
		return nil, errtrace.Wrap(ErrEmptyInput)
	}

	trimmed, changed := grammar.TrimC0(s)
	if changed {
		if strict {
			return nil, errtrace.Wrap(ErrControlCharacters)
		}
		lg().Debug("stripped leading/trailing control characters", "input", s)
	}
	s = trimmed

	scheme, rest, ok := grammar.SplitScheme(s)
	if !ok {
		return nil, errtrace.Wrap(ErrRelativeURL)
	}
	u := &URL{scheme: scheme}
	special := isSpecialScheme(scheme)

	switch {
	case strings.HasPrefix(rest, "//"):
		u.hasAuth = true
		rest = rest[2:]
		end := strings.IndexAny(rest, "/?#")
		if end < 0 {
			end = len(rest)
		}
		authStr := rest[:end]
		rest = rest[end:]

		if authStr == "" {
			// Special schemes, file excepted, cannot be hostless.
			if special && scheme != "file" {
				return nil, errtrace.Wrap(ErrEmptyHost)
			}
		} else {
			segs := []string{authStr}
			if multi {
				segs = splitAuthorities(authStr)
			}
			u.auths = make([]Authority, 0, len(segs))
			for _, seg := range segs {
				a, err := parseAuthority(seg, special)
				if err != nil {
					return nil, errtrace.Wrap(err)
				}
				u.auths = append(u.auths, a)
			}
		}
	case special:
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrSyntaxViolation, "expected // after %s:", scheme))
	}

	if i := strings.IndexByte(rest, '#'); i >= 0 {
		u.fragment, u.hasFrag = grammar.Escape(rest[i+1:], shouldEscapeFragmentChar), true
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		u.query, u.hasQuery = grammar.Escape(rest[i+1:], shouldEscapeQueryChar), true
		rest = rest[:i]
	}
	u.path = grammar.Escape(rest, shouldEscapePathChar)

	if scheme == "file" {
		// A sole localhost authority is equivalent to no authority, and
		// repeated leading path slashes collapse to one.
		if len(u.auths) == 1 && u.auths[0].Equal(Authority{host: "localhost"}) {
			u.auths = nil
			lg().Debug("dropped file://localhost authority")
		}
		for strings.HasPrefix(u.path, "//") {
			u.path = u.path[1:]
		}
	}

	if err := cs.apply(u); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return u, nil
}

// splitAuthorities splits a multi-host authority section on commas that are
// not enclosed in IPv6 brackets. Empty entries are kept so that they are
// reported as empty hosts.
func splitAuthorities(s string) []string {
	var segs []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				segs = append(segs, s[start:i])
				start = i + 1
			}
		}
	}
	return append(segs, s[start:])
}

// hasMultiAuthority checks for a top-level comma in the authority section,
// the marker of a multi-host form.
func hasMultiAuthority(s string) bool {
	s, _ = grammar.TrimC0(s)
	_, rest, ok := grammar.SplitScheme(s)
	if !ok || !strings.HasPrefix(rest, "//") {
		return false
	}
	rest = rest[2:]
	end := strings.IndexAny(rest, "/?#")
	if end < 0 {
		end = len(rest)
	}
	return len(splitAuthorities(rest[:end])) > 1
}

// Schemes with WHATWG "special" treatment: the authority form is mandatory
// and the scheme has a well-known default port.
var specialSchemes = map[string]uint16{
	"http":  80,
	"https": 443,
	"ws":    80,
	"wss":   443,
	"ftp":   21,
	"file":  0,
}

func isSpecialScheme(scheme string) bool {
	_, ok := specialSchemes[scheme]
	return ok
}

func knownPort(scheme string) uint16 { return specialSchemes[scheme] }

func formatSchemes(schemes []string) string {
	sorted := make([]string, len(schemes))
	for i, s := range schemes {
		sorted[i] = "'" + util.LCase(s) + "'"
	}
	slices.Sort(sorted)

	switch len(sorted) {
	case 0:
		return ""
	case 1:
		return sorted[0]
	default:
		return strings.Join(sorted[:len(sorted)-1], ", ") + " or " + sorted[len(sorted)-1]
	}
}

func shouldEscapePathChar(c byte) bool     { return !grammar.IsPathChar(c) }
func shouldEscapeQueryChar(c byte) bool    { return !grammar.IsQueryChar(c) }
func shouldEscapeFragmentChar(c byte) bool { return !grammar.IsFragmentChar(c) }
