package email

import (
	"fmt"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/netval/netval/internal/util"
)

// Addr is an immutable validated email address with a display name.
type Addr struct {
	name string
	addr string
}

// NewAddr builds an address value without validation. Use [Parse] to
// validate and normalize raw input.
func NewAddr(name, addr string) Addr {
	return Addr{name: name, addr: addr}
}

// Name returns the display name.
func (a Addr) Name() string { return a.name }

// Addr returns the normalized bare address, local@domain.
func (a Addr) Addr() string { return a.addr }

// IsZero checks whether the address is empty.
func (a Addr) IsZero() bool { return a.name == "" && a.addr == "" }

// Equal compares this address with another for equality.
func (a Addr) Equal(val any) bool {
	var other Addr
	switch v := val.(type) {
	case Addr:
		other = v
	case *Addr:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return a.name == other.name && a.addr == other.addr
}

// String formats the address as "name <local@domain>". The display name is
// quoted when it contains characters outside the atext-and-space set.
func (a Addr) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	if needsQuoting(a.name) {
		sb.WriteByte('"')
		for i := 0; i < len(a.name); i++ {
			if c := a.name[i]; c == '"' || c == '\\' {
				sb.WriteByte('\\')
			}
			sb.WriteByte(a.name[i])
		}
		sb.WriteByte('"')
	} else {
		sb.WriteString(a.name)
	}
	sb.WriteString(" <")
	sb.WriteString(a.addr)
	sb.WriteByte('>')
	return sb.String()
}

func needsQuoting(name string) bool {
	for _, r := range name {
		if r != ' ' && !isAtextRune(r) {
			return true
		}
	}
	return false
}

// Format implements fmt.Formatter for custom formatting of the address.
func (a Addr) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, a.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(a.String()))
		return
	default:
		type hideMethods Addr
		type Addr hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Addr(a))
		return
	}
}

// MarshalText implements [encoding.TextMarshaler]. The bare form is
// emitted when the display name equals the local part, the full
// "name <addr>" form otherwise.
func (a Addr) MarshalText() ([]byte, error) {
	local := a.addr
	if i := strings.LastIndexByte(a.addr, '@'); i >= 0 {
		local = a.addr[:i]
	}
	if a.name == local {
		return []byte(a.addr), nil
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (a *Addr) UnmarshalText(text []byte) error {
	a1, err := Parse(text)
	if err != nil {
		*a = Addr{}
		return errtrace.Wrap(err)
	}
	*a = a1
	return nil
}
