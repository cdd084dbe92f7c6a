package email_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/netval/netval/email"
)

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		input    string
		wantName string
		wantAddr string
		wantErr  error
	}{
		{name: "plain", input: "simple@example.com", wantName: "simple", wantAddr: "simple@example.com"},
		{name: "local case preserved", input: "Simple@example.com", wantName: "Simple", wantAddr: "Simple@example.com"},
		{name: "domain lowercased", input: "simple@EXAMPLE.COM", wantName: "simple", wantAddr: "simple@example.com"},
		{name: "dotted local", input: "very.common@example.com", wantName: "very.common", wantAddr: "very.common@example.com"},
		{name: "plus tag", input: "disposable.style.email.with+symbol@example.com", wantName: "disposable.style.email.with+symbol", wantAddr: "disposable.style.email.with+symbol@example.com"},
		{name: "hyphen local", input: "other.email-with-hyphen@example.com", wantName: "other.email-with-hyphen", wantAddr: "other.email-with-hyphen@example.com"},
		{name: "surrounding spaces", input: "  simple@example.com  ", wantName: "simple", wantAddr: "simple@example.com"},
		{name: "display name", input: "John Doe <simple@example.com>", wantName: "John Doe", wantAddr: "simple@example.com"},
		{name: "quoted display name", input: `"John O.Doe" <simple@example.com>`, wantName: "John O.Doe", wantAddr: "simple@example.com"},
		{name: "quoted name with escapes", input: `"John \"The Dev\" Doe" <simple@example.com>`, wantName: `John "The Dev" Doe`, wantAddr: "simple@example.com"},
		{name: "angle form without name", input: "<simple@example.com>", wantName: "simple", wantAddr: "simple@example.com"},
		{name: "unicode name", input: "Λεωνίδας <leonidas@example.com>", wantName: "Λεωνίδας", wantAddr: "leonidas@example.com"},
		{name: "unicode local part", input: "λεωνίδας@example.com", wantName: "λεωνίδας", wantAddr: "λεωνίδας@example.com"},
		{name: "idna domain decoded", input: "jobs@xn--80ak6aa92e.com", wantName: "jobs", wantAddr: "jobs@аррӏе.com"},
		{name: "unicode domain", input: "jobs@аррӏе.com", wantName: "jobs", wantAddr: "jobs@аррӏе.com"},

		{name: "empty", input: "", wantErr: email.ErrSyntax},
		{name: "missing at", input: "example.com", wantErr: email.ErrSyntax},
		{name: "empty local", input: "@example.com", wantErr: email.ErrSyntax},
		{name: "empty domain", input: "simple@", wantErr: email.ErrSyntax},
		{name: "dotless domain", input: "simple@example", wantErr: email.ErrSyntax},
		{name: "trailing dot domain", input: "simple@example.com.", wantErr: email.ErrSyntax},
		{name: "ip literal domain", input: "simple@[127.0.0.1]", wantErr: email.ErrSyntax},
		{name: "bare ip domain", input: "simple@127.0.0.1", wantErr: email.ErrSyntax},
		{name: "space in local", input: "two words@example.com", wantErr: email.ErrSyntax},
		{name: "double dot in local", input: "double..dot@example.com", wantErr: email.ErrSyntax},
		{name: "leading dot in local", input: ".leading@example.com", wantErr: email.ErrSyntax},
		{name: "trailing dot in local", input: "trailing.@example.com", wantErr: email.ErrSyntax},
		{name: "multiple at signs", input: "a@b@example.com", wantErr: email.ErrSyntax},
		{name: "control character", input: "simple\n@example.com", wantErr: email.ErrSyntax},
		{name: "unquoted dotted display name", input: "first.last <simple@example.com>", wantErr: email.ErrSyntax},
		{name: "unclosed angle bracket", input: "John <simple@example.com", wantErr: email.ErrSyntax},
		{name: "junk after address", input: "John <simple@example.com> x", wantErr: email.ErrSyntax},
		{name: "too long", input: strings.Repeat("a", 2040) + "@example.com", wantErr: email.ErrTooLong},
		{name: "too long in runes", input: strings.Repeat("λ", 2040) + "@example.com", wantErr: email.ErrTooLong},
		// More than 2048 bytes but well under 2048 runes: the length
		// ceiling must not fire, the local-part limit rejects instead.
		{name: "multibyte length counted in runes", input: strings.Repeat("λ", 1030) + "@example.com", wantErr: email.ErrSyntax},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, gotErr := email.Parse(c.input)
			if c.wantErr != nil {
				if diff := cmp.Diff(gotErr, c.wantErr, cmpopts.EquateErrors()); diff != "" {
					t.Fatalf("email.Parse(%q) error = %v, want %v\ndiff (-got +want):\n%v",
						c.input, gotErr, c.wantErr, diff,
					)
				}
				return
			}
			if gotErr != nil {
				t.Fatalf("email.Parse(%q) error = %v, want nil", c.input, gotErr)
			}
			if got.Name() != c.wantName {
				t.Errorf("email.Parse(%q).Name() = %q, want %q", c.input, got.Name(), c.wantName)
			}
			if got.Addr() != c.wantAddr {
				t.Errorf("email.Parse(%q).Addr() = %q, want %q", c.input, got.Addr(), c.wantAddr)
			}
		})
	}
}

func TestParse_bytes(t *testing.T) {
	t.Parallel()

	got, err := email.Parse([]byte("simple@example.com"))
	if err != nil {
		t.Fatalf("email.Parse() error = %v, want nil", err)
	}
	if want := "simple@example.com"; got.Addr() != want {
		t.Errorf("email.Parse().Addr() = %q, want %q", got.Addr(), want)
	}
}
