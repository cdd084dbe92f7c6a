package url_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/netval/netval/url"
)

func ptr[T any](v T) *T { return &v }

func TestConstraints_allowedSchemes(t *testing.T) {
	t.Parallel()

	cs := url.Constraints{AllowedSchemes: []string{"postgres", "postgresql"}}

	if _, err := url.Parse("postgres://host.db.net:5432/app", cs); err != nil {
		t.Fatalf("url.Parse() error = %v, want nil", err)
	}

	_, err := url.Parse("mysql://host.db.net/app", cs)
	if diff := cmp.Diff(err, url.ErrUnsupportedScheme, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("url.Parse() error = %v, want %v\ndiff (-got +want):\n%v", err, url.ErrUnsupportedScheme, diff)
	}
	// The allowed set is reported sorted, joined with "or".
	if want := "'postgres' or 'postgresql'"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not mention %q", err, want)
	}
}

func TestConstraints_hostRequired(t *testing.T) {
	t.Parallel()

	cs := url.Constraints{HostRequired: ptr(true)}

	if _, err := url.Parse("snowflake://acct.snowflakecomputing.com/db", cs); err != nil {
		t.Fatalf("url.Parse() error = %v, want nil", err)
	}

	_, err := url.Parse("snowflake:///db", cs)
	if diff := cmp.Diff(err, url.ErrEmptyHost, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("url.Parse() error = %v, want %v\ndiff (-got +want):\n%v", err, url.ErrEmptyHost, diff)
	}

	// A required host must come from the input; DefaultHost never
	// satisfies the requirement.
	cs = url.Constraints{HostRequired: ptr(true), DefaultHost: ptr("localhost")}
	_, err = url.Parse("foo://", cs)
	if diff := cmp.Diff(err, url.ErrEmptyHost, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("url.Parse() error = %v, want %v\ndiff (-got +want):\n%v", err, url.ErrEmptyHost, diff)
	}
}

func TestConstraints_defaults(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		input    string
		cs       url.Constraints
		want     string
		wantPort uint16
	}{
		{
			name:     "default host materialized",
			input:    "redis://",
			cs:       url.Constraints{DefaultHost: ptr("localhost"), DefaultPort: ptr(uint16(6379)), DefaultPath: ptr("/0")},
			want:     "redis://localhost/0",
			wantPort: 6379,
		},
		{
			name:     "default port virtual",
			input:    "postgres://host.db.net/app",
			cs:       url.Constraints{DefaultPort: ptr(uint16(5432))},
			want:     "postgres://host.db.net/app",
			wantPort: 5432,
		},
		{
			name:     "explicit default port omitted from canonical form",
			input:    "postgres://host.db.net:5432/app",
			cs:       url.Constraints{DefaultPort: ptr(uint16(5432))},
			want:     "postgres://host.db.net/app",
			wantPort: 5432,
		},
		{
			name:     "explicit non-default port kept",
			input:    "postgres://host.db.net:6432/app",
			cs:       url.Constraints{DefaultPort: ptr(uint16(5432))},
			want:     "postgres://host.db.net:6432/app",
			wantPort: 6432,
		},
		{
			name:  "default path not applied over explicit path",
			input: "redis://localhost/5",
			cs:    url.Constraints{DefaultPath: ptr("/0")},
			want:  "redis://localhost/5",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := url.Parse(c.input, c.cs)
			if err != nil {
				t.Fatalf("url.Parse(%q) error = %v, want nil", c.input, err)
			}
			if got.String() != c.want {
				t.Errorf("url.Parse(%q) = %q, want %q", c.input, got, c.want)
			}
			if c.wantPort != 0 {
				if port, ok := got.Port(); !ok || port != c.wantPort {
					t.Errorf("Port() = %d, %v, want %d, true", port, ok, c.wantPort)
				}
			}
		})
	}
}

func TestConstraints_maxLength(t *testing.T) {
	t.Parallel()

	long := "http://example.com/" + strings.Repeat("a", 3000)
	_, err := url.Parse(long, url.Constraints{})
	if diff := cmp.Diff(err, url.ErrTooLong, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("url.Parse() error = %v, want %v\ndiff (-got +want):\n%v", err, url.ErrTooLong, diff)
	}

	_, err = url.Parse("http://example.com/aaaa", url.Constraints{MaxLength: ptr(10)})
	if diff := cmp.Diff(err, url.ErrTooLong, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("url.Parse() error = %v, want %v\ndiff (-got +want):\n%v", err, url.ErrTooLong, diff)
	}

	// The ceiling counts runes of the canonical form, not input bytes.
	if _, err = url.Parse("http://example.com/abc", url.Constraints{MaxLength: ptr(25)}); err != nil {
		t.Fatalf("url.Parse() error = %v, want nil", err)
	}
}

func TestConstraints_Equal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		cs1    url.Constraints
		cs2    any
		want   bool
	}{
		{"zero values", url.Constraints{}, url.Constraints{}, true},
		{
			"same fields",
			url.Constraints{MaxLength: ptr(100), AllowedSchemes: []string{"http"}},
			url.Constraints{MaxLength: ptr(100), AllowedSchemes: []string{"http"}},
			true,
		},
		{
			"pointer argument",
			url.Constraints{DefaultPort: ptr(uint16(5432))},
			&url.Constraints{DefaultPort: ptr(uint16(5432))},
			true,
		},
		{"nil vs set", url.Constraints{}, url.Constraints{MaxLength: ptr(0)}, false},
		{"nil vs empty schemes", url.Constraints{}, url.Constraints{AllowedSchemes: []string{}}, false},
		{"different port", url.Constraints{DefaultPort: ptr(uint16(1))}, url.Constraints{DefaultPort: ptr(uint16(2))}, false},
		{"not a constraints value", url.Constraints{}, 42, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.cs1.Equal(c.cs2); got != c.want {
				t.Errorf("Equal() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestConstraints_Hash(t *testing.T) {
	t.Parallel()

	cs1 := url.Constraints{MaxLength: ptr(100), AllowedSchemes: []string{"http", "https"}}
	cs2 := url.Constraints{MaxLength: ptr(100), AllowedSchemes: []string{"http", "https"}}
	if cs1.Hash() != cs2.Hash() {
		t.Errorf("Hash() mismatch for equal constraints: %d != %d", cs1.Hash(), cs2.Hash())
	}

	// A nil field and its zero value hash differently.
	if (url.Constraints{}).Hash() == (url.Constraints{MaxLength: ptr(0)}).Hash() {
		t.Error("Hash() collision between nil and zero MaxLength")
	}
	if (url.Constraints{}).Hash() == (url.Constraints{AllowedSchemes: []string{}}).Hash() {
		t.Error("Hash() collision between nil and empty AllowedSchemes")
	}
}

func TestConstraints_JSONSchema(t *testing.T) {
	t.Parallel()

	got := url.Constraints{MaxLength: ptr(2083)}.JSONSchema()
	want := map[string]any{
		"type":      "string",
		"format":    "uri",
		"minLength": 1,
		"maxLength": 2083,
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("JSONSchema() mismatch (-got +want):\n%v", diff)
	}

	got = url.Constraints{}.JSONSchema()
	if got["maxLength"] != url.DefaultMaxLength {
		t.Errorf("JSONSchema() maxLength = %v, want %d", got["maxLength"], url.DefaultMaxLength)
	}
}
