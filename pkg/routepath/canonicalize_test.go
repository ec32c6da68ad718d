package routepath

import (
	"errors"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/", "/"},
		{"/metrics", "/metrics"},
		{"/metrics/", "/metrics"},
		{"//_withhover///live", "/_withhover/live"},
		{"/a/./b", "/a/b"},
		{"/a/b/../c", "/a/c"},
		{"/a/..", "/"},
	}
	for _, tt := range tests {
		got, err := Canonicalize(tt.in)
		if err != nil {
			t.Errorf("Canonicalize(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalizeErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", ErrNotAbsolute},
		{"live", ErrNotAbsolute},
		{"/a\\b", ErrBackslashInPath},
		{"/a\x00", ErrNullByteInPath},
		{"/a%2Fb", ErrEscapedPath},
		{"/live?x=1", ErrQueryInPath},
		{"/live#top", ErrQueryInPath},
		{"/../secret", ErrPathEscapesRoot},
		{"/a/../../b", ErrPathEscapesRoot},
	}
	for _, tt := range tests {
		if _, err := Canonicalize(tt.in); !errors.Is(err, tt.want) {
			t.Errorf("Canonicalize(%q) error = %v, want %v", tt.in, err, tt.want)
		}
	}
}

func TestValidateMount(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"/_withhover/live", nil},
		{"/metrics", nil},
		{"/", ErrRootMount},
		{"/a/..", ErrRootMount},
		{"/metrics/", ErrNotCanonical},
		{"/a//b", ErrNotCanonical},
		{"metrics", ErrNotAbsolute},
	}
	for _, tt := range tests {
		if err := ValidateMount(tt.in); !errors.Is(err, tt.want) {
			t.Errorf("ValidateMount(%q) = %v, want %v", tt.in, err, tt.want)
		}
	}
}
