package routepath

import (
	"errors"
	"strings"
)

// Path canonicalization errors.
var (
	ErrNotAbsolute     = errors.New("path must start with /")
	ErrBackslashInPath = errors.New("path contains backslash")
	ErrNullByteInPath  = errors.New("path contains null byte")
	ErrEscapedPath     = errors.New("path contains percent escape")
	ErrQueryInPath     = errors.New("path contains query string")
	ErrPathEscapesRoot = errors.New("path escapes root via ..")
	ErrRootMount       = errors.New("path shadows the page at /")
	ErrNotCanonical    = errors.New("path is not canonical")
)

// Canonicalize normalizes a mount path:
//   - collapse repeated slashes (/a//b → /a/b)
//   - drop "." segments
//   - resolve ".." segments
//   - drop the trailing slash, except for "/"
//
// Mount paths are literal, so escapes, queries, backslashes and NUL bytes
// are rejected rather than decoded.
func Canonicalize(path string) (string, error) {
	switch {
	case !strings.HasPrefix(path, "/"):
		return "", ErrNotAbsolute
	case strings.Contains(path, "\\"):
		return "", ErrBackslashInPath
	case strings.Contains(path, "\x00"):
		return "", ErrNullByteInPath
	case strings.Contains(path, "%"):
		return "", ErrEscapedPath
	case strings.ContainsAny(path, "?#"):
		return "", ErrQueryInPath
	}

	var segs []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(segs) == 0 {
				return "", ErrPathEscapesRoot
			}
			segs = segs[:len(segs)-1]
		default:
			segs = append(segs, seg)
		}
	}
	return "/" + strings.Join(segs, "/"), nil
}

// ValidateMount reports whether path can host an endpoint next to the page:
// it must already be canonical and must not be "/".
func ValidateMount(path string) error {
	clean, err := Canonicalize(path)
	if err != nil {
		return err
	}
	if clean == "/" {
		return ErrRootMount
	}
	if clean != path {
		return ErrNotCanonical
	}
	return nil
}
