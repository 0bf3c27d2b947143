// Package assetpath validates and dissects slash-separated asset paths.
//
// Output paths are derived verbatim from input paths, so every accepted
// path must be safe for case-insensitive filesystems and for the
// whitespace-sensitive dependency-file format emitted by the converters.
package assetpath

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPath marks a path that is unsafe to derive output names from.
// Callers must treat it as fatal for the whole bake, never as a skip.
var ErrInvalidPath = errors.New("invalid asset path")

// Ext returns the compound extension of basename: every suffix starting
// from the first '.' in the name, not just the last. Ext("a.b.c") is
// ".b.c". A name without a dot has no extension and yields "".
func Ext(basename string) string {
	if i := strings.IndexByte(basename, '.'); i >= 0 {
		return basename[i:]
	}
	return ""
}

// Stem returns basename with its full compound extension stripped, so
// Stem("a.b.c") is "a". The stem of a dotfile-style name is "".
func Stem(basename string) string {
	if i := strings.IndexByte(basename, '.'); i >= 0 {
		return basename[:i]
	}
	return basename
}

// Validate checks a relative, slash-separated asset path. It fails with
// ErrInvalidPath on a doubled separator, any uppercase letter, or any
// character outside [a-z0-9._-] and '/'.
func Validate(rel string) error {
	if strings.Contains(rel, "//") {
		return fmt.Errorf("%w: doubled separator in %q", ErrInvalidPath, rel)
	}
	for _, r := range rel {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '_' || r == '-' || r == '/':
		case r >= 'A' && r <= 'Z':
			return fmt.Errorf("%w: uppercase letter %q in %q", ErrInvalidPath, r, rel)
		default:
			return fmt.Errorf("%w: disallowed character %q in %q", ErrInvalidPath, r, rel)
		}
	}
	return nil
}
