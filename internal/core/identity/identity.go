// Package identity canonicalizes public handles for comparison
package identity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Marker is the optional leading character on handles
const Marker = "@"

// Fold trims and lowercases raw, leaving any marker in place
func Fold(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	// Casers are stateful, build one per call
	return cases.Lower(language.Und).String(s)
}

// Normalize returns the canonical comparison form of a handle:
// folded, with every leading marker removed. "@Foo" and "foo" normalize alike
func Normalize(raw string) string {
	return strings.TrimLeft(Fold(raw), Marker)
}

// WithoutMarker is Normalize, named for symmetry with WithMarker
func WithoutMarker(raw string) string { return Normalize(raw) }

// WithMarker returns the normalized handle with exactly one leading marker
// empty handles stay empty
func WithMarker(raw string) string {
	s := WithoutMarker(raw)
	if s == "" {
		return ""
	}
	return Marker + s
}

// Equal reports whether a and b name the same handle regardless of case or marker
// an empty handle equals nothing
func Equal(a, b string) bool {
	x := Normalize(a)
	return x != "" && x == Normalize(b)
}
