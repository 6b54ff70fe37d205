// Package ordermatch picks out the orders that mention an identity
//
// Matching is a substring heuristic over the free text of each order and can
// report an order for "bob" that belongs to "bobby". Known precision tradeoff;
// switching to exact field matching needs product sign-off
package ordermatch

import (
	"strings"

	"minishop/internal/core/identity"

	"github.com/samber/lo"
)

// Haystack lowercases and space-joins the non-blank fields
func Haystack(fields ...string) string {
	parts := lo.FilterMap(fields, func(f string, _ int) (string, bool) {
		f = identity.Fold(f)
		return f, f != ""
	})
	return strings.Join(parts, " ")
}

// Contains reports whether the haystack mentions the handle with or without its marker
func Contains(haystack, who string) bool {
	bare := identity.Normalize(who)
	if bare == "" {
		return false
	}
	return strings.Contains(haystack, identity.WithMarker(who)) || strings.Contains(haystack, bare)
}

// Match returns the orders whose free text mentions who, in input order
// text extracts the free-text fields of one order. The result is never nil
func Match[T any](who string, orders []T, text func(T) []string) []T {
	if identity.Normalize(who) == "" {
		return []T{}
	}
	return lo.Filter(orders, func(o T, _ int) bool {
		return Contains(Haystack(text(o)...), who)
	})
}
