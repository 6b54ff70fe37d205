// Package testkit holds the small assertions and seam helpers shared by package tests
package testkit

import (
	"strings"
	"sync"
	"testing"
)

// seams guards package level function vars that tests replace
var seams sync.Mutex

// Serial holds the seam lock until t ends
// tests that Swap a var shared with other tests call it first
func Serial(t testing.TB) {
	t.Helper()
	seams.Lock()
	t.Cleanup(seams.Unlock)
}

// Swap sets *target to v and restores the previous value when t ends
func Swap[T any](t testing.TB, target *T, v T) {
	t.Helper()
	prev := *target
	*target = v
	t.Cleanup(func() { *target = prev })
}

// MustPanic fails t unless fn panics and returns the recovered value
func MustPanic(t testing.TB, fn func()) (v any) {
	t.Helper()
	defer func() {
		if v = recover(); v == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
	return nil
}

// MustNotPanic fails t when fn panics
func MustNotPanic(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		if v := recover(); v != nil {
			t.Fatalf("unexpected panic: %v", v)
		}
	}()
	fn()
}

const shown = 2 << 10

// MustContain fails t when needle is not in haystack, quoting at most 2KiB of it
func MustContain(t testing.TB, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		return
	}
	out := haystack
	if len(out) > shown {
		out = out[:shown] + "..."
	}
	t.Fatalf("missing %q in:\n%s", needle, out)
}
