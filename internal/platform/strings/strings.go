// Package strings provides string and slice helpers
package strings

import (
	std "strings"
	"unicode/utf8"
)

// TruncatedSuffix marks text cut by Truncate
const TruncatedSuffix = "...(truncated)"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustPrefix normalizes and asserts a root path like /meta or /api/v1
// ensures a single leading slash and no trailing slash; panics on the bare root
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Truncate caps s at max bytes without splitting a rune and appends TruncatedSuffix.
// max <= 0 disables the cap
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + TruncatedSuffix
}

// FirstNonEmpty returns the first argument with non whitespace content
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if std.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
