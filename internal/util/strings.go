// Package util provides shared string utility functions used across packages.
package util

import "strings"

// TruncateRunes truncates s to at most maxRunes Unicode code points,
// appending "..." if truncation occurred.
// If maxRunes <= 0, s is returned unchanged.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}

// CollapseSpace trims s and collapses internal whitespace runs to a single
// space. Used to normalize free-form text before length checks so that
// padding with blank lines cannot satisfy a minimum-length bound.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
