// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

// truncate shortens s to at most max runes, marking a cut with an
// ellipsis. Counting runes rather than bytes keeps multibyte titles
// intact in table output.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
