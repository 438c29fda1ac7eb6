// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render derives document filenames and renders resolved
// conversations as Markdown.
package render

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultMaxTitle bounds the sanitized title portion of a filename so
	// the full path stays well under common filesystem limits.
	DefaultMaxTitle = 100

	// untitled replaces titles that sanitize down to nothing.
	untitled = "Untitled"

	dateLayout = "2006-01-02"
)

// Filename derives a filesystem-safe document name of the form
// YYYY-MM-DD-Sanitized_Title from a conversation title and its update
// time. The result is deterministic: equal inputs yield equal names.
// Collisions between distinct conversations are resolved by the writer,
// not here. A maxTitle of zero or less uses DefaultMaxTitle.
func Filename(title string, updateTime float64, maxTitle int) string {
	if maxTitle <= 0 {
		maxTitle = DefaultMaxTitle
	}
	return Date(updateTime) + "-" + SanitizeTitle(title, maxTitle)
}

// Date formats a Unix timestamp (seconds, fractional allowed) as a UTC
// calendar date. A missing or zero timestamp yields the epoch sentinel
// "1970-01-01" rather than failing.
func Date(epoch float64) string {
	sec := int64(epoch)
	nsec := int64((epoch - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC().Format(dateLayout)
}

// SanitizeTitle rewrites a title into a safe filename component: every
// rune that is not a letter or digit becomes an underscore, runs collapse
// to one, leading and trailing separators are trimmed, and the result is
// truncated to maxLen preferring whole words. An empty result becomes
// "Untitled".
func SanitizeTitle(title string, maxLen int) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	s := strings.Trim(b.String(), "_")
	if utf8.RuneCountInString(s) > maxLen {
		s = truncateWords(s, maxLen)
	}
	if s == "" {
		return untitled
	}
	return s
}

// truncateWords shortens an underscore-separated string to maxLen runes,
// dropping trailing words rather than cutting mid-word when possible.
func truncateWords(s string, maxLen int) string {
	var words []string
	used := 0
	for _, word := range strings.Split(s, "_") {
		need := utf8.RuneCountInString(word)
		if len(words) > 0 {
			need++ // separator
		}
		if used+need > maxLen {
			break
		}
		words = append(words, word)
		used += need
	}
	if len(words) == 0 {
		// First word alone exceeds the budget: cut it.
		return string([]rune(s)[:maxLen])
	}
	return strings.Join(words, "_")
}
