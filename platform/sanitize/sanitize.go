// Package sanitize provides text sanitization utilities for user-provided input.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	// htmlTagRegex matches HTML tags
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
	// whitespaceRegex matches runs of whitespace, including newlines
	whitespaceRegex = regexp.MustCompile(`\s+`)
	// nonAlphanumericRegex matches anything outside ASCII letters and digits
	nonAlphanumericRegex = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// StripHTML removes all HTML tags from a string, making it safe for text-only display.
func StripHTML(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	result = strings.ReplaceAll(result, "&lt;", "<")
	result = strings.ReplaceAll(result, "&gt;", ">")
	result = strings.ReplaceAll(result, "&amp;", "&")
	result = strings.ReplaceAll(result, "&quot;", "\"")
	result = strings.ReplaceAll(result, "&#39;", "'")
	// Re-strip after entity decode to catch encoded tags
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Whitespace trims s and collapses internal whitespace runs to one space.
func Whitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// Text sanitizes a string for safe text forwarding by stripping HTML
// and normalizing whitespace. Use for free-text fields like messages.
func Text(s string) string {
	return Whitespace(StripHTML(s))
}

// Alphanumeric drops every character that is not an ASCII letter or digit.
func Alphanumeric(s string) string {
	return nonAlphanumericRegex.ReplaceAllString(s, "")
}
