package util

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SanitizeText trims s, drops control characters other than newline and tab,
// and caps the result at max runes (max <= 0 means no cap).
func SanitizeText(s string, max int) string {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r == '\r' || unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if max > 0 && utf8.RuneCountInString(s) > max {
		s = strings.TrimSpace(string([]rune(s)[:max]))
	}
	return s
}

// Truncate shortens s to width runes, ending with an ellipsis when cut
func Truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return strings.TrimSpace(string([]rune(s)[:width-1])) + "…"
}

// IsHTTPURL reports whether s is an absolute http or https URL with a host
func IsHTTPURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// SplitCSV splits a comma separated list, trimming entries and dropping empty ones
func SplitCSV(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
