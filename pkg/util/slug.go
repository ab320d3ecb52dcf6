package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultSlug is used when a title has no usable characters
const DefaultSlug = "recipe"

// letters that do not decompose into base + combining mark
var ligatures = strings.NewReplacer(
	"ß", "ss", "æ", "ae", "Æ", "ae", "œ", "oe", "Œ", "oe",
	"ø", "o", "Ø", "o", "ł", "l", "Ł", "l", "đ", "d", "Đ", "d", "þ", "th", "Þ", "th",
)

// Slugify turns a title into a lowercase ASCII slug.
// "Spicy Chicken & Rice!" becomes "spicy-chicken-rice".
func Slugify(title string) string {
	// transform chains carry state, so build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, ligatures.Replace(title))
	if err != nil {
		s = title
	}
	s = strings.ToLower(s)

	var b strings.Builder
	pendingDash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	if b.Len() == 0 {
		return DefaultSlug
	}
	return b.String()
}

// SanitizeSlug reduces a user supplied identifier to [a-z0-9._-].
// A trailing ".json" is dropped so both "pancakes" and "pancakes.json" resolve.
func SanitizeSlug(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimSuffix(s, ".json")
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			return r
		}
		return -1
	}, s)
	if strings.Trim(s, ".") == "" {
		return ""
	}
	return s
}
