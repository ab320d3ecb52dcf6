package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "hello", SanitizeText("  hello \x00 ", 0))
	assert.Equal(t, "line one\nline two", SanitizeText("line one\r\nline two", 0))
	assert.Equal(t, "abc", SanitizeText("abcdef", 3))
	assert.Equal(t, "크림", SanitizeText("크림파스타", 2))
	assert.Len(t, []rune(SanitizeText(strings.Repeat("x", 3000), 2000)), 2000)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 120))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, 120, len([]rune(Truncate(strings.Repeat("a", 300), 120))))
}

func TestIsHTTPURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com/a.jpg", true},
		{"http://example.com", true},
		{"ftp://example.com/a.jpg", false},
		{"javascript:alert(1)", false},
		{"/uploads/recipes/x/y.jpg", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHTTPURL(tt.in))
		})
	}
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"dinner", "Quick", "vegan"}, SplitCSV(" dinner, Quick ,, vegan,"))
	assert.Equal(t, []string{}, SplitCSV(""))
}
