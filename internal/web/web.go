package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names
const (
	IndexPage  = "index.html"
	RecipePage = "recipe.html"
	EditPage   = "edit.html"
	NewPage    = "new.html"
	ErrorPage  = "error.html"
)

// Templates parses the embedded page templates for gin's SetHTMLTemplate
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"rating": func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"date":   FormatDate,
		"join":   func(items []string) string { return strings.Join(items, ", ") },
		"inc":    func(i int) int { return i + 1 },
		"plural": func(n int, word string) string {
			if n == 1 {
				return fmt.Sprintf("%d %s", n, word)
			}
			return fmt.Sprintf("%d %ss", n, word)
		},
	}
}

// FormatDate renders an RFC 3339 review date as "Jan 2, 2006".
// Unparseable dates are shown as stored.
func FormatDate(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2, 2006")
}
