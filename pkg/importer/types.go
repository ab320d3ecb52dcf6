package importer

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Request is the payload posted to the webhook
type Request struct {
	URL string `json:"url"`
}

// Recipe is the imported document with loosely typed fields coerced to
// strings. Callers still apply their own length caps.
type Recipe struct {
	Title       string
	Description string
	Image       string
	Ingredients []Ingredient
	Steps       []string
}

type Ingredient struct {
	Name     string
	Quantity string
	Unit     string
}

// parseRecipe accepts the webhook's shape: ingredients that are not objects
// are skipped and steps may be plain strings or {"text": ...} objects.
func parseRecipe(body []byte) (*Recipe, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil || doc == nil {
		return nil, ErrInvalidResponse
	}

	title := asString(doc["title"])
	if strings.TrimSpace(title) == "" || title == "0" {
		return nil, ErrMissingTitle
	}

	recipe := &Recipe{
		Title:       title,
		Description: asString(doc["description"]),
		Image:       asString(doc["image"]),
		Ingredients: []Ingredient{},
		Steps:       []string{},
	}

	var ingredients []json.RawMessage
	if json.Unmarshal(doc["ingredients"], &ingredients) == nil {
		for _, raw := range ingredients {
			var fields map[string]json.RawMessage
			if json.Unmarshal(raw, &fields) != nil || fields == nil {
				continue
			}
			recipe.Ingredients = append(recipe.Ingredients, Ingredient{
				Name:     asString(fields["name"]),
				Quantity: asString(fields["quantity"]),
				Unit:     asString(fields["unit"]),
			})
		}
	}

	var steps []json.RawMessage
	if json.Unmarshal(doc["steps"], &steps) == nil {
		for _, raw := range steps {
			var text string
			if json.Unmarshal(raw, &text) == nil {
				recipe.Steps = append(recipe.Steps, text)
				continue
			}
			var fields map[string]json.RawMessage
			if json.Unmarshal(raw, &fields) == nil && fields != nil {
				recipe.Steps = append(recipe.Steps, asString(fields["text"]))
			}
		}
	}

	return recipe, nil
}

// asString coerces JSON scalars to text; arrays, objects and null become ""
func asString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "1"
		}
		return ""
	default:
		return ""
	}
}
