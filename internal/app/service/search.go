package service

import (
	"sort"
	"strings"

	"github.com/ikkim/recipe-box/internal/app/model"
	"github.com/ikkim/recipe-box/pkg/util"
)

const (
	PopularTagLimit       = 10
	summaryDescriptionLen = 120
	summaryTagLimit       = 3
)

// FilterRecipes keeps recipes whose title, description, tags or ingredient
// names contain query, case-insensitively. Store order is preserved and an
// empty query keeps everything.
func FilterRecipes(recipes []model.Recipe, query string) []model.Recipe {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return recipes
	}

	matched := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if matchesRecipe(r, q) {
			matched = append(matched, r)
		}
	}
	return matched
}

func matchesRecipe(r model.Recipe, q string) bool {
	if strings.Contains(strings.ToLower(r.Title), q) ||
		strings.Contains(strings.ToLower(r.Description), q) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), q) {
			return true
		}
	}
	return false
}

// PopularTags counts lowercased, trimmed tags and returns the most used ones.
// Ties keep the order in which tags were first seen.
func PopularTags(recipes []model.Recipe, limit int) []model.TagCount {
	counts := map[string]int{}
	var order []string
	for _, r := range recipes {
		for _, tag := range r.Tags {
			t := strings.ToLower(strings.TrimSpace(tag))
			if t == "" {
				continue
			}
			if _, seen := counts[t]; !seen {
				order = append(order, t)
			}
			counts[t]++
		}
	}

	tags := make([]model.TagCount, 0, len(order))
	for _, t := range order {
		tags = append(tags, model.TagCount{Tag: t, Count: counts[t]})
	}
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Count > tags[j].Count
	})
	if limit > 0 && len(tags) > limit {
		tags = tags[:limit]
	}
	return tags
}

// Summarize builds the listing card for r
func Summarize(r model.Recipe) model.RecipeSummary {
	tags := r.Tags
	if len(tags) > summaryTagLimit {
		tags = tags[:summaryTagLimit]
	}
	return model.RecipeSummary{
		Slug:        r.Slug,
		Title:       r.Title,
		Description: util.Truncate(r.Description, summaryDescriptionLen),
		Tags:        tags,
		Rating:      r.Rating,
		Votes:       r.Votes,
		Photo:       r.BestPhoto(),
	}
}
