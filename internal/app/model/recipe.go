package model

import (
	"strings"
)

// RecipeSchemaURL is written to the "$schema" field of newly created recipes
const RecipeSchemaURL = "https://json-schema.org/draft/2020-12/schema"

// Field caps applied to user input before a recipe is saved
const (
	MaxTitleLength          = 200
	MaxDescriptionLength    = 2000
	MaxImageURLLength       = 1000
	MaxTagsInputLength      = 500
	MaxIngredientNameLength = 200
	MaxQuantityLength       = 50
	MaxUnitLength           = 50
	MaxStepLength           = 500
	MaxReviewNameLength     = 100
	MaxReviewCommentLength  = 2000
)

const (
	MinReviewRating = 1
	MaxReviewRating = 5

	AnonymousReviewer = "Anonymous"
)

// Recipe is one JSON document in the recipe directory.
// Votes and Rating are derived from Reviews and recomputed on every load.
type Recipe struct {
	Schema      string       `json:"$schema,omitempty"`
	Slug        string       `json:"slug,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Image       string       `json:"image,omitempty"`
	Tags        []string     `json:"tags"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
	Reviews     []Review     `json:"reviews"`
	Votes       int          `json:"votes"`
	Rating      float64      `json:"rating"`
}

type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// Label renders "quantity unit name" with empty parts dropped
func (i Ingredient) Label() string {
	return strings.Join(strings.Fields(i.Quantity+" "+i.Unit+" "+i.Name), " ")
}

type Review struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Photo   string `json:"photo,omitempty"`
	Date    string `json:"date"` // RFC 3339
}

// EnsureCollections replaces nil slices with empty ones so documents always
// serialize lists as [] instead of null.
func (r *Recipe) EnsureCollections() {
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if r.Ingredients == nil {
		r.Ingredients = []Ingredient{}
	}
	if r.Steps == nil {
		r.Steps = []string{}
	}
	if r.Reviews == nil {
		r.Reviews = []Review{}
	}
}

// RecipeContent holds the admin-editable fields. Applying it overwrites those
// fields wholesale and leaves reviews and derived values alone.
type RecipeContent struct {
	Title       string
	Description string
	Image       string
	Tags        []string
	Ingredients []Ingredient
	Steps       []string
}

func (r *Recipe) Apply(content RecipeContent) {
	r.Title = content.Title
	r.Description = content.Description
	r.Image = content.Image
	r.Tags = content.Tags
	r.Ingredients = content.Ingredients
	r.Steps = content.Steps
	r.EnsureCollections()
}

// Content returns the editable fields of r
func (r *Recipe) Content() RecipeContent {
	return RecipeContent{
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		Tags:        r.Tags,
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
	}
}

// RecipeSummary is the listing card view of a recipe
type RecipeSummary struct {
	Slug        string
	Title       string
	Description string
	Tags        []string
	Rating      float64
	Votes       int
	Photo       string
}

type TagCount struct {
	Tag   string
	Count int
}
