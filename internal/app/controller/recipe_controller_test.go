package controller

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ikkim/recipe-box/internal/app/repository"
	"github.com/ikkim/recipe-box/pkg/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type stubFetcher struct {
	recipe *importer.Recipe
	err    error
}

func (s *stubFetcher) Fetch(_ context.Context, _ string) (*importer.Recipe, error) {
	if s.recipe == nil && s.err == nil {
		return nil, importer.ErrNetworkError
	}
	return s.recipe, s.err
}

func TestRecipeController_Index(t *testing.T) {
	app := setupTestApp(t, nil)
	app.createPancakes(t)

	w := app.get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pancakes")
	assert.Contains(t, w.Body.String(), "breakfast")

	w = app.get("/?q=lasagna")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No recipes found for")
}

func TestRecipeController_Show(t *testing.T) {
	app := setupTestApp(t, nil)
	slug := app.createPancakes(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   string
	}{
		{name: "Found", target: "/recipe?slug=" + slug, wantStatus: http.StatusOK, wantBody: "Fluffy and quick"},
		{name: "Trailing json extension", target: "/recipe?slug=" + slug + ".json", wantStatus: http.StatusOK, wantBody: "Pancakes"},
		{name: "Missing slug", target: "/recipe", wantStatus: http.StatusBadRequest, wantBody: MsgMissingSlug},
		{name: "Unknown slug", target: "/recipe?slug=waffles", wantStatus: http.StatusNotFound, wantBody: "Recipe not found."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.get(tt.target)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRecipeController_ShowInvalidDocument(t *testing.T) {
	app := setupTestApp(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(app.recipesDir, "broken.json"), []byte("[1,2]"), 0o644))

	w := app.get("/recipe?slug=broken")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), app.recipesDir)
}

func TestRecipeController_AddReview(t *testing.T) {
	app := setupTestApp(t, nil)
	slug := app.createPancakes(t)

	w := app.postMultipart(t, "/recipe?slug="+slug, map[string]string{
		"csrf":    app.csrf,
		"action":  "add_review",
		"name":    "Ana",
		"rating":  "4",
		"comment": "Lovely",
	}, "photo_file", "me.png", pngBytes)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/recipe?slug="+slug, w.Header().Get("Location"))
	assert.NotNil(t, flashCookie(w))

	recipe, err := app.recipeRepo.Load(slug)
	require.NoError(t, err)
	require.Len(t, recipe.Reviews, 1)
	assert.Equal(t, 4.0, recipe.Rating)
	assert.Equal(t, 1, recipe.Votes)
	assert.True(t, strings.HasPrefix(recipe.Reviews[0].Photo, "/uploads/recipes/"+slug+"/rev_"))

	entries, err := os.ReadDir(filepath.Join(app.uploadsDir, slug))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRecipeController_AddReviewRejected(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
	}{
		{name: "Missing CSRF", fields: map[string]string{"action": "add_review", "rating": "5"}},
		{name: "Forged CSRF", fields: map[string]string{"action": "add_review", "rating": "5", "csrf": "forged"}},
		{name: "Rating out of range", fields: map[string]string{"action": "add_review", "rating": "9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupTestApp(t, nil)
			slug := app.createPancakes(t)
			if tt.name == "Rating out of range" {
				tt.fields["csrf"] = app.csrf
			}
			before, err := os.ReadFile(filepath.Join(app.recipesDir, slug+".json"))
			require.NoError(t, err)

			w := app.postMultipart(t, "/recipe?slug="+slug, tt.fields, "", "", nil)
			assert.Equal(t, http.StatusSeeOther, w.Code)

			after, err := os.ReadFile(filepath.Join(app.recipesDir, slug+".json"))
			require.NoError(t, err)
			assert.True(t, bytes.Equal(before, after), "document must be unchanged")
		})
	}
}

func TestRecipeController_DeleteRemovesDocumentAndUploads(t *testing.T) {
	app := setupTestApp(t, nil)
	slug := app.createPancakes(t)

	w := app.postMultipart(t, "/recipe?slug="+slug, map[string]string{
		"csrf": app.csrf, "action": "add_review", "rating": "5",
	}, "photo_file", "me.png", pngBytes)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.DirExists(t, filepath.Join(app.uploadsDir, slug))

	w = app.postForm("/recipe?slug="+slug, url.Values{
		"csrf": {app.csrf}, "admin_pin": {testPIN}, "action": {"delete_recipe"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	_, err := app.recipeRepo.Load(slug)
	assert.ErrorIs(t, err, repository.ErrRecipeNotFound)
	assert.NoDirExists(t, filepath.Join(app.uploadsDir, slug))
}

func TestRecipeController_DeleteWrongPINKeepsDocument(t *testing.T) {
	app := setupTestApp(t, nil)
	slug := app.createPancakes(t)
	path := filepath.Join(app.recipesDir, slug+".json")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	w := app.postForm("/recipe?slug="+slug, url.Values{
		"csrf": {app.csrf}, "admin_pin": {"0000"}, "action": {"delete_recipe"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/recipe?slug="+slug, w.Header().Get("Location"))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRecipeController_DeleteUnknownRecipe(t *testing.T) {
	app := setupTestApp(t, nil)

	w := app.postForm("/recipe?slug=nope", url.Values{
		"csrf": {app.csrf}, "admin_pin": {testPIN}, "action": {"delete_recipe"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Recipe not found.")
	assert.Nil(t, flashCookie(w))
}

func TestRecipeController_FlashShownOnce(t *testing.T) {
	app := setupTestApp(t, nil)
	slug := app.createPancakes(t)

	w := app.postMultipart(t, "/recipe?slug="+slug, map[string]string{
		"csrf": app.csrf, "action": "add_review", "rating": "5",
	}, "", "", nil)
	cookie := flashCookie(w)
	require.NotNil(t, cookie)

	req := httptestGetWithCookies("/recipe?slug="+slug, cookie)
	page := serve(app, req)
	assert.Contains(t, page.Body.String(), MsgReviewAdded)

	again := app.get("/recipe?slug=" + slug)
	assert.NotContains(t, again.Body.String(), MsgReviewAdded)
}
