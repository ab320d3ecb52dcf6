package controller

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/ikkim/recipe-box/internal/app/model"
	"github.com/ikkim/recipe-box/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditController_Show(t *testing.T) {
	app := setupTestApp(t, nil)
	slug := app.createPancakes(t)

	w := app.get("/edit?slug=" + slug)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Pancakes"`)
	assert.Contains(t, w.Body.String(), "breakfast, sweet")

	w = app.get("/edit?slug=nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditController_RejectedMutationsLeaveDocumentUntouched(t *testing.T) {
	tests := []struct {
		name       string
		csrf       func(app *testApp) string
		pin        string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "Wrong PIN",
			csrf:       func(app *testApp) string { return app.csrf },
			pin:        "1357",
			wantStatus: http.StatusForbidden,
			wantBody:   "Invalid PIN.",
		},
		{
			name:       "Missing CSRF",
			csrf:       func(*testApp) string { return "" },
			pin:        testPIN,
			wantStatus: http.StatusForbidden,
			wantBody:   "Invalid CSRF token.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupTestApp(t, nil)
			slug := app.createPancakes(t)
			path := filepath.Join(app.recipesDir, slug+".json")
			before, err := os.ReadFile(path)
			require.NoError(t, err)

			w := app.postForm("/edit?slug="+slug, recipeForm(tt.csrf(app), tt.pin))
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.Contains(t, w.Body.String(), `value="Banana Bread"`, "submitted values are kept")

			after, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, string(before), string(after))
		})
	}
}

func TestEditController_Update(t *testing.T) {
	app := setupTestApp(t, nil)
	slug := app.createPancakes(t)

	recipe, err := app.recipeRepo.Load(slug)
	require.NoError(t, err)
	recipe.Reviews = []model.Review{{Name: "Ana", Rating: 3, Date: "2024-01-01T00:00:00Z"}}
	require.NoError(t, app.recipeRepo.Save(slug, recipe))

	w := app.postForm("/edit?slug="+slug, recipeForm(app.csrf, testPIN))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/recipe?slug="+slug, w.Header().Get("Location"))

	updated, err := app.recipeRepo.Load(slug)
	require.NoError(t, err)
	assert.Equal(t, "Banana Bread", updated.Title)
	assert.Equal(t, []string{"baking", "sweet"}, updated.Tags)
	assert.Equal(t, []model.Ingredient{
		{Name: "banana", Quantity: "3"},
		{Name: "flour", Quantity: "250", Unit: "g"},
	}, updated.Ingredients)
	assert.Len(t, updated.Reviews, 1, "reviews survive edits")
	assert.Equal(t, 3.0, updated.Rating)
}

func TestEditController_ValidationErrors(t *testing.T) {
	app := setupTestApp(t, nil)
	slug := app.createPancakes(t)

	form := recipeForm(app.csrf, testPIN)
	form.Set("title", "")
	form["steps[]"] = []string{" "}

	w := app.postForm("/edit?slug="+slug, form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Title is required.")
	assert.Contains(t, w.Body.String(), "At least one step.")

	recipe, err := app.recipeRepo.Load(slug)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", recipe.Title)
}

func TestEditController_Delete(t *testing.T) {
	app := setupTestApp(t, nil)
	slug := app.createPancakes(t)

	w := app.postForm("/edit?slug="+slug, url.Values{
		"csrf": {app.csrf}, "admin_pin": {testPIN}, "action": {"delete_recipe"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	_, err := app.recipeRepo.Load(slug)
	assert.ErrorIs(t, err, repository.ErrRecipeNotFound)
}
