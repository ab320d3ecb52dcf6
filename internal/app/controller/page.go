package controller

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/recipe-box/internal/app/model"
	"github.com/ikkim/recipe-box/internal/app/repository"
	"github.com/ikkim/recipe-box/internal/app/service"
	apperrors "github.com/ikkim/recipe-box/internal/errors"
	"github.com/ikkim/recipe-box/internal/flash"
	"github.com/ikkim/recipe-box/internal/middleware"
	"github.com/ikkim/recipe-box/pkg/util"
)

const (
	MsgMissingSlug   = "Missing recipe slug."
	MsgRecipeCreated = "Recipe created."
	MsgRecipeUpdated = "Recipe updated."
	MsgRecipeDeleted = "Recipe deleted."
	MsgDeleteFailed  = "Failed to delete recipe."
	MsgTooLarge      = "The submitted form is too large."
	MsgReviewAdded   = "Thank you for your review!"
	MsgReviewFailed  = "Failed to save your review."
	MsgRecipeFetched = "Fetched recipe. Review and edit below, then save."
	MsgSaveFailed    = "Failed to save changes."

	actionAddReview    = "add_review"
	actionDeleteRecipe = "delete_recipe"
)

// pages holds what every HTML handler needs: access checks, flash messages
// and the common template data.
type pages struct {
	access *middleware.AccessControl
	flash  flash.Store
}

// data builds the template data shared by all pages
func (p pages) data(c *gin.Context, title string) gin.H {
	token, err := p.access.IssueToken(c)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to issue CSRF token", err)
	}
	return gin.H{
		"PageTitle": title,
		"CSRF":      token,
		"Flash":     p.flash.Pop(c),
	}
}

func (p pages) redirectWith(c *gin.Context, location string, msg flash.Message) {
	p.flash.Set(c, msg)
	c.Redirect(http.StatusSeeOther, location)
}

// deleteRecipe runs the admin delete shared by the view and edit pages
func (p pages) deleteRecipe(c *gin.Context, recipes service.RecipeService, slug string) {
	if err := p.access.Authorize(c, true); err != nil {
		p.redirectWith(c, recipeURL(slug), flash.Danger(apperrors.ParseError(err).Message))
		return
	}

	err := recipes.DeleteRecipe(c.Request.Context(), slug)
	switch {
	case errors.Is(err, repository.ErrRecipeNotFound):
		apperrors.RenderParsedErrorPage(c, err)
		return
	case err != nil:
		p.redirectWith(c, recipeURL(slug), flash.Danger(MsgDeleteFailed))
		return
	}

	p.redirectWith(c, "/", flash.Success(MsgRecipeDeleted))
}

// requestTooLarge answers a body over the page cap. Review posts go back to
// the recipe with a flash, anything else gets the 413 error page.
func (p pages) requestTooLarge(c *gin.Context) {
	if c.Request.URL.Path == "/recipe" {
		if slug := util.SanitizeSlug(c.Query("slug")); slug != "" {
			p.redirectWith(c, recipeURL(slug), flash.Danger(MsgTooLarge))
			return
		}
	}
	apperrors.RenderErrorPage(c, http.StatusRequestEntityTooLarge, MsgTooLarge)
}

// slugParam reads ?slug= and sanitizes it. An empty result renders 400.
func slugParam(c *gin.Context) (string, bool) {
	slug := util.SanitizeSlug(c.Query("slug"))
	if slug == "" {
		apperrors.RenderErrorPage(c, http.StatusBadRequest, MsgMissingSlug)
		return "", false
	}
	return slug, true
}

func recipeURL(slug string) string {
	return "/recipe?slug=" + url.QueryEscape(slug)
}

// readRecipeInput collects the admin recipe form
func readRecipeInput(c *gin.Context) service.RecipeInput {
	return service.RecipeInput{
		Title:                c.PostForm("title"),
		Description:          c.PostForm("description"),
		Image:                c.PostForm("image"),
		Tags:                 c.PostForm("tags"),
		IngredientNames:      c.PostFormArray("ing_name[]"),
		IngredientQuantities: c.PostFormArray("ing_qty[]"),
		IngredientUnits:      c.PostFormArray("ing_unit[]"),
		Steps:                c.PostFormArray("steps[]"),
	}
}

// validationMessages returns the messages to show inline for err
func validationMessages(err error) []string {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return verr.Messages
	}
	return []string{apperrors.ParseError(err).Message}
}

func emptyForm() model.RecipeContent {
	return model.RecipeContent{
		Tags:        []string{},
		Ingredients: []model.Ingredient{},
		Steps:       []string{},
	}
}
