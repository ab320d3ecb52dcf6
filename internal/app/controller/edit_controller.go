package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/recipe-box/internal/app/model"
	"github.com/ikkim/recipe-box/internal/app/repository"
	"github.com/ikkim/recipe-box/internal/app/service"
	apperrors "github.com/ikkim/recipe-box/internal/errors"
	"github.com/ikkim/recipe-box/internal/flash"
	"github.com/ikkim/recipe-box/internal/middleware"
	"github.com/ikkim/recipe-box/internal/web"
)

type EditController struct {
	pages
	recipeService service.RecipeService
}

func NewEditController(recipeService service.RecipeService, access *middleware.AccessControl, flashStore flash.Store) *EditController {
	return &EditController{
		pages:         pages{access: access, flash: flashStore},
		recipeService: recipeService,
	}
}

// Show 레시피 수정 폼
func (ctrl *EditController) Show(c *gin.Context) {
	slug, ok := slugParam(c)
	if !ok {
		return
	}

	recipe, err := ctrl.recipeService.GetRecipe(slug)
	if err != nil {
		apperrors.RenderParsedErrorPage(c, err)
		return
	}

	ctrl.render(c, http.StatusOK, slug, recipe.Content(), nil)
}

// Post 레시피 수정 또는 삭제 (CSRF + PIN)
func (ctrl *EditController) Post(c *gin.Context) {
	slug, ok := slugParam(c)
	if !ok {
		return
	}

	if _, err := ctrl.recipeService.GetRecipe(slug); err != nil {
		apperrors.RenderParsedErrorPage(c, err)
		return
	}

	if c.PostForm("action") == actionDeleteRecipe {
		ctrl.deleteRecipe(c, ctrl.recipeService, slug)
		return
	}

	input := readRecipeInput(c)
	submitted, _ := service.NormalizeRecipeInput(input)

	if err := ctrl.access.Authorize(c, true); err != nil {
		info := apperrors.ParseError(err)
		ctrl.render(c, info.Status, slug, submitted, []string{info.Message})
		return
	}

	if _, err := ctrl.recipeService.UpdateRecipe(slug, input); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			ctrl.render(c, http.StatusBadRequest, slug, submitted, validationMessages(err))
		case errors.Is(err, repository.ErrRecipeNotFound):
			apperrors.RenderParsedErrorPage(c, err)
		default:
			ctrl.render(c, http.StatusInternalServerError, slug, submitted, []string{MsgSaveFailed})
		}
		return
	}

	ctrl.redirectWith(c, recipeURL(slug), flash.Success(MsgRecipeUpdated))
}

func (ctrl *EditController) render(c *gin.Context, status int, slug string, form model.RecipeContent, errs []string) {
	data := ctrl.data(c, "Edit Recipe")
	data["Slug"] = slug
	data["Form"] = form
	data["Errors"] = errs
	c.HTML(status, web.EditPage, data)
}
