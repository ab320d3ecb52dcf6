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

type RecipeController struct {
	pages
	recipeService service.RecipeService
	reviewService service.ReviewService
}

func NewRecipeController(
	recipeService service.RecipeService,
	reviewService service.ReviewService,
	access *middleware.AccessControl,
	flashStore flash.Store,
) *RecipeController {
	return &RecipeController{
		pages:         pages{access: access, flash: flashStore},
		recipeService: recipeService,
		reviewService: reviewService,
	}
}

// Index 레시피 목록 / 검색
func (ctrl *RecipeController) Index(c *gin.Context) {
	listing, err := ctrl.recipeService.ListRecipes(c.Query("q"))
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list recipes", err)
		apperrors.RenderParsedErrorPage(c, err)
		return
	}

	data := ctrl.data(c, "Recipes")
	data["Listing"] = listing
	c.HTML(http.StatusOK, web.IndexPage, data)
}

// Show 레시피 상세
func (ctrl *RecipeController) Show(c *gin.Context) {
	slug, ok := slugParam(c)
	if !ok {
		return
	}

	recipe, err := ctrl.recipeService.GetRecipe(slug)
	if err != nil {
		if !errors.Is(err, repository.ErrRecipeNotFound) {
			middleware.GetLoggerFromContext(c).Error("Failed to load recipe", err, map[string]interface{}{
				"slug": slug,
			})
		}
		apperrors.RenderParsedErrorPage(c, err)
		return
	}

	data := ctrl.data(c, recipe.Title)
	data["Recipe"] = recipe
	data["Photo"] = recipe.BestPhoto()
	data["Reviews"] = newestFirst(recipe.Reviews)
	c.HTML(http.StatusOK, web.RecipePage, data)
}

// RequestTooLarge 요청 본문 크기 초과 처리
func (ctrl *RecipeController) RequestTooLarge(c *gin.Context) {
	ctrl.requestTooLarge(c)
}

// Post 리뷰 작성 또는 레시피 삭제
func (ctrl *RecipeController) Post(c *gin.Context) {
	slug, ok := slugParam(c)
	if !ok {
		return
	}

	switch c.PostForm("action") {
	case actionAddReview:
		ctrl.addReview(c, slug)
	case actionDeleteRecipe:
		ctrl.deleteRecipe(c, ctrl.recipeService, slug)
	default:
		apperrors.RenderErrorPage(c, http.StatusBadRequest, "Unknown action.")
	}
}

func (ctrl *RecipeController) addReview(c *gin.Context, slug string) {
	if err := ctrl.access.Authorize(c, false); err != nil {
		ctrl.redirectWith(c, recipeURL(slug), flash.Danger(apperrors.ParseError(err).Message))
		return
	}

	input := service.ReviewInput{
		Name:     c.PostForm("name"),
		Rating:   c.PostForm("rating"),
		Comment:  c.PostForm("comment"),
		PhotoURL: c.PostForm("photo"),
	}
	if header, err := c.FormFile("photo_file"); err == nil {
		file, err := header.Open()
		if err == nil {
			defer file.Close()
			input.Photo = file
			input.PhotoSize = header.Size
		}
	}

	_, err := ctrl.reviewService.AddReview(c.Request.Context(), slug, input)
	switch {
	case err == nil:
		ctrl.redirectWith(c, recipeURL(slug), flash.Success(MsgReviewAdded))
	case errors.Is(err, service.ErrValidation):
		ctrl.redirectWith(c, recipeURL(slug), flash.Danger(err.Error()))
	case errors.Is(err, repository.ErrRecipeNotFound):
		apperrors.RenderParsedErrorPage(c, err)
	default:
		ctrl.redirectWith(c, recipeURL(slug), flash.Danger(MsgReviewFailed))
	}
}

// newestFirst returns a reversed copy for display
func newestFirst(reviews []model.Review) []model.Review {
	out := make([]model.Review, len(reviews))
	for i, r := range reviews {
		out[len(reviews)-1-i] = r
	}
	return out
}
