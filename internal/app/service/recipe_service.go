package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ikkim/recipe-box/internal/app/model"
	"github.com/ikkim/recipe-box/internal/app/repository"
	"github.com/ikkim/recipe-box/internal/metrics"
	"github.com/ikkim/recipe-box/pkg/logger"
	"github.com/ikkim/recipe-box/pkg/util"
)

const (
	MsgTitleRequired      = "Title is required."
	MsgIngredientRequired = "At least one ingredient."
	MsgStepRequired       = "At least one step."
	MsgInvalidImage       = "Image must be an http(s) URL."
)

// RecipeInput is the raw admin form. Ingredient columns are parallel slices.
type RecipeInput struct {
	Title                string
	Description          string
	Image                string
	Tags                 string
	IngredientNames      []string
	IngredientQuantities []string
	IngredientUnits      []string
	Steps                []string
}

// RecipeListing is everything the index page shows
type RecipeListing struct {
	Query       string
	Recipes     []model.RecipeSummary
	PopularTags []model.TagCount
	Total       int
}

type RecipeService interface {
	GetRecipe(slug string) (*model.Recipe, error)
	ListRecipes(query string) (*RecipeListing, error)
	CreateRecipe(input RecipeInput) (string, error)
	UpdateRecipe(slug string, input RecipeInput) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, slug string) error
}

type recipeService struct {
	recipeRepo repository.RecipeRepository
}

func NewRecipeService(recipeRepo repository.RecipeRepository) RecipeService {
	return &recipeService{recipeRepo: recipeRepo}
}

// GetRecipe 레시피 상세 조회
func (s *recipeService) GetRecipe(slug string) (*model.Recipe, error) {
	return s.recipeRepo.Load(slug)
}

// ListRecipes 목록 페이지 데이터 (검색 결과 + 인기 태그)
func (s *recipeService) ListRecipes(query string) (*RecipeListing, error) {
	all, err := s.recipeRepo.List()
	if err != nil {
		return nil, err
	}

	matched := FilterRecipes(all, query)
	summaries := make([]model.RecipeSummary, 0, len(matched))
	for _, r := range matched {
		summaries = append(summaries, Summarize(r))
	}

	logger.Debug("Listing recipes", map[string]interface{}{
		"query":   query,
		"matched": len(matched),
		"total":   len(all),
	})

	return &RecipeListing{
		Query:       query,
		Recipes:     summaries,
		PopularTags: PopularTags(all, PopularTagLimit),
		Total:       len(all),
	}, nil
}

// NormalizeRecipeInput applies the field caps and drops empty ingredient
// and step rows. Title, at least one ingredient and at least one step are required.
func NormalizeRecipeInput(input RecipeInput) (model.RecipeContent, error) {
	content := model.RecipeContent{
		Title:       util.SanitizeText(input.Title, model.MaxTitleLength),
		Description: util.SanitizeText(input.Description, model.MaxDescriptionLength),
		Image:       util.SanitizeText(input.Image, model.MaxImageURLLength),
		Tags:        util.SplitCSV(util.SanitizeText(input.Tags, model.MaxTagsInputLength)),
		Ingredients: []model.Ingredient{},
		Steps:       []string{},
	}

	for i, raw := range input.IngredientNames {
		name := util.SanitizeText(raw, model.MaxIngredientNameLength)
		if name == "" {
			continue
		}
		content.Ingredients = append(content.Ingredients, model.Ingredient{
			Name:     name,
			Quantity: util.SanitizeText(at(input.IngredientQuantities, i), model.MaxQuantityLength),
			Unit:     util.SanitizeText(at(input.IngredientUnits, i), model.MaxUnitLength),
		})
	}
	for _, raw := range input.Steps {
		if step := util.SanitizeText(raw, model.MaxStepLength); step != "" {
			content.Steps = append(content.Steps, step)
		}
	}

	var messages []string
	if content.Title == "" {
		messages = append(messages, MsgTitleRequired)
	}
	if len(content.Ingredients) == 0 {
		messages = append(messages, MsgIngredientRequired)
	}
	if len(content.Steps) == 0 {
		messages = append(messages, MsgStepRequired)
	}
	if content.Image != "" && !util.IsHTTPURL(content.Image) {
		messages = append(messages, MsgInvalidImage)
	}
	if len(messages) > 0 {
		return content, newValidationError(messages...)
	}
	return content, nil
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

// CreateRecipe 레시피 생성, 생성된 slug 반환
func (s *recipeService) CreateRecipe(input RecipeInput) (string, error) {
	content, err := NormalizeRecipeInput(input)
	if err != nil {
		return "", err
	}

	recipe := &model.Recipe{Schema: model.RecipeSchemaURL}
	recipe.Apply(content)
	recipe.Recompute()

	slug, err := s.recipeRepo.Create(recipe)
	if err != nil {
		logger.Error("Failed to create recipe", err, map[string]interface{}{
			"title": content.Title,
		})
		return "", err
	}
	metrics.RecipesCreated.Inc()
	return slug, nil
}

// UpdateRecipe 레시피 수정 (리뷰와 평점은 유지)
func (s *recipeService) UpdateRecipe(slug string, input RecipeInput) (*model.Recipe, error) {
	content, err := NormalizeRecipeInput(input)
	if err != nil {
		return nil, err
	}

	recipe, err := s.recipeRepo.Load(slug)
	if err != nil {
		return nil, err
	}
	recipe.Apply(content)

	if err := s.recipeRepo.Save(recipe.Slug, recipe); err != nil {
		logger.Error("Failed to update recipe", err, map[string]interface{}{
			"slug": recipe.Slug,
		})
		return nil, err
	}
	metrics.RecipesUpdated.Inc()
	return recipe, nil
}

// DeleteRecipe 레시피 삭제
func (s *recipeService) DeleteRecipe(ctx context.Context, slug string) error {
	if err := s.recipeRepo.Delete(ctx, slug); err != nil {
		if !errors.Is(err, repository.ErrRecipeNotFound) {
			logger.Error("Failed to delete recipe", err, map[string]interface{}{
				"slug": slug,
			})
		}
		return fmt.Errorf("delete recipe: %w", err)
	}
	metrics.RecipesDeleted.Inc()
	return nil
}
