package service

import (
	"context"

	"github.com/ikkim/recipe-box/internal/app/model"
	"github.com/ikkim/recipe-box/pkg/importer"
	"github.com/ikkim/recipe-box/pkg/logger"
	"github.com/ikkim/recipe-box/pkg/util"
)

// RecipeFetcher is implemented by importer.Client
type RecipeFetcher interface {
	Fetch(ctx context.Context, recipeURL string) (*importer.Recipe, error)
}

type ImportService interface {
	// Draft fetches recipeURL through the webhook and returns sanitized form
	// content. Nothing is saved.
	Draft(ctx context.Context, recipeURL string) (*model.RecipeContent, error)
}

type importService struct {
	fetcher RecipeFetcher
}

func NewImportService(fetcher RecipeFetcher) ImportService {
	return &importService{fetcher: fetcher}
}

func (s *importService) Draft(ctx context.Context, recipeURL string) (*model.RecipeContent, error) {
	imported, err := s.fetcher.Fetch(ctx, recipeURL)
	if err != nil {
		logger.Warn("Recipe import failed", map[string]interface{}{
			"url":   recipeURL,
			"error": err.Error(),
		})
		return nil, err
	}

	draft := &model.RecipeContent{
		Title:       util.SanitizeText(imported.Title, model.MaxTitleLength),
		Description: util.SanitizeText(imported.Description, model.MaxDescriptionLength),
		Tags:        []string{},
		Ingredients: []model.Ingredient{},
		Steps:       []string{},
	}
	if util.IsHTTPURL(imported.Image) {
		draft.Image = util.SanitizeText(imported.Image, model.MaxImageURLLength)
	}
	for _, ing := range imported.Ingredients {
		name := util.SanitizeText(ing.Name, model.MaxIngredientNameLength)
		if name == "" {
			continue
		}
		draft.Ingredients = append(draft.Ingredients, model.Ingredient{
			Name:     name,
			Quantity: util.SanitizeText(ing.Quantity, model.MaxQuantityLength),
			Unit:     util.SanitizeText(ing.Unit, model.MaxUnitLength),
		})
	}
	for _, step := range imported.Steps {
		if text := util.SanitizeText(step, model.MaxStepLength); text != "" {
			draft.Steps = append(draft.Steps, text)
		}
	}

	logger.Info("Recipe draft imported", map[string]interface{}{
		"url":         recipeURL,
		"ingredients": len(draft.Ingredients),
		"steps":       len(draft.Steps),
	})
	return draft, nil
}
