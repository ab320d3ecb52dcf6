package service

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ikkim/recipe-box/internal/app/model"
	"github.com/ikkim/recipe-box/internal/app/repository"
	"github.com/ikkim/recipe-box/internal/metrics"
	"github.com/ikkim/recipe-box/pkg/logger"
	"github.com/ikkim/recipe-box/pkg/util"
)

const MsgInvalidRating = "Please select a rating between 1 and 5."

// ReviewInput is the raw review form. Photo is nil when nothing was uploaded.
type ReviewInput struct {
	Name      string
	Rating    string
	Comment   string
	PhotoURL  string
	Photo     io.Reader
	PhotoSize int64
}

type ReviewService interface {
	AddReview(ctx context.Context, slug string, input ReviewInput) (*model.Review, error)
}

type reviewService struct {
	recipeRepo repository.RecipeRepository
	uploader   PhotoUploader
}

func NewReviewService(recipeRepo repository.RecipeRepository, uploader PhotoUploader) ReviewService {
	return &reviewService{
		recipeRepo: recipeRepo,
		uploader:   uploader,
	}
}

// AddReview 리뷰 추가.
// The recipe is re-read right before the write, but no lock spans the
// read and the save: two reviews posted at the same moment can overwrite
// each other and one of them is lost.
func (s *reviewService) AddReview(ctx context.Context, slug string, input ReviewInput) (*model.Review, error) {
	slug = util.SanitizeSlug(slug)
	if !s.recipeRepo.Exists(slug) {
		return nil, repository.ErrRecipeNotFound
	}

	rating, err := strconv.Atoi(strings.TrimSpace(input.Rating))
	if err != nil || rating < model.MinReviewRating || rating > model.MaxReviewRating {
		return nil, newValidationError(MsgInvalidRating)
	}

	name := util.SanitizeText(input.Name, model.MaxReviewNameLength)
	if name == "" {
		name = model.AnonymousReviewer
	}

	photo, uploaded := s.resolvePhoto(ctx, slug, input)
	review := model.Review{
		Name:    name,
		Rating:  rating,
		Comment: util.SanitizeText(input.Comment, model.MaxReviewCommentLength),
		Photo:   photo,
		Date:    time.Now().Format(time.RFC3339),
	}

	recipe, err := s.recipeRepo.Load(slug)
	if err != nil {
		if uploaded {
			s.discardPhoto(ctx, slug, photo)
		}
		return nil, err
	}
	recipe.Reviews = append(recipe.Reviews, review)
	recipe.Recompute()

	if err := s.recipeRepo.Save(slug, recipe); err != nil {
		logger.Error("Failed to save review", err, map[string]interface{}{
			"slug": slug,
		})
		if uploaded {
			s.discardPhoto(ctx, slug, photo)
		}
		return nil, err
	}

	metrics.ReviewsAdded.Inc()
	logger.Info("Review added", map[string]interface{}{
		"slug":      slug,
		"rating":    rating,
		"votes":     recipe.Votes,
		"has_photo": review.Photo != "",
	})
	return &review, nil
}

// resolvePhoto prefers a valid upload, then a valid http(s) URL, then nothing.
// Upload problems never fail the review. uploaded reports whether the
// returned URL points at a file this call stored.
func (s *reviewService) resolvePhoto(ctx context.Context, slug string, input ReviewInput) (photo string, uploaded bool) {
	if input.Photo != nil && s.uploader != nil {
		url, err := s.uploader.SaveReviewPhoto(ctx, slug, input.PhotoSize, input.Photo)
		if err == nil {
			return url, true
		}
		reason := uploadRejectionReason(err)
		metrics.UploadsRejected.WithLabelValues(reason).Inc()
		logger.Warn("Review photo upload skipped", map[string]interface{}{
			"slug":   slug,
			"reason": reason,
			"error":  err.Error(),
		})
	}

	candidate := strings.TrimSpace(input.PhotoURL)
	if candidate != "" && len(candidate) <= model.MaxImageURLLength && util.IsHTTPURL(candidate) {
		return candidate, false
	}
	return "", false
}

// discardPhoto removes an upload whose review was never saved
func (s *reviewService) discardPhoto(ctx context.Context, slug, photo string) {
	if err := s.uploader.RemoveReviewPhoto(ctx, slug, photo); err != nil {
		logger.Warn("Failed to remove orphaned review photo", map[string]interface{}{
			"slug":  slug,
			"photo": photo,
			"error": err.Error(),
		})
	}
}
