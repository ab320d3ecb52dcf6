package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ikkim/recipe-box/internal/app/model"
	"github.com/ikkim/recipe-box/pkg/logger"
	"github.com/ikkim/recipe-box/pkg/util"
)

const (
	documentExt = ".json"
	// maxSlugAttempts bounds the "-2", "-3", ... suffix search on create
	maxSlugAttempts = 1000
)

var (
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrInvalidDocument = errors.New("invalid recipe document")
	ErrSlugExhausted   = errors.New("no free slug available")
)

// UploadRemover deletes every uploaded file that belongs to a recipe
type UploadRemover interface {
	RemoveRecipeUploads(ctx context.Context, slug string) error
}

// RecipeRepository stores one JSON document per recipe in a directory.
//
// Writes hold an exclusive per-slug lock and publish through rename, so a
// reader sees either the old or the new document. Nothing is held across a
// Load/Save pair: two writers that both load, mutate and save the same slug
// can lose one of the updates.
type RecipeRepository interface {
	Load(slug string) (*model.Recipe, error)
	Save(slug string, recipe *model.Recipe) error
	List() ([]model.Recipe, error)
	Delete(ctx context.Context, slug string) error
	Exists(slug string) bool
	Create(recipe *model.Recipe) (string, error)
}

type recipeRepository struct {
	dir     string
	uploads UploadRemover
}

func NewRecipeRepository(dir string, uploads UploadRemover) (RecipeRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create recipe directory: %w", err)
	}
	return &recipeRepository{dir: dir, uploads: uploads}, nil
}

func (r *recipeRepository) path(slug string) string {
	return filepath.Join(r.dir, slug+documentExt)
}

func (r *recipeRepository) lockPath(slug string) string {
	return filepath.Join(r.dir, "."+slug+".lock")
}

// Load 레시피 문서 조회
func (r *recipeRepository) Load(slug string) (*model.Recipe, error) {
	slug = util.SanitizeSlug(slug)
	if slug == "" {
		return nil, ErrRecipeNotFound
	}

	data, err := os.ReadFile(r.path(slug))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to read recipe %s: %w", slug, err)
	}

	recipe, err := decodeRecipe(data)
	if err != nil {
		return nil, err
	}
	recipe.Slug = slug
	return recipe, nil
}

func decodeRecipe(data []byte) (*model.Recipe, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: not a JSON object", ErrInvalidDocument)
	}

	var recipe model.Recipe
	if err := json.Unmarshal(trimmed, &recipe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	recipe.Recompute()
	return &recipe, nil
}

func encodeRecipe(recipe *model.Recipe) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(recipe); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save 레시피 문서 저장 (임시 파일에 쓴 뒤 rename)
func (r *recipeRepository) Save(slug string, recipe *model.Recipe) error {
	clean := util.SanitizeSlug(slug)
	if clean == "" || clean != slug {
		return fmt.Errorf("invalid slug %q", slug)
	}

	recipe.Slug = clean
	recipe.Recompute()
	data, err := encodeRecipe(recipe)
	if err != nil {
		return fmt.Errorf("failed to encode recipe %s: %w", clean, err)
	}

	unlock, err := lockFile(r.lockPath(clean))
	if err != nil {
		return fmt.Errorf("failed to lock recipe %s: %w", clean, err)
	}
	defer unlock()

	tmp, err := os.CreateTemp(r.dir, "."+clean+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write recipe %s: %w", clean, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync recipe %s: %w", clean, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close recipe %s: %w", clean, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod recipe %s: %w", clean, err)
	}
	if err := os.Rename(tmpName, r.path(clean)); err != nil {
		return fmt.Errorf("failed to publish recipe %s: %w", clean, err)
	}

	logger.Debug("Recipe saved", map[string]interface{}{
		"slug":    clean,
		"reviews": recipe.Votes,
	})
	return nil
}

// List 전체 레시피 조회 (잘못된 문서는 건너뜀)
func (r *recipeRepository) List() ([]model.Recipe, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Recipe{}, nil
		}
		return nil, fmt.Errorf("failed to read recipe directory: %w", err)
	}

	recipes := make([]model.Recipe, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, documentExt) || strings.HasPrefix(name, ".") {
			continue
		}
		slug := strings.TrimSuffix(name, documentExt)
		if util.SanitizeSlug(slug) != slug {
			logger.Warn("Skipping recipe file with invalid name", map[string]interface{}{
				"file": name,
			})
			continue
		}

		recipe, err := r.Load(slug)
		if err != nil {
			logger.Warn("Skipping unreadable recipe document", map[string]interface{}{
				"slug":  slug,
				"error": err.Error(),
			})
			continue
		}
		recipes = append(recipes, *recipe)
	}
	return recipes, nil
}

// Delete 레시피 문서와 업로드 파일 삭제
func (r *recipeRepository) Delete(ctx context.Context, slug string) error {
	slug = util.SanitizeSlug(slug)
	if slug == "" {
		return ErrRecipeNotFound
	}

	unlock, err := lockFile(r.lockPath(slug))
	if err != nil {
		return fmt.Errorf("failed to lock recipe %s: %w", slug, err)
	}
	err = os.Remove(r.path(slug))
	unlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrRecipeNotFound
		}
		return fmt.Errorf("failed to delete recipe %s: %w", slug, err)
	}

	// upload cleanup is best-effort; the recipe is already gone
	if r.uploads != nil {
		if err := r.uploads.RemoveRecipeUploads(ctx, slug); err != nil {
			logger.Warn("Failed to remove recipe uploads", map[string]interface{}{
				"slug":  slug,
				"error": err.Error(),
			})
		}
	}

	logger.Info("Recipe deleted", map[string]interface{}{
		"slug": slug,
	})
	return nil
}

func (r *recipeRepository) Exists(slug string) bool {
	slug = util.SanitizeSlug(slug)
	if slug == "" {
		return false
	}
	_, err := os.Stat(r.path(slug))
	return err == nil
}

// Create 새 레시피 저장, 제목으로 고유 slug 생성.
// The free-slug check and the write are separate steps, so two concurrent
// creates with the same title can race for the same slug.
func (r *recipeRepository) Create(recipe *model.Recipe) (string, error) {
	base := util.Slugify(recipe.Title)
	for n := 1; n <= maxSlugAttempts; n++ {
		slug := base
		if n > 1 {
			slug = fmt.Sprintf("%s-%d", base, n)
		}
		if r.Exists(slug) {
			continue
		}
		if err := r.Save(slug, recipe); err != nil {
			return "", err
		}
		logger.Info("Recipe created", map[string]interface{}{
			"slug": slug,
		})
		return slug, nil
	}
	return "", fmt.Errorf("%w: %s", ErrSlugExhausted, base)
}
