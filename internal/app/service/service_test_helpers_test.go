package service

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/ikkim/recipe-box/internal/app/repository"
	"github.com/ikkim/recipe-box/internal/storage"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

// fakePhotoStorage records puts in memory
type fakePhotoStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	removed []string
	putErr  error
}

func newFakePhotoStorage() *fakePhotoStorage {
	return &fakePhotoStorage{objects: map[string][]byte{}}
}

func (f *fakePhotoStorage) Put(_ context.Context, slug, filename, _ string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return "", f.putErr
	}
	f.objects[slug+"/"+filename] = bytes.Clone(data)
	return "/uploads/recipes/" + slug + "/" + filename, nil
}

func (f *fakePhotoStorage) Delete(_ context.Context, slug, filename string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, slug+"/"+filename)
	return nil
}

func (f *fakePhotoStorage) RemoveRecipeUploads(_ context.Context, slug string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, slug)
	return nil
}

var _ storage.PhotoStorage = (*fakePhotoStorage)(nil)

func setupRecipeRepo(t *testing.T, photos storage.PhotoStorage) repository.RecipeRepository {
	repo, err := repository.NewRecipeRepository(t.TempDir(), photos)
	require.NoError(t, err)
	return repo
}

func pancakeInput() RecipeInput {
	return RecipeInput{
		Title:                "Pancakes",
		Description:          "Fluffy and quick",
		Image:                "https://example.com/pancakes.jpg",
		Tags:                 "Breakfast, Sweet",
		IngredientNames:      []string{"flour", "", "milk"},
		IngredientQuantities: []string{"200", "1", "300"},
		IngredientUnits:      []string{"g", "", "ml"},
		Steps:                []string{"Whisk everything", "   ", "Fry in butter"},
	}
}
