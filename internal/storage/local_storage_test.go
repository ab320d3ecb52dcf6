package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_PutAndRemove(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir, "/uploads/recipes/")

	url, err := s.Put(context.Background(), "pancakes", "rev_abc.jpg", "image/jpeg", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/recipes/pancakes/rev_abc.jpg", url)

	content, err := os.ReadFile(filepath.Join(dir, "pancakes", "rev_abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))

	leftovers, err := filepath.Glob(filepath.Join(dir, "pancakes", ".upload-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)

	require.NoError(t, s.RemoveRecipeUploads(context.Background(), "pancakes"))
	_, err = os.Stat(filepath.Join(dir, "pancakes"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_RemoveMissingDirectory(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "/uploads/recipes")
	assert.NoError(t, s.RemoveRecipeUploads(context.Background(), "never-uploaded"))
}

func TestLocalStorage_RejectsUnsafeKeys(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "/uploads/recipes")

	tests := []struct {
		name     string
		slug     string
		filename string
	}{
		{name: "Traversal slug", slug: "..", filename: "a.jpg"},
		{name: "Nested slug", slug: "a/b", filename: "a.jpg"},
		{name: "Traversal filename", slug: "ok", filename: "../a.jpg"},
		{name: "Empty slug", slug: "", filename: "a.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Put(context.Background(), tt.slug, tt.filename, "image/png", []byte("x"))
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
	assert.ErrorIs(t, s.RemoveRecipeUploads(context.Background(), ".."), ErrInvalidKey)
}

func TestLocalStorage_Delete(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir, "/uploads/recipes")

	_, err := s.Put(context.Background(), "pancakes", "rev_abc.png", "image/png", []byte("data"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), "pancakes", "rev_abc.png"))
	_, err = os.Stat(filepath.Join(dir, "pancakes", "rev_abc.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Delete(context.Background(), "pancakes", "rev_abc.png"), "already gone")
	assert.ErrorIs(t, s.Delete(context.Background(), "pancakes", ".."), ErrInvalidKey)
}
