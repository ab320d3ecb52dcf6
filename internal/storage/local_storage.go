package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorage writes photos below a directory that the router serves
// under URLPrefix.
type LocalStorage struct {
	dir       string
	urlPrefix string
}

func NewLocalStorage(dir, urlPrefix string) *LocalStorage {
	return &LocalStorage{
		dir:       dir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
	}
}

func (s *LocalStorage) Put(_ context.Context, slug, filename, _ string, data []byte) (string, error) {
	if !validSegment(slug) || !validSegment(filename) {
		return "", ErrInvalidKey
	}

	target := filepath.Join(s.dir, slug)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	tmp, err := os.CreateTemp(target, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp upload: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close upload: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("failed to chmod upload: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(target, filename)); err != nil {
		return "", fmt.Errorf("failed to move upload into place: %w", err)
	}

	return path.Join(s.urlPrefix, slug, filename), nil
}

func (s *LocalStorage) Delete(_ context.Context, slug, filename string) error {
	if !validSegment(slug) || !validSegment(filename) {
		return ErrInvalidKey
	}
	if err := os.Remove(filepath.Join(s.dir, slug, filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}

func (s *LocalStorage) RemoveRecipeUploads(_ context.Context, slug string) error {
	if !validSegment(slug) {
		return ErrInvalidKey
	}
	return os.RemoveAll(filepath.Join(s.dir, slug))
}
