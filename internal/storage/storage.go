package storage

import (
	"context"
	"errors"
)

var ErrInvalidKey = errors.New("invalid storage key")

// PhotoStorage keeps review photos grouped by recipe slug
type PhotoStorage interface {
	// Put stores data as <slug>/<filename> and returns the public URL
	Put(ctx context.Context, slug, filename, contentType string, data []byte) (string, error)
	// Delete removes one stored photo; a missing photo is not an error
	Delete(ctx context.Context, slug, filename string) error
	// RemoveRecipeUploads deletes everything stored under slug
	RemoveRecipeUploads(ctx context.Context, slug string) error
}

func validSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}
