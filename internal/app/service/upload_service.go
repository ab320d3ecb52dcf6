package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/ikkim/recipe-box/internal/storage"
	"github.com/ikkim/recipe-box/pkg/logger"
)

// MaxPhotoSize is the largest review photo accepted (5 MiB)
const MaxPhotoSize = 5 << 20

var (
	ErrEmptyUpload      = errors.New("uploaded file is empty")
	ErrUploadTooLarge   = errors.New("uploaded file is too large")
	ErrUnsupportedImage = errors.New("unsupported image type")
)

// photoExtensions maps sniffed content types to the stored extension
var photoExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

type PhotoUploader interface {
	// SaveReviewPhoto validates and stores a review photo and returns its URL.
	// declaredSize is the client reported size; the body is measured too.
	SaveReviewPhoto(ctx context.Context, slug string, declaredSize int64, r io.Reader) (string, error)
	// RemoveReviewPhoto deletes a photo previously returned by SaveReviewPhoto
	RemoveReviewPhoto(ctx context.Context, slug, photoURL string) error
}

type uploadService struct {
	storage storage.PhotoStorage
	maxSize int64
}

func NewUploadService(photoStorage storage.PhotoStorage) PhotoUploader {
	return &uploadService{storage: photoStorage, maxSize: MaxPhotoSize}
}

func (s *uploadService) SaveReviewPhoto(ctx context.Context, slug string, declaredSize int64, r io.Reader) (string, error) {
	if declaredSize == 0 {
		return "", ErrEmptyUpload
	}
	if declaredSize > s.maxSize {
		return "", ErrUploadTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmptyUpload
	}
	if int64(len(data)) > s.maxSize {
		return "", ErrUploadTooLarge
	}

	// the client supplied content type and file name are ignored
	detected := mimetype.Detect(data)
	ext, ok := photoExtensions[detected.String()]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, detected.String())
	}

	filename := photoFileName(ext)
	url, err := s.storage.Put(ctx, slug, filename, detected.String(), data)
	if err != nil {
		return "", err
	}

	logger.Info("Review photo stored", map[string]interface{}{
		"slug":         slug,
		"file":         filename,
		"content_type": detected.String(),
		"bytes":        len(data),
	})
	return url, nil
}

func (s *uploadService) RemoveReviewPhoto(ctx context.Context, slug, photoURL string) error {
	return s.storage.Delete(ctx, slug, path.Base(photoURL))
}

// photoFileName is rev_<utc timestamp>_<random>.<ext>
func photoFileName(ext string) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	return fmt.Sprintf("rev_%s_%s.%s", time.Now().UTC().Format("20060102T150405"), random, ext)
}

// uploadRejectionReason labels an upload error for metrics
func uploadRejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrEmptyUpload):
		return "empty"
	case errors.Is(err, ErrUploadTooLarge):
		return "too_large"
	case errors.Is(err, ErrUnsupportedImage):
		return "unsupported_type"
	default:
		return "storage"
	}
}
