package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ikkim/recipe-box/internal/app/model"
)

// TargetRepository persists the blackbox exporter file_sd document
type TargetRepository interface {
	Load() ([]model.TargetFileEntry, error)
	Save(entries []model.TargetFileEntry) error
}

type targetRepository struct {
	path string
}

func NewTargetRepository(path string) TargetRepository {
	return &targetRepository{path: path}
}

// Load returns an empty list when the file does not exist yet
func (r *targetRepository) Load() ([]model.TargetFileEntry, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.TargetFileEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read targets file: %w", err)
	}

	var entries []model.TargetFileEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse targets file: %w", err)
	}
	if entries == nil {
		entries = []model.TargetFileEntry{}
	}
	return entries, nil
}

func (r *targetRepository) Save(entries []model.TargetFileEntry) error {
	if entries == nil {
		entries = []model.TargetFileEntry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode targets: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create targets directory: %w", err)
	}

	unlock, err := lockFile(r.path + ".lock")
	if err != nil {
		return fmt.Errorf("failed to lock targets file: %w", err)
	}
	defer unlock()

	tmp, err := os.CreateTemp(dir, ".targets-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write targets: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close targets file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to chmod targets file: %w", err)
	}
	return os.Rename(tmp.Name(), r.path)
}
