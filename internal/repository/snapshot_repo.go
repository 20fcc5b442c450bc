// Package repository persists rate snapshots in a single local cache file.
package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"currencyapp/internal/model"
)

// ErrNotFound indicates there is no cache file yet.
var ErrNotFound = errors.New("cache entry not found")

// ErrCacheCorrupt indicates the cache file exists but cannot be used.
var ErrCacheCorrupt = errors.New("cache file is corrupt")

// SnapshotRepository defines storage operations for the cached snapshot.
type SnapshotRepository interface {
	Load() (*model.CacheEntry, error)
	Save(entry *model.CacheEntry) error
	Delete() error
}

// FileSnapshotRepository is an implementation of SnapshotRepository backed by one JSON file.
type FileSnapshotRepository struct {
	path string
}

// NewFileSnapshotRepository creates a new FileSnapshotRepository for path.
func NewFileSnapshotRepository(path string) *FileSnapshotRepository {
	return &FileSnapshotRepository{path: path}
}

// Path returns the cache file location.
func (r *FileSnapshotRepository) Path() string {
	return r.path
}

// Load reads and decodes the cache file.
// It returns ErrNotFound when the file does not exist and ErrCacheCorrupt when it
// cannot be decoded or is structurally invalid.
func (r *FileSnapshotRepository) Load() (*model.CacheEntry, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read cache file %s: %w", r.path, err)
	}

	var entry model.CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCacheCorrupt, err)
	}
	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCacheCorrupt, err)
	}

	return &entry, nil
}

// Save overwrites the cache file with entry.
func (r *FileSnapshotRepository) Save(entry *model.CacheEntry) error {
	raw, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cache dir %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(r.path, raw, 0o644); err != nil {
		return fmt.Errorf("write cache file %s: %w", r.path, err)
	}
	return nil
}

// Delete removes the cache file. A missing file is not an error.
func (r *FileSnapshotRepository) Delete() error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete cache file %s: %w", r.path, err)
	}
	return nil
}

var _ SnapshotRepository = (*FileSnapshotRepository)(nil)
