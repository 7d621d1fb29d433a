package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"bisnispintar/internal/model"
)

type fileItemRepo struct {
	slot string
	path string
}

// NewFileItemRepository stores the snapshot at dir/<slot>.json. The directory
// is created on first save.
func NewFileItemRepository(dir, slot string) ItemRepository {
	return &fileItemRepo{slot: slot, path: filepath.Join(dir, slot+".json")}
}

func (r *fileItemRepo) Load(_ context.Context) ([]model.BusinessItem, error) {
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.BusinessItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file repo: read %s: %w", r.path, err)
	}
	return decodeSnapshot(r.slot, raw), nil
}

// Save writes to a temp file in the same directory and renames it over the
// snapshot, so a crash mid-write leaves the previous snapshot intact.
func (r *fileItemRepo) Save(_ context.Context, items []model.BusinessItem) error {
	data, err := encodeSnapshot(items)
	if err != nil {
		return fmt.Errorf("file repo: encode: %w", err)
	}
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("file repo: create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, r.slot+".*.tmp")
	if err != nil {
		return fmt.Errorf("file repo: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("file repo: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file repo: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("file repo: rename: %w", err)
	}
	return nil
}

func (r *fileItemRepo) Ping(_ context.Context) error {
	info, err := os.Stat(filepath.Dir(r.path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil // created lazily on first save
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("file repo: %s is not a directory", filepath.Dir(r.path))
	}
	return nil
}

func (r *fileItemRepo) Close() error { return nil }

func (r *fileItemRepo) Driver() string { return "file" }
