package persistence

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileBackend stores each key as <dir>/<key>.json.
type FileBackend struct {
	fs  afero.Fs
	dir string
}

// NewFileBackend creates dir if needed. Pass afero.NewOsFs() for real disk.
func NewFileBackend(fs afero.Fs, dir string) (*FileBackend, error) {
	if err := fs.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileBackend{fs: fs, dir: dir}, nil
}

func (f *FileBackend) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileBackend) Get(_ context.Context, key string) ([]byte, error) {
	data, err := afero.ReadFile(f.fs, f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Put writes through a temp file and renames it so a crash never leaves a
// truncated blob behind.
func (f *FileBackend) Put(_ context.Context, key string, data []byte) error {
	tmp := f.path(key) + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, data, 0o640); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := f.fs.Rename(tmp, f.path(key)); err != nil {
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

func (f *FileBackend) Close() error { return nil }
