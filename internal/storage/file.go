package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// FileKV stores each key in its own file under a root directory.
// Writes go to a temp file first and are renamed into place.
type FileKV struct {
	dir string
}

// NewFileKV returns a FileKV rooted at dir. The directory is created lazily
// on the first write.
func NewFileKV(dir string) (*FileKV, error) {
	if dir == "" {
		return nil, errors.New("file storage: directory required")
	}
	return &FileKV{dir: dir}, nil
}

// Dir returns the root directory.
func (f *FileKV) Dir() string {
	return f.dir
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+".json")
}

// Get implements KV.
func (f *FileKV) Get(ctx context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("file storage: read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set implements KV.
func (f *FileKV) Set(ctx context.Context, key, value string) error {
	if err := os.MkdirAll(f.dir, 0700); err != nil {
		return fmt.Errorf("file storage: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("file storage: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("file storage: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file storage: write %s: %w", key, err)
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file storage: replace %s: %w", key, err)
	}
	return nil
}

// Delete implements KV.
func (f *FileKV) Delete(ctx context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("file storage: delete %s: %w", key, err)
	}
	return nil
}
