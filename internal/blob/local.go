package blob

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Local stores blobs as flat files under a single directory.
type Local struct {
	dir string
}

// NewLocal creates a local store rooted at dir. Call Init before use.
func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

// Init ensures the storage directory exists.
func (l *Local) Init() error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}
	return nil
}

func (l *Local) Put(key string, data []byte) error {
	if err := os.WriteFile(l.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write blob %s: %w", key, err)
	}
	return nil
}

func (l *Local) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(l.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", key, err)
	}
	return data, nil
}

func (l *Local) Delete(key string) error {
	err := os.Remove(l.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}

// path maps a key to a file path. Keys are flattened to their base name
// so a crafted key cannot escape the storage directory.
func (l *Local) path(key string) string {
	return filepath.Join(l.dir, filepath.Base(key))
}
