package storage

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend stores each key in its own file under a directory.
type FileBackend struct {
	dir string
	ext string
}

// NewFileBackend creates a backend writing "<dir>/<encoded key><ext>".
func NewFileBackend(dir, ext string) *FileBackend {
	return &FileBackend{dir: dir, ext: ext}
}

// Path returns the file holding key. Names are lower-case hex so keys differing
// only in case stay apart on case-insensitive filesystems.
func (backend *FileBackend) Path(key string) string {
	return filepath.Join(backend.dir, hex.EncodeToString([]byte(key))+backend.ext)
}

func (backend *FileBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	rawData, err := os.ReadFile(backend.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read preferences file: %w", err)
	}
	return rawData, true, nil
}

func (backend *FileBackend) Put(_ context.Context, key string, payload []byte) error {
	if err := os.MkdirAll(backend.dir, 0o755); err != nil {
		return fmt.Errorf("create preferences directory: %w", err)
	}

	path := backend.Path(key)
	temp, err := os.CreateTemp(backend.dir, ".prefs-*")
	if err != nil {
		return fmt.Errorf("create temp preferences file: %w", err)
	}
	tempPath := temp.Name()
	if _, err := temp.Write(payload); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("write preferences file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("close preferences file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("replace preferences file: %w", err)
	}
	return nil
}

func (backend *FileBackend) Delete(_ context.Context, key string) error {
	if err := os.Remove(backend.Path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove preferences file: %w", err)
	}
	return nil
}
