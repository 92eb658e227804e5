package watchlist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileBackend keeps the set as a JSON file named after StorageKey.
type FileBackend struct {
	fs   afero.Fs
	path string
}

func NewFileBackend(fs afero.Fs, dir string) *FileBackend {
	return &FileBackend{fs: fs, path: filepath.Join(dir, StorageKey+".json")}
}

func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) Load() ([]string, error) {
	data, err := afero.ReadFile(b.fs, b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read watchlist: %w", err)
	}
	return decodeKeys(data)
}

// Save writes to a temp file in the same directory and renames it over the
// old one.
func (b *FileBackend) Save(keys []string) error {
	data, err := encodeKeys(keys)
	if err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}
	dir := filepath.Dir(b.path)
	if err := b.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create watchlist dir: %w", err)
	}

	tmp, err := afero.TempFile(b.fs, dir, ".watchlist-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		b.fs.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		b.fs.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := b.fs.Rename(tmpName, b.path); err != nil {
		b.fs.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
