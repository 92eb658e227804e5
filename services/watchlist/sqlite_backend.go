package watchlist

import (
	"fmt"

	"cinecontext/internal/database"
)

// SQLiteBackend keeps the set in the local_storage table.
type SQLiteBackend struct {
	repo *database.LocalStorageRepository
}

func NewSQLiteBackend(repo *database.LocalStorageRepository) *SQLiteBackend {
	return &SQLiteBackend{repo: repo}
}

func (b *SQLiteBackend) Load() ([]string, error) {
	value, ok, err := b.repo.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}
	if !ok {
		return []string{}, nil
	}
	return decodeKeys([]byte(value))
}

func (b *SQLiteBackend) Save(keys []string) error {
	data, err := encodeKeys(keys)
	if err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}
	if err := b.repo.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("write watchlist: %w", err)
	}
	return nil
}
