package watchlist

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/goccy/go-json"

	"cinecontext/models"
)

//go:generate mockgen -destination=mock_backend_test.go -package=watchlist_test cinecontext/services/watchlist Backend

// StorageKey is the local-storage key the set is persisted under.
const StorageKey = "cinecontext.watchlist"

var (
	// ErrMalformed is returned by a Backend whose persisted value is not a
	// JSON array of strings.
	ErrMalformed = errors.New("watchlist: malformed persisted data")
	// ErrUnsupportedKind rejects people; only movies and shows can be saved.
	ErrUnsupportedKind = errors.New("watchlist: unsupported kind")
)

// Backend persists the full key set. Load returns an empty slice and no
// error when nothing was saved yet.
type Backend interface {
	Load() ([]string, error)
	Save(keys []string) error
}

// Store is the process-wide watchlist: an insertion-ordered set of
// "{kind}-{id}" keys, written through to its backend on every change.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	keys    []string
	index   map[string]struct{}
	log     *slog.Logger
}

// NewStore loads the persisted set once. Malformed data is logged and
// replaced by an empty set; any other load failure is returned.
func NewStore(backend Backend, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		backend: backend,
		index:   make(map[string]struct{}),
		log:     logger.With("component", "watchlist"),
	}

	keys, err := backend.Load()
	switch {
	case errors.Is(err, ErrMalformed):
		s.log.Warn("discarding malformed watchlist", "error", err)
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("load watchlist: %w", err)
	}

	for _, key := range keys {
		if _, _, err := ParseKey(key); err != nil {
			s.log.Warn("skipping invalid watchlist key", "key", key, "error", err)
			continue
		}
		if _, dup := s.index[key]; dup {
			continue
		}
		s.index[key] = struct{}{}
		s.keys = append(s.keys, key)
	}
	s.log.Debug("watchlist loaded", "count", len(s.keys))
	return s, nil
}

func (s *Store) IsWatchlisted(kind models.Kind, id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[models.WatchlistKey(kind, id)]
	return ok
}

// Toggle flips membership and saves the whole set before returning. It
// reports the new membership. If the save fails the flip is undone.
func (s *Store) Toggle(kind models.Kind, id int64) (bool, error) {
	if kind != models.KindMovie && kind != models.KindShow {
		return false, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
	key := models.WatchlistKey(kind, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.keys
	var next []string
	_, present := s.index[key]
	if present {
		next = make([]string, 0, len(previous))
		for _, k := range previous {
			if k != key {
				next = append(next, k)
			}
		}
	} else {
		next = make([]string, len(previous), len(previous)+1)
		copy(next, previous)
		next = append(next, key)
	}

	if err := s.backend.Save(next); err != nil {
		s.log.Error("failed to persist watchlist", "key", key, "error", err)
		return present, fmt.Errorf("save watchlist: %w", err)
	}

	s.keys = next
	if present {
		delete(s.index, key)
	} else {
		s.index[key] = struct{}{}
	}
	return !present, nil
}

// Keys returns a copy of the set in insertion order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.keys...)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// ParseKey splits a watchlist key into kind and id.
func ParseKey(key string) (models.Kind, int64, error) {
	return models.ParseWatchlistKey(key)
}

func encodeKeys(keys []string) ([]byte, error) {
	if keys == nil {
		keys = []string{}
	}
	return json.Marshal(keys)
}

func decodeKeys(data []byte) ([]string, error) {
	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return keys, nil
}
