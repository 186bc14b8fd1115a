package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mmcdole/popcorn/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketLists = []byte("lists")
)

// WatchedKey is the slot holding the watched list
const WatchedKey = "watched"

// Store is a durable key-value store for JSON-encoded lists, backed by BoltDB.
type Store struct {
	db     *bolt.DB
	logger *slog.Logger
	mu     sync.RWMutex // Protects memory cache

	// In-memory cache of raw values (promoted on access)
	cache map[string][]byte
}

// Open opens (or creates) the database at path.
// An empty path yields a memory-only store with no persistence.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return &Store{logger: logger, cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketLists)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, logger: logger, cache: make(map[string][]byte)}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// get returns the raw bytes stored under key
func (s *Store) get(key string) ([]byte, bool) {
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return data, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketLists)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return nil, false
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return data, true
}

// put writes raw bytes under key. Every call is its own transaction.
func (s *Store) put(key string, data []byte) error {
	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketLists).Put([]byte(key), data)
		})
		if err != nil {
			return fmt.Errorf("failed to write %q: %w", key, err)
		}
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()
	return nil
}

// Delete removes a slot entirely
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLists).Delete([]byte(key))
	})
}

// Load reads the list stored under key.
// A missing or undecodable value yields def; corruption is never surfaced.
func Load[T any](s *Store, key string, def []T) []T {
	data, ok := s.get(key)
	if !ok {
		return def
	}

	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		s.logger.Debug("ignoring unreadable stored list", "key", key, "error", err)
		return def
	}
	if out == nil {
		return def
	}
	return out
}

// Save serializes value and writes it under key immediately
func Save[T any](s *Store, key string, value []T) error {
	if value == nil {
		value = []T{}
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return s.put(key, data)
}

// LoadWatched implements domain.WatchlistStore
func (s *Store) LoadWatched() []domain.WatchedEntry {
	return Load(s, WatchedKey, []domain.WatchedEntry{})
}

// SaveWatched implements domain.WatchlistStore
func (s *Store) SaveWatched(entries []domain.WatchedEntry) error {
	return Save(s, WatchedKey, entries)
}
