package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// Well-known keys. All values are JSON-encoded.
const (
	KeySavedSessions = "saved_sessions"  // []string of session IDs
	KeyScheduleCache = "cached_schedule" // last successful normalized load
	KeySortMode      = "plan_sort"       // saved-plan sort preference
	KeyFilterState   = "filter_state"    // selected filter criteria
	KeyNotified      = "notified"        // per-session-per-day notification flags
	KeyVisitCount    = "visit_count"     // launch counter
)

// Store is the persistence boundary: JSON-encoded values by key.
// Get reports whether the key was present; an absent key is not an error.
type Store interface {
	Get(key string, v interface{}) (bool, error)
	Set(key string, v interface{}) error
}

// FileStore persists each key as a JSON file under a data directory.
// Writes are last-write-wins with an atomic replace, so a crashed write
// never leaves a truncated document behind.
type FileStore struct {
	dataDir string
}

// NewFileStore creates a FileStore rooted at dataDir, expanding a leading
// "~/" and creating the directory if needed.
func NewFileStore(dataDir string) (*FileStore, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &FileStore{dataDir: dataDir}, nil
}

func (s *FileStore) keyPath(key string) string {
	return filepath.Join(s.dataDir, key+".json")
}

// Get reads and decodes the value stored under key. A missing file means
// the key is absent.
func (s *FileStore) Get(key string, v interface{}) (bool, error) {
	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

// Set encodes v and atomically replaces the value stored under key.
func (s *FileStore) Set(key string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	if err := atomic.WriteFile(s.keyPath(key), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// MemStore is an in-memory Store for tests. Values are round-tripped
// through JSON so encoding behavior matches the file store.
type MemStore struct {
	values map[string]json.RawMessage
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]json.RawMessage)}
}

// Get decodes the stored value into v, reporting presence.
func (s *MemStore) Get(key string, v interface{}) (bool, error) {
	raw, ok := s.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

// Set encodes v under key.
func (s *MemStore) Set(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	s.values[key] = raw
	return nil
}
