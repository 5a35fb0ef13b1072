package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cuemby/hutch/pkg/types"
	"github.com/stretchr/testify/assert"
	bolt "go.etcd.io/bbolt"
)

// openBackends builds one of each Store implementation against temp state.
func openBackends(t *testing.T) map[string]Store {
	t.Helper()

	fileStore, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	db, err := bolt.Open(filepath.Join(t.TempDir(), "hutch.db"), 0600, nil)
	if err != nil {
		t.Fatalf("bolt.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	boltStore, err := NewBoltStore(db)
	if err != nil {
		t.Fatalf("NewBoltStore() error = %v", err)
	}

	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fileStore,
		"bolt":   boltStore,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			value := map[string]any{"name": "users", "columns": []any{"id", "name"}}

			hash, err := s.Put(value)
			assert.NoError(t, err)
			assert.Len(t, string(hash), 64)

			got, ok, err := s.Get(hash)
			assert.NoError(t, err)
			assert.True(t, ok)

			m := got.(map[string]any)
			assert.Equal(t, "users", m["name"])
			assert.Equal(t, "id", m["columns"].([]any)[0])
		})
	}
}

func TestStorePutDeterministic(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			value := map[string]any{"val": 1}

			h1, err := s.Put(value)
			assert.NoError(t, err)
			h2, err := s.Put(value)
			assert.NoError(t, err)
			assert.Equal(t, h1, h2)

			h3, err := s.Put(map[string]any{"val": 2})
			assert.NoError(t, err)
			assert.NotEqual(t, h1, h3)
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get("0000000000000000000000000000000000000000000000000000000000000000")
			assert.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStoreRejectsUnserializable(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Put(make(chan int))
			assert.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrSerialization))
		})
	}
}

func TestFileStoreLayout(t *testing.T) {
	baseDir := t.TempDir()
	s, err := NewFileStore(baseDir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	hash, err := s.Put(map[string]any{"val": 1})
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	// Object lives in a two-character fan-out directory
	h := string(hash)
	path := filepath.Join(baseDir, "objects", h[:2], h[2:])
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("object file missing at %s: %v", path, err)
	}
	if string(data) != `{"val":1}` {
		t.Errorf("object bytes = %s, want canonical serialization", data)
	}
}

func TestFileStoreIdempotentWrite(t *testing.T) {
	baseDir := t.TempDir()
	s, err := NewFileStore(baseDir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	hash, err := s.Put(map[string]any{"val": 1})
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	h := string(hash)
	path := filepath.Join(baseDir, "objects", h[:2], h[2:])
	before, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}

	if _, err := s.Put(map[string]any{"val": 1}); err != nil {
		t.Fatalf("second Put() error = %v", err)
	}

	after, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Error("present object was rewritten")
	}
}

// Putting a new version must leave the old object reachable by its hash.
func TestStoreHistoryPreserved(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			h1, err := s.Put(map[string]any{"val": 1})
			assert.NoError(t, err)
			h2, err := s.Put(map[string]any{"val": 2})
			assert.NoError(t, err)

			v1, ok, err := s.Get(h1)
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, float64(1), v1.(map[string]any)["val"])

			v2, ok, err := s.Get(h2)
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, float64(2), v2.(map[string]any)["val"])
		})
	}
}
