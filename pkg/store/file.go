package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cuemby/hutch/pkg/codec"
	"github.com/cuemby/hutch/pkg/types"
)

// FileStore implements Store on the filesystem. Each object lives at
// <base>/objects/<hh>/<rest>, where <hh> is the first two hex characters
// of the hash (a fan-out directory) and <rest> the remainder. File bytes
// are the value's canonical serialization.
type FileStore struct {
	baseDir string
}

// NewFileStore creates a filesystem-backed store rooted at baseDir,
// creating the objects directory if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	objectsDir := filepath.Join(baseDir, "objects")
	if err := os.MkdirAll(objectsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create objects directory: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// objectPath maps a hash to its on-disk location.
func (s *FileStore) objectPath(hash types.Hash) string {
	h := string(hash)
	return filepath.Join(s.baseDir, "objects", h[:2], h[2:])
}

func (s *FileStore) Put(value types.Value) (types.Hash, error) {
	hash, data, err := codec.HashOf(value)
	if err != nil {
		return "", err
	}

	path := s.objectPath(hash)

	// A present object is never rewritten; its content is fixed by its hash.
	if _, err := os.Stat(path); err == nil {
		return hash, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create fan-out directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write object %s: %w", hash, err)
	}
	return hash, nil
}

func (s *FileStore) Get(hash types.Hash) (types.Value, bool, error) {
	if len(hash) < 3 {
		return nil, false, nil
	}

	data, err := os.ReadFile(s.objectPath(hash))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read object %s: %w", hash, err)
	}

	value, err := codec.Decode(data)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}
