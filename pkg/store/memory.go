package store

import (
	"sync"

	"github.com/cuemby/hutch/pkg/codec"
	"github.com/cuemby/hutch/pkg/types"
)

// MemoryStore implements Store with an in-process map. It keeps the
// canonical bytes rather than the live value so callers cannot mutate
// stored state through a retained reference.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[types.Hash][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[types.Hash][]byte),
	}
}

func (s *MemoryStore) Put(value types.Value) (types.Hash, error) {
	hash, data, err := codec.HashOf(value)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[hash]; !ok {
		s.objects[hash] = data
	}
	return hash, nil
}

func (s *MemoryStore) Get(hash types.Hash) (types.Value, bool, error) {
	s.mu.RLock()
	data, ok := s.objects[hash]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	value, err := codec.Decode(data)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Len returns the number of stored objects.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
