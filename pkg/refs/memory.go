package refs

import (
	"sort"
	"strings"
	"sync"

	"github.com/cuemby/hutch/pkg/types"
)

// MemoryRefs implements Refs with an in-process map.
type MemoryRefs struct {
	mu    sync.RWMutex
	names map[string]types.Hash
}

// NewMemoryRefs creates an empty in-memory ref mapping.
func NewMemoryRefs() *MemoryRefs {
	return &MemoryRefs{
		names: make(map[string]types.Hash),
	}
}

func (r *MemoryRefs) Set(name string, hash types.Hash) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[name] = hash
	return nil
}

func (r *MemoryRefs) Get(name string) (types.Hash, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hash, ok := r.names[name]
	return hash, ok, nil
}

func (r *MemoryRefs) Delete(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.names, name)
	return nil
}

func (r *MemoryRefs) List(prefix string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name := range r.names {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
