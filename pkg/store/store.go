package store

import (
	"github.com/cuemby/hutch/pkg/types"
)

// Store is a content-addressed object repository. Bindings are
// insertion-monotonic: once a hash maps to a value it never changes and
// never disappears for the store's lifetime. There is no delete.
type Store interface {
	// Put serializes the value, stores it under its content hash, and
	// returns the hash. Putting an already-present value is idempotent.
	// Fails with types.ErrSerialization if the value cannot be
	// canonically serialized.
	Put(value types.Value) (types.Hash, error)

	// Get returns the value bound to the hash, or ok=false if none.
	Get(hash types.Hash) (types.Value, bool, error)
}
