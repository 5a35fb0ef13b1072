package refs

import (
	"fmt"
	"strings"

	"github.com/cuemby/hutch/pkg/types"
)

// Refs is a mutable mapping from hierarchical names to hashes. Names are
// non-empty strings of /-separated segments; at most one hash is bound
// per name.
type Refs interface {
	// Set creates or overwrites the binding for name.
	Set(name string, hash types.Hash) error

	// Get returns the bound hash, or ok=false if the name is unbound.
	Get(name string) (types.Hash, bool, error)

	// Delete removes the binding. Deleting an absent name is a no-op.
	Delete(name string) error

	// List returns every bound name starting with prefix, sorted
	// ascending. The empty prefix matches all refs.
	List(prefix string) ([]string, error)
}

// ValidateName checks that a ref name is non-empty and that none of its
// /-separated segments are empty. Segments "." and ".." are rejected so
// the filesystem backend cannot be walked out of its base directory.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", types.ErrInvalidRefName)
	}
	for _, segment := range strings.Split(name, "/") {
		if segment == "" {
			return fmt.Errorf("%w: %q has an empty segment", types.ErrInvalidRefName, name)
		}
		if segment == "." || segment == ".." {
			return fmt.Errorf("%w: %q has a relative segment", types.ErrInvalidRefName, name)
		}
	}
	return nil
}
