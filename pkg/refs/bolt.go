package refs

import (
	"bytes"
	"fmt"

	"github.com/cuemby/hutch/pkg/types"
	bolt "go.etcd.io/bbolt"
)

var bucketRefs = []byte("refs")

// BoltRefs implements Refs on a BoltDB database. Bolt keeps bucket keys
// in byte order, so prefix listing is a cursor scan with no sort step.
type BoltRefs struct {
	db *bolt.DB
}

// NewBoltRefs creates a bolt-backed ref mapping on an open database,
// creating its bucket if needed.
func NewBoltRefs(db *bolt.DB) (*BoltRefs, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRefs)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create refs bucket: %w", err)
	}
	return &BoltRefs{db: db}, nil
}

func (r *BoltRefs) Set(name string, hash types.Hash) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	err := r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRefs).Put([]byte(name), []byte(hash))
	})
	if err != nil {
		return fmt.Errorf("failed to write ref %q: %w", name, err)
	}
	return nil
}

func (r *BoltRefs) Get(name string) (types.Hash, bool, error) {
	var hash types.Hash
	var found bool
	err := r.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketRefs).Get([]byte(name)); v != nil {
			hash = types.Hash(v)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read ref %q: %w", name, err)
	}
	return hash, found, nil
}

func (r *BoltRefs) Delete(name string) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRefs).Delete([]byte(name))
	})
	if err != nil {
		return fmt.Errorf("failed to delete ref %q: %w", name, err)
	}
	return nil
}

func (r *BoltRefs) List(prefix string) ([]string, error) {
	var names []string
	err := r.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketRefs).Cursor()
		p := []byte(prefix)
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			names = append(names, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list refs: %w", err)
	}
	return names, nil
}
