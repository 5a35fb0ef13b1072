package store

import (
	"fmt"

	"github.com/cuemby/hutch/pkg/codec"
	"github.com/cuemby/hutch/pkg/types"
	bolt "go.etcd.io/bbolt"
)

var bucketObjects = []byte("objects")

// BoltStore implements Store on a BoltDB database, keyed by hash. It
// shares the *bolt.DB with other hutch buckets (see refs.BoltRefs), so a
// whole database fits in one file.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore creates a bolt-backed store on an open database, creating
// its bucket if needed.
func NewBoltStore(db *bolt.DB) (*BoltStore, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketObjects)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create objects bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Put(value types.Value) (types.Hash, error) {
	hash, data, err := codec.HashOf(value)
	if err != nil {
		return "", err
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketObjects)
		if b.Get([]byte(hash)) != nil {
			return nil
		}
		return b.Put([]byte(hash), data)
	})
	if err != nil {
		return "", fmt.Errorf("failed to write object %s: %w", hash, err)
	}
	return hash, nil
}

func (s *BoltStore) Get(hash types.Hash) (types.Value, bool, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketObjects)
		if v := b.Get([]byte(hash)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to read object %s: %w", hash, err)
	}
	if data == nil {
		return nil, false, nil
	}

	value, err := codec.Decode(data)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}
