// Package localstore is an embedded, single-process content-addressed blob
// cache backed by bbolt. It is never the system of record — the
// authoritative state is always the in-memory graph, rebuildable from a
// snapshot file. dkgctl build uses it to keep each encoded base-graph
// snapshot under the netlist file's content hash, so an unchanged netlist
// is not normalized again.
package localstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketBlobs = []byte("blobs")

// ErrNotFound is returned by Get when hash has no cached entry.
var ErrNotFound = errors.New("localstore: blob not found")

// BlobStore is a bbolt-backed cache keyed by content hash (node/edge/
// super-node/super-edge ids are themselves content-addressed, so the
// entity id doubles as the cache key).
type BlobStore struct {
	db *bolt.DB
}

// Open opens (creating if absent) the bbolt database at path.
func Open(path string) (*BlobStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("localstore: create directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("localstore: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketBlobs)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("localstore: init schema: %w", err)
	}

	return &BlobStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *BlobStore) Close() error {
	return s.db.Close()
}

// Put stores value under hash, overwriting any prior entry.
func (s *BlobStore) Put(hash string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBlobs).Put([]byte(hash), value)
	})
}

// Get returns the blob stored under hash, or ErrNotFound if absent.
func (s *BlobStore) Get(hash string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketBlobs).Get([]byte(hash))
		if v == nil {
			return ErrNotFound
		}
		out = append(out, v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Has reports whether hash has a cached entry, without copying the value.
func (s *BlobStore) Has(hash string) bool {
	found := false
	s.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(bucketBlobs).Get([]byte(hash)) != nil
		return nil
	})
	return found
}

// Delete removes the entry for hash, if any.
func (s *BlobStore) Delete(hash string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBlobs).Delete([]byte(hash))
	})
}

// Count returns the number of cached blobs.
func (s *BlobStore) Count() (int, error) {
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		stats := tx.Bucket(bucketBlobs).Stats()
		n = stats.KeyN
		return nil
	})
	return n, err
}
