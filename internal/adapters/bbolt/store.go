// Package bbolt implements the ports.Cache interface using bbolt (embedded B+ tree).
// A top-level "cache" bucket holds one sub-bucket per source ("suggest",
// "videos"); keys are query fingerprints and values are timestamped payloads.
// Writes are transactional, so a crash mid-write cannot corrupt earlier entries.
package bbolt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket keys
var bucketCache = []byte("cache")

// DefaultTTL is how long an entry stays fresh when none is configured.
const DefaultTTL = 6 * time.Hour

// Store implements ports.Cache backed by bbolt.
type Store struct {
	db  *bolt.DB
	ttl time.Duration
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the entry lifetime. Zero or negative keeps DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore opens (or creates) a bbolt database at path, creating its directory.
func NewStore(path string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	s := &Store{db: db, ttl: DefaultTTL, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// TTL returns the configured entry lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Get returns the payload cached for (source, key). Expired entries are misses.
func (s *Store) Get(source, key string) ([]byte, bool, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := sourceBucket(tx, source)
		if b == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := b.Get([]byte(key)); v != nil {
			raw = make([]byte, len(v))
			copy(raw, v)
		}
		return nil
	})
	if err != nil || raw == nil {
		return nil, false, err
	}

	storedAt, data, err := decodeEntry(raw)
	if err != nil {
		return nil, false, fmt.Errorf("cache %s/%s: %w", source, key, err)
	}
	if s.expired(storedAt) {
		return nil, false, nil
	}
	return data, true, nil
}

// Put stores data for (source, key), replacing any previous entry.
func (s *Store) Put(source, key string, data []byte) error {
	entry := encodeEntry(s.now(), data)
	return s.db.Update(func(tx *bolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists(bucketCache)
		if err != nil {
			return err
		}
		b, err := root.CreateBucketIfNotExists([]byte(source))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), entry)
	})
}

// Wipe removes every cached entry and returns how many there were.
// Wiping an empty cache is not an error.
func (s *Store) Wipe() (int, error) {
	n := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(bucketCache)
		if root == nil {
			return nil
		}
		n = countEntries(root)
		if err := tx.DeleteBucket(bucketCache); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		return nil
	})
	return n, err
}

// Prune deletes expired entries and returns how many were removed.
func (s *Store) Prune() (int, error) {
	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(bucketCache)
		if root == nil {
			return nil
		}
		return root.ForEachBucket(func(name []byte) error {
			b := root.Bucket(name)
			var stale [][]byte
			err := b.ForEach(func(k, v []byte) error {
				storedAt, _, err := decodeEntry(v)
				if err != nil || s.expired(storedAt) {
					stale = append(stale, append([]byte(nil), k...))
				}
				return nil
			})
			if err != nil {
				return err
			}
			for _, k := range stale {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
			removed += len(stale)
			return nil
		})
	})
	return removed, err
}

// Stats returns the number of entries per source, expired ones included.
func (s *Store) Stats() (map[string]int, error) {
	stats := make(map[string]int)
	err := s.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(bucketCache)
		if root == nil {
			return nil
		}
		return root.ForEachBucket(func(name []byte) error {
			stats[string(name)] = root.Bucket(name).Stats().KeyN
			return nil
		})
	})
	return stats, err
}

func (s *Store) expired(storedAt time.Time) bool {
	return s.now().Sub(storedAt) >= s.ttl
}

func sourceBucket(tx *bolt.Tx, source string) *bolt.Bucket {
	root := tx.Bucket(bucketCache)
	if root == nil {
		return nil
	}
	return root.Bucket([]byte(source))
}

func countEntries(root *bolt.Bucket) int {
	n := 0
	root.ForEachBucket(func(name []byte) error {
		n += root.Bucket(name).Stats().KeyN
		return nil
	})
	return n
}
