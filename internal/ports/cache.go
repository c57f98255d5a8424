package ports

// Cache stores raw provider responses keyed by source and query.
// Entries expire after an adapter-defined TTL; expired entries read as misses.
// Concurrent reads are safe; writes are serialized by the adapter.
type Cache interface {
	// Get returns the cached payload for (source, key). ok is false on a
	// miss or when the entry has expired.
	Get(source, key string) (data []byte, ok bool, err error)

	// Put stores payload for (source, key), replacing any prior entry.
	Put(source, key string, data []byte) error

	// Wipe removes every cached entry. Returns how many were removed.
	Wipe() (int, error)
}
