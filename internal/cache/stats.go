package cache

// Stats is a snapshot of the cache's operation counters.
//
// The fields mutate only under the cache mutex; Stats() copies them under the
// same lock, so a snapshot is internally consistent.
//
//   - Hits:        Get calls that returned a live value
//   - Misses:      Get calls that found no live entry for the key
//   - Expirations: expired entries unlinked during lookups
//   - Resizes:     doubling steps the bucket array has gone through
type Stats struct {
	Hits        uint64
	Misses      uint64
	Expirations uint64
	Resizes     uint64
}
