package cache

import (
	"errors"
	"sync"
	"time"
)

// Defaults applied by New when the corresponding Config field is <= 0 or nil.
const (
	DefaultInitialBuckets = 64
	DefaultMaxKeyBytes    = 256
	DefaultMaxValueBytes  = 1024
)

// loadFactorThreshold is the count/buckets ratio that triggers a doubling
// resize on the next insert. With doubling, a single resize step is always
// enough to bring the ratio back under the threshold.
const loadFactorThreshold = 0.7

// Config controls table sizing and key/value bounds.
//
// Zero-value defaults:
//   - InitialBuckets <= 0 means DefaultInitialBuckets
//   - MaxKeyBytes / MaxValueBytes <= 0 mean the reference sizing (256 / 1024)
//   - Hash == nil means DJB2
//
// Hash may be any pure function of the key's bytes. The same function places
// entries at insert time and again at resize time, so it must stay fixed for
// the lifetime of a Cache.
type Config struct {
	InitialBuckets int
	MaxKeyBytes    int
	MaxValueBytes  int
	Hash           func(string) uint64
}

var (
	ErrClosed        = errors.New("cache is closed")
	ErrKeyTooLarge   = errors.New("key exceeds maximum length")
	ErrValueTooLarge = errors.New("value exceeds maximum length")
)

// Cache is a concurrency-safe in-memory key–value cache with TTL expiration.
//
// Storage is a classic chained hash table: an array of bucket heads, each
// holding a singly linked list of entries that hashed to it. The bucket count
// only grows (by doubling), never shrinks.
//
// Concurrency model:
// a single exclusive mutex serializes every operation, including Get, because
// lookups can unlink expired entries and update counters. There is no
// reader/writer split and no background goroutine; a resize runs inside Set
// under the same lock and blocks everything for its duration.
type Cache struct {
	mu sync.Mutex

	buckets []*entry
	count   int

	maxKeyBytes   int
	maxValueBytes int
	hash          func(string) uint64

	stats  Stats
	closed bool
}

// New constructs a cache. It never returns a nil Cache.
func New(cfg Config) *Cache {
	nb := cfg.InitialBuckets
	if nb <= 0 {
		nb = DefaultInitialBuckets
	}
	mk := cfg.MaxKeyBytes
	if mk <= 0 {
		mk = DefaultMaxKeyBytes
	}
	mv := cfg.MaxValueBytes
	if mv <= 0 {
		mv = DefaultMaxValueBytes
	}
	h := cfg.Hash
	if h == nil {
		h = DJB2
	}

	return &Cache{
		buckets:       make([]*entry, nb),
		maxKeyBytes:   mk,
		maxValueBytes: mv,
		hash:          h,
	}
}

// Close drops the table and prevents further mutation. The entries become
// unreachable and are reclaimed by the garbage collector.
//
// Close is safe to call multiple times. After Close, Set and Delete return
// ErrClosed and Get reports a miss.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.buckets = nil
	c.count = 0
	return nil
}

// Set inserts a key with the given value and time-to-live.
//
// ttl semantics:
//   - the entry expires at time.Now().Add(ttl)
//   - ttl <= 0 therefore stores an entry that is already expired; the first
//     lookup that touches it will unlink it
//
// Set always prepends a fresh entry; it does not replace an existing entry
// with the same key. Repeated Sets on one key chain up, with the newest entry
// shadowing older ones during lookup (Get returns the first live match from
// the chain head). Callers that need upsert semantics should Delete first.
//
// Keys longer than MaxKeyBytes and values longer than MaxValueBytes are
// rejected with ErrKeyTooLarge / ErrValueTooLarge.
func (c *Cache) Set(key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if len(key) > c.maxKeyBytes {
		return ErrKeyTooLarge
	}
	if len(value) > c.maxValueBytes {
		return ErrValueTooLarge
	}

	// Grow before inserting so the new entry lands in the resized table.
	if float64(c.count+1)/float64(len(c.buckets)) > loadFactorThreshold {
		c.resizeLocked()
	}

	i := c.bucketIndexLocked(key)
	c.buckets[i] = &entry{
		key:       key,
		value:     value,
		expiresAt: time.Now().Add(ttl),
		next:      c.buckets[i],
	}
	c.count++
	return nil
}

// Get reads a key. It returns the value of the most recently Set, still
// unexpired entry for the key, or ("", false) on a miss.
//
// Get performs lazy expiration: every expired entry for the key that the
// chain walk encounters is unlinked on the spot, so count stays equal to the
// number of reachable entries. The walk continues past an expired entry
// because an older duplicate further down the chain may still be live.
func (c *Cache) Get(key string) (string, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return "", false
	}

	i := c.bucketIndexLocked(key)
	var prev *entry
	e := c.buckets[i]
	for e != nil {
		if e.key != key {
			prev, e = e, e.next
			continue
		}
		if now.Before(e.expiresAt) {
			c.stats.Hits++
			return e.value, true
		}
		next := e.next
		c.unlinkLocked(i, prev, e)
		c.stats.Expirations++
		e = next
	}

	c.stats.Misses++
	return "", false
}

// Delete unlinks the first entry in the key's chain that matches, expired or
// not. Deleting an absent key is a no-op, not an error.
//
// With duplicate entries for one key, a single Delete removes only the
// newest; the next-older entry becomes visible to Get again.
func (c *Cache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	i := c.bucketIndexLocked(key)
	var prev *entry
	for e := c.buckets[i]; e != nil; prev, e = e, e.next {
		if e.key == key {
			c.unlinkLocked(i, prev, e)
			return nil
		}
	}
	return nil
}

// Len returns the number of entries currently linked into the table.
//
// Note: Len includes entries that have expired but that no lookup has touched
// yet. Lazy expiration removes them the first time a Get walks past them.
// Duplicate entries for one key each count separately.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Buckets returns the current bucket count: the initial count times a power
// of two. It is 0 after Close.
func (c *Cache) Buckets() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.buckets)
}

// Keys returns the key of every linked entry, walking buckets in order and
// each chain head to tail. Duplicate-key entries appear once each.
//
// This is a debug/teaching helper used by the demo and the tests.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, 0, c.count)
	for _, e := range c.buckets {
		for ; e != nil; e = e.next {
			out = append(out, e.key)
		}
	}
	return out
}

// Stats returns a snapshot of the operation counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
