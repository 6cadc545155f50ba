// Package cache implements a single-process, in-memory key–value cache
// with per-entry TTL, stored in a resizable hash table with chained buckets.
//
// Goals for this package:
//   - Make the core data structure explicit (bucket array + singly linked chains)
//   - Amortized O(1) Set/Get/Delete via hashing, with doubling growth once
//     the load factor crosses 0.7
//   - Be concurrency-safe (one exclusive mutex) with correctness as the primary goal
//   - Support per-entry TTL with lazy expiration only: expired entries are
//     unlinked when a lookup encounters them, never by a background sweep
package cache
