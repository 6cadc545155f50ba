package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"chaincache/internal/cache"
)

func main() {
	// Signal-aware context so a long demo stage can be interrupted cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional .env overlay; environment variables win either way.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg := cache.Config{
		InitialBuckets: envInt("CHAINCACHE_INITIAL_BUCKETS", 0),
		MaxKeyBytes:    envInt("CHAINCACHE_MAX_KEY_BYTES", 0),
		MaxValueBytes:  envInt("CHAINCACHE_MAX_VALUE_BYTES", 0),
	}

	c := cache.New(cfg)
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("cache close: %v", err)
		}
	}()

	log.Println("chaincache demo starting")
	log.Printf("config: buckets=%d", c.Buckets())

	// -------------------------------------------------------------------
	// 1) Basic walkthrough: set, get, miss, delete
	// -------------------------------------------------------------------
	mustSet(c, "user:001", "Michael Jordan", 10*time.Second)
	mustSet(c, "user:002", "Kobe Bryant", 20*time.Second)

	if v, ok := c.Get("user:001"); ok {
		log.Printf("GET user:001 = %q", v)
	}
	if v, ok := c.Get("user:002"); ok {
		log.Printf("GET user:002 = %q", v)
	}
	if _, ok := c.Get("user:003"); !ok {
		log.Println("GET user:003: missing (never set)")
	}

	if err := c.Delete("user:001"); err != nil {
		log.Printf("DELETE user:001: %v", err)
	}
	if _, ok := c.Get("user:001"); !ok {
		log.Println("GET user:001: missing (deleted)")
	}

	// -------------------------------------------------------------------
	// 2) TTL expiration (lazy: the lookup collects the expired entry)
	// -------------------------------------------------------------------
	mustSet(c, "ttl", "short-lived", 200*time.Millisecond)

	wait := time.NewTimer(300 * time.Millisecond)
	defer wait.Stop()
	select {
	case <-ctx.Done():
		log.Println("received shutdown signal")
		return
	case <-wait.C:
	}

	if _, ok := c.Get("ttl"); !ok {
		log.Println("GET ttl: missing (expired, unlinked on this lookup)")
	}

	// -------------------------------------------------------------------
	// 3) Concurrent access, throttled by a shared rate limiter
	// -------------------------------------------------------------------
	const workers = 4
	limiter := rate.NewLimiter(rate.Every(time.Millisecond), workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if err := limiter.Wait(ctx); err != nil {
					return
				}
				key := fmt.Sprintf("stress:%03d", (w*200+i)%97)
				if err := c.Set(key, fmt.Sprintf("worker-%d-op-%d", w, i), time.Second); err != nil {
					log.Printf("SET %s: %v", key, err)
					return
				}
				if _, ok := c.Get(key); !ok {
					log.Printf("GET %s: unexpectedly missing", key)
				}
			}
		}(w)
	}
	wg.Wait()

	if ctx.Err() != nil {
		log.Println("received shutdown signal")
		return
	}

	s := c.Stats()
	log.Printf("after stress: entries=%d buckets=%d", c.Len(), c.Buckets())
	log.Printf("stats: hits=%d misses=%d expirations=%d resizes=%d",
		s.Hits, s.Misses, s.Expirations, s.Resizes)

	fmt.Println("Done.")
}

func mustSet(c *cache.Cache, key, value string, ttl time.Duration) {
	if err := c.Set(key, value, ttl); err != nil {
		log.Fatalf("SET %s: %v", key, err)
	}
	log.Printf("SET %s = %q (ttl %s)", key, value, ttl)
}

// envInt reads an integer environment variable, returning def when the
// variable is unset or malformed.
func envInt(name string, def int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", name, raw, err)
		return def
	}
	return n
}
