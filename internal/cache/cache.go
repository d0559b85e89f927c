// Package cache provides named in-memory TTL caches for read paths.
package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/yourusername/octagon-edge/internal/metrics"
)

// Store is a named TTL cache. Each store reports its own hit ratio to the
// metrics registry under its name.
type Store struct {
	name      string
	cache     *gocache.Cache
	ttl       time.Duration
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewStore creates a named cache with the given TTL and cleanup interval
func NewStore(name string, ttl, cleanupInterval time.Duration) *Store {
	return &Store{
		name:  name,
		cache: gocache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// Get retrieves a cached value. The second return is false on miss or expiry.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, found := s.cache.Get(key)
	if found {
		s.hitCount++
	} else {
		s.missCount++
	}
	s.updateMetrics()
	return value, found
}

// Set stores a value under the store's default TTL
func (s *Store) Set(key string, value interface{}) {
	s.cache.Set(key, value, s.ttl)
}

// SetWithTTL stores a value with an explicit TTL
func (s *Store) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	s.cache.Set(key, value, ttl)
}

// Delete removes a single key
func (s *Store) Delete(key string) {
	s.cache.Delete(key)
}

// Flush empties the store and resets its counters
func (s *Store) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Flush()
	s.hitCount = 0
	s.missCount = 0
}

// Stats returns hit and miss counts with the derived ratio
func (s *Store) Stats() (hits, misses uint64, ratio float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statsLocked()
}

func (s *Store) statsLocked() (hits, misses uint64, ratio float64) {
	hits = s.hitCount
	misses = s.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items currently cached
func (s *Store) ItemCount() int {
	return s.cache.ItemCount()
}

func (s *Store) updateMetrics() {
	_, _, ratio := s.statsLocked()
	metrics.UpdateCacheHitRatio(s.name, ratio)
}
