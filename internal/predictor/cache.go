package predictor

import (
	"fmt"
	"strings"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/octagon-edge/internal/metrics"
)

// CacheKey uniquely identifies a cached prediction. Fighter names are
// normalized so corner order does not split the cache.
type CacheKey struct {
	Fighter1 string
	Fighter2 string
	Model    string
}

// String returns the string representation of the cache key
func (k CacheKey) String() string {
	f1 := strings.ToLower(strings.TrimSpace(k.Fighter1))
	f2 := strings.ToLower(strings.TrimSpace(k.Fighter2))
	if f1 > f2 {
		f1, f2 = f2, f1
	}
	return fmt.Sprintf("%s|%s|%s", f1, f2, k.Model)
}

// PredictionCache provides in-memory caching for predictions
type PredictionCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewPredictionCache creates a new prediction cache
func NewPredictionCache(ttl time.Duration, maxSize int) *PredictionCache {
	return &PredictionCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached prediction, nil on miss
func (pc *PredictionCache) Get(key CacheKey) *PredictionResult {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if result, found := pc.cache.Get(key.String()); found {
		if pred, ok := result.(*PredictionResult); ok {
			pc.hitCount++
			pc.updateMetricsLocked()
			return pred
		}
	}

	pc.missCount++
	pc.updateMetricsLocked()
	return nil
}

// Set stores a prediction in cache
func (pc *PredictionCache) Set(key CacheKey, prediction *PredictionResult) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.cache.ItemCount() >= pc.maxSize {
		pc.cache.DeleteExpired()
	}

	pc.cache.Set(key.String(), prediction, pc.ttl)
}

// InvalidateFighter removes every cached prediction involving a fighter.
// Called after a profile refresh changes the fighter's inputs.
func (pc *PredictionCache) InvalidateFighter(name string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	needle := strings.ToLower(strings.TrimSpace(name))
	for k := range pc.cache.Items() {
		parts := strings.SplitN(k, "|", 3)
		if len(parts) >= 2 && (parts[0] == needle || parts[1] == needle) {
			pc.cache.Delete(k)
		}
	}
}

// Clear flushes the entire cache
func (pc *PredictionCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache.Flush()
	pc.hitCount = 0
	pc.missCount = 0
}

// Stats returns cache statistics
func (pc *PredictionCache) Stats() (hits, misses uint64, ratio float64) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	hits = pc.hitCount
	misses = pc.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (pc *PredictionCache) ItemCount() int {
	return pc.cache.ItemCount()
}

func (pc *PredictionCache) updateMetricsLocked() {
	total := pc.hitCount + pc.missCount
	if total == 0 {
		return
	}
	metrics.UpdateCacheHitRatio("predictions", float64(pc.hitCount)/float64(total))
}
