package predictor

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/octagon-edge/internal/config"
	"github.com/yourusername/octagon-edge/internal/metrics"
)

// CachedClient wraps HTTPClient with prediction caching. Predictions only
// change when a fighter's profile does, so the cache TTL can be generous.
type CachedClient struct {
	client *HTTPClient
	cache  *PredictionCache
	logger *logrus.Logger
}

// NewCachedClient creates a new cached prediction client
func NewCachedClient(cfg *config.PredictorConfig, logger *logrus.Logger) *CachedClient {
	return &CachedClient{
		client: NewHTTPClient(cfg, logger),
		cache: NewPredictionCache(
			time.Duration(cfg.CacheTTLSeconds)*time.Second,
			cfg.CacheMaxSize,
		),
		logger: logger,
	}
}

// Predict retrieves a prediction with caching
func (c *CachedClient) Predict(ctx context.Context, fighter1, fighter2 string) (*PredictionResult, error) {
	start := time.Now()
	key := CacheKey{Fighter1: fighter1, Fighter2: fighter2, Model: c.client.Model()}

	if cached := c.cache.Get(key); cached != nil {
		metrics.RecordPrediction(cached.Model, true, time.Since(start).Seconds())
		return cached, nil
	}

	result, err := c.client.Predict(ctx, fighter1, fighter2)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, result)
	metrics.RecordPrediction(result.Model, false, time.Since(start).Seconds())
	return result, nil
}

// BatchPredict performs batch predictions with partial caching
func (c *CachedClient) BatchPredict(ctx context.Context, requests []MatchupRequest) ([]*PredictionResult, error) {
	results := make([]*PredictionResult, len(requests))
	uncachedRequests := make([]MatchupRequest, 0)
	uncachedIndices := make([]int, 0)

	for i, req := range requests {
		key := CacheKey{Fighter1: req.Fighter1, Fighter2: req.Fighter2, Model: c.client.Model()}
		if cached := c.cache.Get(key); cached != nil {
			results[i] = cached
		} else {
			uncachedRequests = append(uncachedRequests, req)
			uncachedIndices = append(uncachedIndices, i)
		}
	}

	if len(uncachedRequests) > 0 {
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{
				"total":    len(requests),
				"cached":   len(requests) - len(uncachedRequests),
				"uncached": len(uncachedRequests),
			}).Debug("Batch prediction with partial cache")
		}

		start := time.Now()
		uncachedResults, err := c.client.BatchPredict(ctx, uncachedRequests)
		if err != nil {
			return nil, err
		}
		perRequest := time.Since(start).Seconds() / float64(len(uncachedRequests))

		for i, result := range uncachedResults {
			req := uncachedRequests[i]
			key := CacheKey{Fighter1: req.Fighter1, Fighter2: req.Fighter2, Model: c.client.Model()}
			c.cache.Set(key, result)
			results[uncachedIndices[i]] = result
			metrics.RecordPrediction(result.Model, false, perRequest)
		}
	}

	return results, nil
}

// InvalidateFighter drops cached predictions for a fighter after a refresh
func (c *CachedClient) InvalidateFighter(name string) {
	c.cache.InvalidateFighter(name)
}

// ClearCache clears all cached predictions
func (c *CachedClient) ClearCache() {
	c.cache.Clear()
}

// GetCacheStats returns cache statistics
func (c *CachedClient) GetCacheStats() (hits, misses uint64, hitRatio float64) {
	return c.cache.Stats()
}

// HealthCheck checks prediction service health
func (c *CachedClient) HealthCheck(ctx context.Context) error {
	return c.client.HealthCheck(ctx)
}
