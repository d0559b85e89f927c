package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/yourusername/octagon-edge/internal/metrics"
)

// StatsSiteClient implements StatsSource for the fighter statistics site
type StatsSiteClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	enabled    bool
	logger     *log.Logger
}

// NewStatsSiteClient creates a new stats site client
func NewStatsSiteClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, enabled bool, logger *log.Logger) *StatsSiteClient {
	return &StatsSiteClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		enabled:    enabled,
		logger:     logger,
	}
}

// FetchFighterStats retrieves the raw stat block for a fighter by name.
// The site returns stats as rendered strings; no normalization happens here.
func (c *StatsSiteClient) FetchFighterStats(ctx context.Context, name string) (*RawFighterStats, error) {
	if !c.enabled {
		return nil, NewDataSourceError("stats_site", ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}

	start := time.Now()
	endpoint := fmt.Sprintf("%s/fighters?name=%s", c.baseURL, url.QueryEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewDataSourceError("stats_site", ErrCodeNetworkError, "failed to create request", err)
	}

	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError("stats_site", ErrCodeNetworkError, "failed to fetch fighter stats", err)
	}
	defer resp.Body.Close()

	metrics.RecordStatsFetch(time.Since(start).Seconds())

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, NewDataSourceError("stats_site", ErrCodeNotFound, fmt.Sprintf("fighter %q not found", name), nil)
	case http.StatusUnauthorized:
		return nil, NewDataSourceError("stats_site", ErrCodeAuthenticationFailed, "invalid API key", nil)
	case http.StatusTooManyRequests:
		return nil, NewDataSourceError("stats_site", ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	default:
		return nil, NewDataSourceError("stats_site", ErrCodeServerError, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var stats RawFighterStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, NewDataSourceError("stats_site", ErrCodeInvalidData, "failed to parse response", err)
	}

	if stats.Name == "" {
		stats.Name = name
	}

	return &stats, nil
}

// Name returns the stats source name
func (c *StatsSiteClient) Name() string {
	return "stats_site"
}

// IsEnabled returns whether this source is enabled
func (c *StatsSiteClient) IsEnabled() bool {
	return c.enabled
}
