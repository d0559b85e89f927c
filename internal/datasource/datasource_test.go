package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/octagon-edge/internal/config"
)

func configSource(name string, enabled bool) config.DataSourceConfig {
	return config.DataSourceConfig{Name: name, Enabled: enabled}
}

func testHTTPClient() *RateLimitedHTTPClient {
	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 100
	return NewRateLimitedHTTPClient(cfg, nil)
}

func TestFightArchiveFetchFightRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fights", r.URL.Path)
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("since"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "f1", "winner": "Jon Jones", "loser": "Stipe Miocic", "method": "TKO (kicks)", "date": "2024-11-16", "weightClass": "Heavyweight", "event": "UFC 309"},
			{"id": "f2", "winner": "Islam Makhachev", "loser": "Dustin Poirier", "method": "Submission (D'Arce choke)", "date": "2024-06-01", "weightClass": "Lightweight", "event": "UFC 302"},
			{"id": "bad", "winner": "", "loser": "Nobody", "method": "Decision", "date": "2024-01-02", "weightClass": ""}
		]`))
	}))
	defer server.Close()

	client := NewFightArchiveClient(testHTTPClient(), server.URL, "test-key", true, nil)

	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records, err := client.FetchFightRecords(context.Background(), since)
	require.NoError(t, err)

	// The record with a missing winner is dropped, not defaulted.
	require.Len(t, records, 2)
	assert.Equal(t, "Jon Jones", records[0].Winner)
	assert.Equal(t, "TKO (kicks)", records[0].Method)
	assert.Equal(t, time.Date(2024, 11, 16, 0, 0, 0, 0, time.UTC), records[0].Date)
}

func TestFightArchiveDisabled(t *testing.T) {
	client := NewFightArchiveClient(testHTTPClient(), "http://localhost:0", "", false, nil)

	_, err := client.FetchFightRecords(context.Background(), time.Now())
	require.Error(t, err)

	var dsErr DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, "fight_archive", dsErr.Source)
}

func TestFightArchiveAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewFightArchiveClient(testHTTPClient(), server.URL, "bad-key", true, nil)

	_, err := client.FetchFightRecords(context.Background(), time.Now())
	require.Error(t, err)

	var dsErr DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, ErrCodeAuthenticationFailed, dsErr.Code)
}

func TestStatsSiteFetchFighterStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fighters", r.URL.Path)
		assert.Equal(t, "Jon Jones", r.URL.Query().Get("name"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"name": "Jon Jones",
			"height": "6'4\"",
			"reach": "84.5\"",
			"stance": "Orthodox",
			"date_of_birth": "1987-07-19",
			"slpm": "4.29",
			"sapm": "2.22",
			"str_accuracy": "57%",
			"str_defense": "64%",
			"td_avg": "1.93",
			"td_accuracy": "45%",
			"td_defense": "95%",
			"sub_avg": "0.5"
		}`))
	}))
	defer server.Close()

	client := NewStatsSiteClient(testHTTPClient(), server.URL, "", true, nil)

	stats, err := client.FetchFighterStats(context.Background(), "Jon Jones")
	require.NoError(t, err)

	assert.Equal(t, "Jon Jones", stats.Name)
	assert.Equal(t, `6'4"`, stats.Height)
	assert.Equal(t, "57%", stats.StrAccuracy)
	assert.Equal(t, "Orthodox", stats.Stance)
}

func TestStatsSiteFighterNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewStatsSiteClient(testHTTPClient(), server.URL, "", true, nil)

	_, err := client.FetchFighterStats(context.Background(), "Nobody Special")
	require.Error(t, err)

	var dsErr DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, ErrCodeNotFound, dsErr.Code)
}

func TestHTTPClientRateLimit(t *testing.T) {
	cfg := DefaultHTTPClientConfig()
	cfg.RateLimit = 10
	client := NewRateLimitedHTTPClient(cfg, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// First request is free; the next 5 queue at 10 req/s.
	start := time.Now()
	for i := 0; i < 6; i++ {
		err := client.limiter.Wait(ctx)
		require.NoError(t, err)
	}
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 400*time.Millisecond)
	assert.Less(t, elapsed, 1200*time.Millisecond)
}

func TestHTTPClientSetsUserAgent(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	resp, err := testHTTPClient().Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "octagon-edge/1.0", gotAgent)
}

func TestHTTPClientCircuitBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 100
	cfg.CircuitBreakerMax = 2
	client := NewRateLimitedHTTPClient(cfg, nil)

	ctx := context.Background()
	_, err := client.Get(ctx, server.URL)
	require.Error(t, err)
	_, err = client.Get(ctx, server.URL)
	require.Error(t, err)

	// Breaker is open now; the next call fails without reaching the server.
	_, err = client.Get(ctx, server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit open")
}

func TestFactoryNewDataSourceUnknown(t *testing.T) {
	factory := NewFactory(nil, nil)

	_, err := factory.NewDataSource(configSource("mystery", true), testHTTPClient())
	require.Error(t, err)
}

func TestFactoryRequiresHTTPClient(t *testing.T) {
	factory := NewFactory(nil, nil)

	_, err := factory.NewDataSource(configSource("fight_archive", true), nil)
	require.Error(t, err)
}
