package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDB struct {
	err error
}

func (f *fakeDB) HealthCheck(ctx context.Context) error { return f.err }

type fakeStream struct {
	connected bool
	lastMsg   time.Time
}

func (f *fakeStream) IsConnected() bool          { return f.connected }
func (f *fakeStream) LastMessageTime() time.Time { return f.lastMsg }

func TestHandleHealth(t *testing.T) {
	server := NewServer(Config{ServiceName: "analyzer", Version: "1.2.3"})

	rec := httptest.NewRecorder()
	server.handleHealth(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, 200, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "analyzer", resp.Service)
	assert.Equal(t, "1.2.3", resp.Version)
}

func TestHandleReadyAllHealthy(t *testing.T) {
	server := NewServer(Config{
		ServiceName: "analyzer",
		DB:          &fakeDB{},
		Stream:      &fakeStream{connected: true, lastMsg: time.Now()},
	})
	server.SetReady(true)

	rec := httptest.NewRecorder()
	server.handleReady(rec, httptest.NewRequest("GET", "/ready", nil))

	assert.Equal(t, 200, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Checks["database"])
	assert.Equal(t, "ok", resp.Checks["odds_stream"])
}

func TestHandleReadyDatabaseDown(t *testing.T) {
	server := NewServer(Config{
		ServiceName: "analyzer",
		DB:          &fakeDB{err: errors.New("connection refused")},
	})
	server.SetReady(true)

	rec := httptest.NewRecorder()
	server.handleReady(rec, httptest.NewRequest("GET", "/ready", nil))

	assert.Equal(t, 503, rec.Code)
}

func TestHandleReadyStreamOnlyDegrades(t *testing.T) {
	server := NewServer(Config{
		ServiceName: "analyzer",
		DB:          &fakeDB{},
		Stream:      &fakeStream{connected: false},
	})
	server.SetReady(true)

	rec := httptest.NewRecorder()
	server.handleReady(rec, httptest.NewRequest("GET", "/ready", nil))

	// A dead stream is reported but does not fail readiness.
	assert.Equal(t, 200, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "disconnected", resp.Checks["odds_stream"])
}

func TestHandleReadyNotReady(t *testing.T) {
	server := NewServer(Config{ServiceName: "analyzer"})

	rec := httptest.NewRecorder()
	server.handleReady(rec, httptest.NewRequest("GET", "/ready", nil))

	assert.Equal(t, 503, rec.Code)
}
