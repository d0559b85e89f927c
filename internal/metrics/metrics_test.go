package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordProfileRefresh(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordProfileRefresh()
	})
}

func TestRecordMatchupComparison(t *testing.T) {
	InitRegistry()
	durationSeconds := 0.02

	assert.NotPanics(t, func() {
		RecordMatchupComparison(durationSeconds)
	})
}

func TestUpdateValueOpportunities(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name  string
		count float64
	}{
		{
			name:  "several opportunities",
			count: 4,
		},
		{
			name:  "no opportunities",
			count: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				UpdateValueOpportunities(tt.count)
			})
		})
	}
}

func TestRecordPrediction(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordPrediction("baseline-v1", false, 0.3)
	})

	assert.NotPanics(t, func() {
		RecordPrediction("baseline-v1", true, 0)
	})
}

func TestRecordStyleClassification(t *testing.T) {
	InitRegistry()

	for _, style := range []string{"Striker", "Submission Grappler", "Control Grappler", "Mixed", "Balanced", "Unknown"} {
		assert.NotPanics(t, func() {
			RecordStyleClassification(style)
		})
	}
}

func TestUpdateCacheHitRatio(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		UpdateCacheHitRatio("profiles", 0.85)
		UpdateCacheHitRatio("reports", 0.5)
		UpdateCacheHitRatio("odds", 0)
	})
}

func TestRecordOddsQuote(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordOddsQuote("testbook", "stream")
		RecordOddsQuote("testbook", "poll")
	})
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()

	handler := Handler()
	assert.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)
}

func BenchmarkRecordProfileRefresh(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordProfileRefresh()
	}
}

func BenchmarkRecordMatchupComparison(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordMatchupComparison(0.02)
	}
}
