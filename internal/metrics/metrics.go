// Package metrics provides the centralized Prometheus metrics registry for the analyzer.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ProfilesRefreshedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "octagon_edge",
		Name:      "profiles_refreshed_total",
		Help:      "Total number of fighter profiles refreshed from the stats source",
	})
	FightRecordsIngestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "octagon_edge",
		Name:      "fight_records_ingested_total",
		Help:      "Total number of fight records ingested",
	})
	OddsQuotesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "octagon_edge",
		Name:      "odds_quotes_total",
		Help:      "Total number of odds quotes received",
	}, []string{"bookmaker", "source"})
	MatchupComparisonsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "octagon_edge",
		Name:      "matchup_comparisons_total",
		Help:      "Total number of head-to-head matchup comparisons",
	})
	StyleClassificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "octagon_edge",
		Name:      "style_classifications_total",
		Help:      "Total number of style classifications by resulting label",
	}, []string{"style"})
	MarketReportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "octagon_edge",
		Name:      "market_reports_total",
		Help:      "Total number of market reports computed, by cache outcome",
	}, []string{"cache"})
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "octagon_edge",
		Name:      "predictions_total",
		Help:      "Total number of model predictions requested",
	}, []string{"model", "cache_hit"})
	StreamReconnectsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "octagon_edge",
		Name:      "stream_reconnects_total",
		Help:      "Total number of odds stream reconnects",
	})
)

// Gauge metrics
var (
	ValueOpportunities = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "octagon_edge",
		Name:      "value_opportunities",
		Help:      "Value opportunities surfaced by the latest market report",
	})
	StaleProfiles = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "octagon_edge",
		Name:      "stale_profiles",
		Help:      "Fighter profiles currently older than the refresh window",
	})
	CacheHitRatio = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "octagon_edge",
		Name:      "cache_hit_ratio",
		Help:      "Hit ratio per named read cache",
	}, []string{"cache"})
)

// Histogram metrics
var (
	MatchupComparisonDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "octagon_edge",
		Name:      "matchup_comparison_duration_seconds",
		Help:      "Duration of matchup comparisons in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	PredictionLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "octagon_edge",
		Name:      "prediction_latency_seconds",
		Help:      "Model prediction latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"model"})
	StatsFetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "octagon_edge",
		Name:      "stats_fetch_duration_seconds",
		Help:      "Duration of stats source fetches in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(ProfilesRefreshedTotal)
		registry.MustRegister(FightRecordsIngestedTotal)
		registry.MustRegister(OddsQuotesTotal)
		registry.MustRegister(MatchupComparisonsTotal)
		registry.MustRegister(StyleClassificationsTotal)
		registry.MustRegister(MarketReportsTotal)
		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(StreamReconnectsTotal)

		registry.MustRegister(ValueOpportunities)
		registry.MustRegister(StaleProfiles)
		registry.MustRegister(CacheHitRatio)

		registry.MustRegister(MatchupComparisonDuration)
		registry.MustRegister(PredictionLatency)
		registry.MustRegister(StatsFetchDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordProfileRefresh records a fighter profile refresh.
func RecordProfileRefresh() {
	ProfilesRefreshedTotal.Inc()
}

// RecordFightRecordsIngested records ingested fight records.
func RecordFightRecordsIngested(count int) {
	FightRecordsIngestedTotal.Add(float64(count))
}

// RecordOddsQuote records a received odds quote.
func RecordOddsQuote(bookmaker, source string) {
	OddsQuotesTotal.WithLabelValues(bookmaker, source).Inc()
}

// RecordMatchupComparison records a matchup comparison and its duration.
func RecordMatchupComparison(durationSeconds float64) {
	MatchupComparisonsTotal.Inc()
	MatchupComparisonDuration.Observe(durationSeconds)
}

// RecordStyleClassification records a style classification outcome.
func RecordStyleClassification(style string) {
	StyleClassificationsTotal.WithLabelValues(style).Inc()
}

// RecordMarketReport records a market report computation.
func RecordMarketReport(cacheOutcome string) {
	MarketReportsTotal.WithLabelValues(cacheOutcome).Inc()
}

// RecordPrediction records a model prediction request.
func RecordPrediction(model string, cacheHit bool, durationSeconds float64) {
	hit := "false"
	if cacheHit {
		hit = "true"
	}
	PredictionsTotal.WithLabelValues(model, hit).Inc()
	if !cacheHit {
		PredictionLatency.WithLabelValues(model).Observe(durationSeconds)
	}
}

// RecordStreamReconnect records an odds stream reconnect.
func RecordStreamReconnect() {
	StreamReconnectsTotal.Inc()
}

// UpdateValueOpportunities updates the value opportunity gauge.
func UpdateValueOpportunities(count float64) {
	ValueOpportunities.Set(count)
}

// UpdateStaleProfiles updates the stale profile gauge.
func UpdateStaleProfiles(count float64) {
	StaleProfiles.Set(count)
}

// UpdateCacheHitRatio updates the hit ratio for a named cache.
func UpdateCacheHitRatio(cache string, ratio float64) {
	CacheHitRatio.WithLabelValues(cache).Set(ratio)
}

// RecordStatsFetch records a stats source fetch duration.
func RecordStatsFetch(durationSeconds float64) {
	StatsFetchDuration.Observe(durationSeconds)
}
