// Package config provides configuration management for the Octagon Edge application.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	StatsSource StatsSourceConfig `mapstructure:"stats_source" validate:"required"`
	OddsFeed    OddsFeedConfig    `mapstructure:"odds_feed" validate:"required"`
	Predictor   PredictorConfig   `mapstructure:"predictor" validate:"required"`
	Market      MarketConfig      `mapstructure:"market" validate:"required"`
	Ingestion   IngestionConfig   `mapstructure:"ingestion" validate:"required"`
	Cache       CacheConfig       `mapstructure:"cache" validate:"required"`
	Metrics     MetricsConfig     `mapstructure:"metrics" validate:"required"`
	Features    FeaturesConfig    `mapstructure:"features" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// StatsSourceConfig represents the fighter statistics site configuration
type StatsSourceConfig struct {
	BaseURL            string  `mapstructure:"base_url" validate:"required,url"`
	APIKey             string  `mapstructure:"api_key"`
	TimeoutSeconds     int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts      int     `mapstructure:"retry_attempts" validate:"required,gte=0"`
	RequestsPerSecond  float64 `mapstructure:"requests_per_second" validate:"required,gt=0"`
	ProfileRefreshDays int     `mapstructure:"profile_refresh_days" validate:"required,gt=0"`
	RefreshBatchSize   int     `mapstructure:"refresh_batch_size" validate:"required,gt=0"`
}

// OddsFeedConfig represents the bookmaker odds feed configuration
type OddsFeedConfig struct {
	APIURL          string `mapstructure:"api_url" validate:"required,url"`
	StreamURL       string `mapstructure:"stream_url" validate:"required"`
	APIKey          string `mapstructure:"api_key" validate:"required"`
	Bookmaker       string `mapstructure:"bookmaker" validate:"required"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	PollIntervalMin int    `mapstructure:"poll_interval_minutes" validate:"required,gt=0"`
}

// PredictorConfig represents the prediction service configuration
type PredictorConfig struct {
	URL                   string `mapstructure:"url" validate:"required,url"`
	Model                 string `mapstructure:"model" validate:"required"`
	TimeoutSeconds        int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
	RetryAttempts         int    `mapstructure:"retry_attempts" validate:"required,gte=0"`
	CacheTTLSeconds       int    `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	CacheMaxSize          int    `mapstructure:"cache_max_size" validate:"required,gt=0"`
}

// MarketConfig represents value analysis configuration
type MarketConfig struct {
	MinEdgeThreshold  float64 `mapstructure:"min_edge_threshold" validate:"gte=0"`
	MaxSingleExposure float64 `mapstructure:"max_single_exposure" validate:"required,gt=0"`
	ReportTTLMinutes  int     `mapstructure:"report_ttl_minutes" validate:"required,gt=0"`
	ParlaysEnabled    bool    `mapstructure:"parlays_enabled"`
}

// IngestionConfig represents fight history ingestion configuration
type IngestionConfig struct {
	Sources  []DataSourceConfig `mapstructure:"sources" validate:"required,min=1"`
	Schedule ScheduleConfig     `mapstructure:"schedule" validate:"required"`
}

// DataSourceConfig represents a single data source configuration
type DataSourceConfig struct {
	Name      string `mapstructure:"name" validate:"required"`
	Enabled   bool   `mapstructure:"enabled"`
	BatchSize int    `mapstructure:"batch_size" validate:"omitempty,gt=0"`
	APIKey    string `mapstructure:"api_key"`
}

// ScheduleConfig represents ingestion and refresh scheduling
type ScheduleConfig struct {
	ProfileRefreshCron string `mapstructure:"profile_refresh_cron" validate:"required"`
	OddsPollCron       string `mapstructure:"odds_poll_cron" validate:"required"`
}

// CacheConfig represents read-cache TTL configuration
type CacheConfig struct {
	ProfileTTLHours    int `mapstructure:"profile_ttl_hours" validate:"required,gt=0"`
	ReportTTLMinutes   int `mapstructure:"report_ttl_minutes" validate:"required,gt=0"`
	OddsTTLMinutes     int `mapstructure:"odds_ttl_minutes" validate:"required,gt=0"`
	CleanupIntervalMin int `mapstructure:"cleanup_interval_minutes" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// FeaturesConfig represents feature flags
type FeaturesConfig struct {
	LiveOddsEnabled        bool `mapstructure:"live_odds_enabled"`
	PredictionsEnabled     bool `mapstructure:"predictions_enabled"`
	CommonOpponentsEnabled bool `mapstructure:"common_opponents_enabled"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// ProfileRefreshWindow returns the staleness window for fighter profiles
func (c *Config) ProfileRefreshWindow() time.Duration {
	return time.Duration(c.StatsSource.ProfileRefreshDays) * 24 * time.Hour
}

// ReportTTL returns the market report cache lifetime
func (c *Config) ReportTTL() time.Duration {
	return time.Duration(c.Cache.ReportTTLMinutes) * time.Minute
}
