package datasource

import (
	"fmt"
	"log"

	"github.com/yourusername/octagon-edge/internal/config"
)

// SourceType represents the type of data source
type SourceType string

const (
	// FightArchiveSourceType is the historical fight results archive
	FightArchiveSourceType SourceType = "fight_archive"
	// StatsSiteSourceType is the fighter statistics site
	StatsSiteSourceType SourceType = "stats_site"
)

// Factory creates DataSource implementations based on configuration
type Factory struct {
	logger *log.Logger
	config *config.Config
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.Config, logger *log.Logger) *Factory {
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// NewDataSource creates a new DataSource based on the provided configuration
func (f *Factory) NewDataSource(cfg config.DataSourceConfig, httpClient *RateLimitedHTTPClient) (DataSource, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("HTTP client is required")
	}

	switch cfg.Name {
	case "fight_archive":
		baseURL := f.config.StatsSource.BaseURL
		return NewFightArchiveClient(httpClient, baseURL, cfg.APIKey, cfg.Enabled, f.logger), nil

	default:
		return nil, fmt.Errorf("unknown data source: %s", cfg.Name)
	}
}

// NewStatsSource creates the fighter statistics source from configuration
func (f *Factory) NewStatsSource(httpClient *RateLimitedHTTPClient) (StatsSource, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("HTTP client is required")
	}

	cfg := f.config.StatsSource
	return NewStatsSiteClient(httpClient, cfg.BaseURL, cfg.APIKey, true, f.logger), nil
}

// NewDataSources creates all enabled data sources from configuration
func (f *Factory) NewDataSources(ingestCfg config.IngestionConfig, httpClient *RateLimitedHTTPClient) ([]DataSource, error) {
	var sources []DataSource

	for _, srcCfg := range ingestCfg.Sources {
		if !srcCfg.Enabled {
			if f.logger != nil {
				f.logger.Printf("Skipping disabled data source: %s", srcCfg.Name)
			}
			continue
		}

		source, err := f.NewDataSource(srcCfg, httpClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create data source %s: %w", srcCfg.Name, err)
		}

		sources = append(sources, source)
		if f.logger != nil {
			f.logger.Printf("Created data source: %s", srcCfg.Name)
		}
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no enabled data sources configured")
	}

	return sources, nil
}
