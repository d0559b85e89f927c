package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/octagon-edge/internal/cache"
	"github.com/yourusername/octagon-edge/internal/config"
	"github.com/yourusername/octagon-edge/internal/datasource"
	"github.com/yourusername/octagon-edge/internal/logger"
	"github.com/yourusername/octagon-edge/internal/metrics"
	"github.com/yourusername/octagon-edge/internal/models"
	"github.com/yourusername/octagon-edge/internal/repository"
	"github.com/yourusername/octagon-edge/internal/statparser"
)

// PredictionInvalidator drops cached predictions for a fighter whose
// inputs changed
type PredictionInvalidator interface {
	InvalidateFighter(name string)
}

// StatsService keeps fighter profiles fresh and ingests fight records
type StatsService struct {
	fighters    repository.FighterRepository
	fights      repository.FightRepository
	statsSource datasource.StatsSource
	sources     []datasource.DataSource
	validator   *DataValidator
	caches      *cache.Caches
	predictions PredictionInvalidator
	config      *config.Config
	analysisLog *logger.AnalysisLogger
	marketLog   *logger.MarketLogger
	ingestion   *IngestionMetrics
}

// NewStatsService creates a new stats service
func NewStatsService(
	fighters repository.FighterRepository,
	fights repository.FightRepository,
	statsSource datasource.StatsSource,
	sources []datasource.DataSource,
	caches *cache.Caches,
	predictions PredictionInvalidator,
	cfg *config.Config,
	analysisLog *logger.AnalysisLogger,
	marketLog *logger.MarketLogger,
) *StatsService {
	return &StatsService{
		fighters:    fighters,
		fights:      fights,
		statsSource: statsSource,
		sources:     sources,
		validator:   NewDataValidator(),
		caches:      caches,
		predictions: predictions,
		config:      cfg,
		analysisLog: analysisLog,
		marketLog:   marketLog,
		ingestion:   NewIngestionMetrics(),
	}
}

// NormalizeProfile converts raw site-rendered stat strings into a
// numeric profile. Malformed fields parse to 0 ("unknown").
func NormalizeProfile(raw *datasource.RawFighterStats) *models.FighterProfile {
	profile := &models.FighterProfile{
		ID:          uuid.New(),
		Name:        raw.Name,
		HeightIn:    statparser.ParseHeight(raw.Height),
		ReachIn:     statparser.ParseReach(raw.Reach),
		Stance:      statparser.ParseStance(raw.Stance),
		SLPM:        statparser.ParseRate(raw.SLPM),
		SAPM:        statparser.ParseRate(raw.SAPM),
		StrAccuracy: statparser.ParsePercent(raw.StrAccuracy),
		StrDefense:  statparser.ParsePercent(raw.StrDefense),
		TDAvg:       statparser.ParseRate(raw.TDAvg),
		TDAccuracy:  statparser.ParsePercent(raw.TDAccuracy),
		TDDefense:   statparser.ParsePercent(raw.TDDefense),
		SubAvg:      statparser.ParseRate(raw.SubAvg),
	}

	if dob, err := time.Parse("2006-01-02", raw.DateOfBirth); err == nil {
		profile.DateOfBirth = &dob
	}

	return profile
}

// RefreshFighter fetches, normalizes and persists a single fighter's
// profile, then invalidates every cache holding derived results.
func (s *StatsService) RefreshFighter(ctx context.Context, name string) (*models.FighterProfile, error) {
	raw, err := s.statsSource.FetchFighterStats(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stats for %s: %w", name, err)
	}

	profile := NormalizeProfile(raw)
	if errs := s.validator.ValidateProfile(profile); len(errs) > 0 {
		return nil, fmt.Errorf("profile validation failed for %s: %v", name, errs)
	}

	if err := s.fighters.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to upsert profile for %s: %w", name, err)
	}

	s.caches.Profiles.Set(profileCacheKey(name), profile)
	if s.predictions != nil {
		s.predictions.InvalidateFighter(name)
	}
	metrics.RecordProfileRefresh()

	return profile, nil
}

// RefreshStaleProfiles refreshes up to the configured batch of profiles
// older than the refresh window. Individual failures are logged and
// skipped; the run continues.
func (s *StatsService) RefreshStaleProfiles(ctx context.Context) (refreshed, failed int, err error) {
	window := s.config.ProfileRefreshWindow()
	batch := s.config.StatsSource.RefreshBatchSize

	stale, err := s.fighters.GetStale(ctx, window, batch)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list stale profiles: %w", err)
	}
	metrics.UpdateStaleProfiles(float64(len(stale)))

	for _, profile := range stale {
		staleDays := time.Since(profile.UpdatedAt).Hours() / 24

		if _, refreshErr := s.RefreshFighter(ctx, profile.Name); refreshErr != nil {
			s.analysisLog.LogProfileRefresh(profile.Name, staleDays, false)
			failed++
			continue
		}

		s.analysisLog.LogProfileRefresh(profile.Name, staleDays, true)
		refreshed++
	}

	return refreshed, failed, nil
}

// IngestFightRecords fetches new fight records from every configured
// source since the cutoff and appends them to history. Existing records
// are left untouched.
func (s *StatsService) IngestFightRecords(ctx context.Context, since time.Time) (*IngestionMetrics, error) {
	s.ingestion.Reset()
	start := time.Now()

	for _, source := range s.sources {
		data, err := source.FetchFightRecords(ctx, since)
		if err != nil {
			s.ingestion.RecordError()
			s.marketLog.WithError(err).WithField("source", source.Name()).Warn("Fight record fetch failed")
			continue
		}

		records := make([]*models.FightRecord, 0, len(data))
		skipped := 0
		for _, row := range data {
			record := &models.FightRecord{
				ID:          uuid.New(),
				Winner:      row.Winner,
				Loser:       row.Loser,
				Method:      row.Method,
				Date:        row.Date,
				WeightClass: row.WeightClass,
			}

			if errs := s.validator.ValidateFightRecord(record); len(errs) > 0 {
				s.ingestion.RecordValidationError()
				skipped++
				continue
			}
			records = append(records, record)
		}

		s.ingestion.RecordFetched(len(data))

		if len(records) > 0 {
			if err := s.fights.InsertBatch(ctx, records); err != nil {
				s.ingestion.RecordError()
				s.marketLog.WithError(err).WithField("source", source.Name()).Error("Fight record batch insert failed")
				continue
			}
		}

		s.ingestion.RecordInserted(len(records))
		metrics.RecordFightRecordsIngested(len(records))
		s.marketLog.LogIngestionBatch(source.Name(), len(records), skipped,
			float64(time.Since(start).Milliseconds()))
	}

	s.ingestion.Duration = time.Since(start)
	return s.ingestion, nil
}

// GetMetrics returns the metrics from the last ingestion run
func (s *StatsService) GetMetrics() *IngestionMetrics {
	return s.ingestion
}
