package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/yourusername/octagon-edge/internal/analysis"
	"github.com/yourusername/octagon-edge/internal/cache"
	"github.com/yourusername/octagon-edge/internal/logger"
	"github.com/yourusername/octagon-edge/internal/metrics"
	"github.com/yourusername/octagon-edge/internal/models"
	"github.com/yourusername/octagon-edge/internal/repository"
)

func profileCacheKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AnalysisService answers matchup questions, resolving fighter profiles
// through the cache, the database and finally the stats source.
type AnalysisService struct {
	fighters   repository.FighterRepository
	fights     repository.FightRepository
	comparator *analysis.Comparator
	classifier *analysis.StyleClassifier
	common     *analysis.CommonOpponentAnalyzer
	stats      *StatsService
	caches     *cache.Caches
	log        *logger.AnalysisLogger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	fighters repository.FighterRepository,
	fights repository.FightRepository,
	comparator *analysis.Comparator,
	classifier *analysis.StyleClassifier,
	common *analysis.CommonOpponentAnalyzer,
	stats *StatsService,
	caches *cache.Caches,
	log *logger.AnalysisLogger,
) *AnalysisService {
	return &AnalysisService{
		fighters:   fighters,
		fights:     fights,
		comparator: comparator,
		classifier: classifier,
		common:     common,
		stats:      stats,
		caches:     caches,
		log:        log,
	}
}

// GetProfile resolves a fighter profile: cache, then database, then a
// live fetch from the stats source for fighters never seen before.
func (s *AnalysisService) GetProfile(ctx context.Context, name string) (*models.FighterProfile, error) {
	key := profileCacheKey(name)

	if cached, found := s.caches.Profiles.Get(key); found {
		if profile, ok := cached.(*models.FighterProfile); ok {
			return profile, nil
		}
	}

	profile, err := s.fighters.GetByName(ctx, name)
	if err == nil {
		s.caches.Profiles.Set(key, profile)
		return profile, nil
	}

	if errors.Is(err, models.ErrNotFound) && s.stats != nil {
		return s.stats.RefreshFighter(ctx, name)
	}

	return nil, fmt.Errorf("failed to resolve profile for %s: %w", name, err)
}

// CompareMatchup builds the full head-to-head analysis for an ordered
// pair, fetching both profiles concurrently.
func (s *AnalysisService) CompareMatchup(ctx context.Context, fighter1, fighter2 string) (*models.MatchupAnalysis, error) {
	start := time.Now()

	var (
		wg     sync.WaitGroup
		p1, p2 *models.FighterProfile
		e1, e2 error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		p1, e1 = s.GetProfile(ctx, fighter1)
	}()
	go func() {
		defer wg.Done()
		p2, e2 = s.GetProfile(ctx, fighter2)
	}()
	wg.Wait()

	if e1 != nil {
		return nil, e1
	}
	if e2 != nil {
		return nil, e2
	}

	matchup := s.comparator.CompareMatchup(p1, p2)
	if matchup == nil {
		return nil, fmt.Errorf("matchup comparison unavailable for %s vs %s", fighter1, fighter2)
	}

	duration := time.Since(start)
	metrics.RecordMatchupComparison(duration.Seconds())
	s.log.LogMatchupComparison(fighter1, fighter2,
		string(matchup.Striking.Verdict), string(matchup.Grappling.Verdict),
		float64(duration.Milliseconds()))

	return matchup, nil
}

// ClassifyStyle returns the fighter's style label. Lookup failures
// degrade to StyleUnknown rather than erroring.
func (s *AnalysisService) ClassifyStyle(ctx context.Context, name string) models.StyleLabel {
	profile, err := s.GetProfile(ctx, name)
	if err != nil {
		s.log.WithError(err).WithField("fighter", name).Debug("Style classification without profile")
		return models.StyleUnknown
	}

	wins, _, err := s.fights.GetWinsAndLosses(ctx, name)
	if err != nil {
		wins = nil
	}

	style := s.classifier.ClassifyProfile(profile, wins)
	metrics.RecordStyleClassification(string(style))
	s.log.LogStyleClassification(name, string(style), len(wins), len(wins) > 0)

	return style
}

// AnalyzeCommonOpponents builds the common-opponent report for a pair.
// Always returns a well-formed report.
func (s *AnalysisService) AnalyzeCommonOpponents(ctx context.Context, fighter1, fighter2 string) *models.CommonOpponentReport {
	report := s.common.Analyze(ctx, fighter1, fighter2)
	s.log.LogCommonOpponentAnalysis(fighter1, fighter2, len(report.SharedOpponents), len(report.Insights))
	return report
}
