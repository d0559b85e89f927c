package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourusername/octagon-edge/internal/cache"
	"github.com/yourusername/octagon-edge/internal/config"
	"github.com/yourusername/octagon-edge/internal/logger"
	"github.com/yourusername/octagon-edge/internal/market"
	"github.com/yourusername/octagon-edge/internal/metrics"
	"github.com/yourusername/octagon-edge/internal/models"
	"github.com/yourusername/octagon-edge/internal/predictor"
	"github.com/yourusername/octagon-edge/internal/repository"
)

// OddsFetcher retrieves current quotes for an event
type OddsFetcher interface {
	FetchEventOdds(ctx context.Context, event string) ([]*models.FightOddsQuote, error)
}

// pairKey identifies a fight independent of corner order
func pairKey(fighter1, fighter2 string) string {
	f1 := strings.ToLower(strings.TrimSpace(fighter1))
	f2 := strings.ToLower(strings.TrimSpace(fighter2))
	if f1 > f2 {
		f1, f2 = f2, f1
	}
	return f1 + "|" + f2
}

func reportCacheKey(event, model string) string {
	return strings.ToLower(strings.TrimSpace(event)) + "|" + model
}

// MarketService produces market reports for fight cards. Reports are
// cached for the freshness window; within it, repeat requests for the
// same event and model return the stored report.
type MarketService struct {
	engine      *market.ValueEngine
	predictions predictor.Predictor
	oddsRepo    repository.OddsRepository
	oddsFetcher OddsFetcher
	caches      *cache.Caches
	config      *config.Config
	log         *logger.MarketLogger
}

// NewMarketService creates a new market service. oddsFetcher may be nil;
// quote resolution then relies on the odds cache and repository alone.
func NewMarketService(
	engine *market.ValueEngine,
	predictions predictor.Predictor,
	oddsRepo repository.OddsRepository,
	oddsFetcher OddsFetcher,
	caches *cache.Caches,
	cfg *config.Config,
	log *logger.MarketLogger,
) *MarketService {
	return &MarketService{
		engine:      engine,
		predictions: predictions,
		oddsRepo:    oddsRepo,
		oddsFetcher: oddsFetcher,
		caches:      caches,
		config:      cfg,
		log:         log,
	}
}

// AnalyzeEvent builds the full market report for an event's fight card
func (s *MarketService) AnalyzeEvent(ctx context.Context, event string, matchups []predictor.MatchupRequest) (*models.MarketReport, error) {
	model := s.config.Predictor.Model
	key := reportCacheKey(event, model)

	if cached, found := s.caches.Reports.Get(key); found {
		if report, ok := cached.(*models.MarketReport); ok {
			metrics.RecordMarketReport("hit")
			return report, nil
		}
	}

	predictions, err := s.predictions.BatchPredict(ctx, matchups)
	if err != nil {
		return nil, fmt.Errorf("failed to predict card for %s: %w", event, err)
	}

	quotes := s.eventQuotes(ctx, event)

	fights := make([]models.EnrichedFight, 0, len(predictions))
	for _, prediction := range predictions {
		fights = append(fights, models.EnrichedFight{
			Event:           event,
			Fighter1:        prediction.Fighter1,
			Fighter2:        prediction.Fighter2,
			PredictedWinner: prediction.PredictedWinner,
			Confidence:      prediction.Confidence,
			Odds:            s.resolveQuote(ctx, quotes, prediction.Fighter1, prediction.Fighter2),
		})
	}

	report := s.engine.ComputeMarketAnalysis(event, model, fights)

	for _, opportunity := range report.Opportunities {
		if opportunity.Edge > s.config.Market.MinEdgeThreshold {
			s.log.LogValuePick(event, opportunity.PredictedWinner,
				opportunity.Confidence, opportunity.Odds,
				opportunity.Edge, opportunity.BetSize, opportunity.Rating)
		}
	}
	if report.Parlays != nil {
		s.log.LogParlayComposition(event,
			len(report.Parlays.TwoLeg), len(report.Parlays.ThreeLeg), len(report.Parlays.CrossPool))
	}

	metrics.UpdateValueOpportunities(float64(report.Metrics.ValueOpportunities))
	metrics.RecordMarketReport("miss")
	s.caches.Reports.Set(key, report)

	return report, nil
}

// eventQuotes fetches the live odds board for an event, keyed by fight.
// A fetch failure degrades to the cache/repository path per fight.
func (s *MarketService) eventQuotes(ctx context.Context, event string) map[string]*models.FightOddsQuote {
	board := make(map[string]*models.FightOddsQuote)
	if s.oddsFetcher == nil {
		return board
	}

	quotes, err := s.oddsFetcher.FetchEventOdds(ctx, event)
	if err != nil {
		s.log.WithError(err).WithField("event", event).Warn("Live odds fetch failed, using stored quotes")
		return board
	}

	for _, quote := range quotes {
		board[pairKey(quote.Fighter1, quote.Fighter2)] = quote
	}
	return board
}

// resolveQuote finds the best available quote for a fight: live board,
// then odds cache, then the newest stored quote. Nil when no quote
// exists anywhere.
func (s *MarketService) resolveQuote(ctx context.Context, board map[string]*models.FightOddsQuote, fighter1, fighter2 string) *models.FightOddsQuote {
	key := pairKey(fighter1, fighter2)

	if quote, ok := board[key]; ok {
		return quote
	}

	if cached, found := s.caches.Odds.Get(key); found {
		if quote, ok := cached.(*models.FightOddsQuote); ok {
			return quote
		}
	}

	quote, err := s.oddsRepo.GetForFight(ctx, fighter1, fighter2, s.config.OddsFeed.Bookmaker)
	if err != nil {
		return nil
	}
	s.caches.Odds.Set(key, quote)
	return quote
}

// PollOdds fetches the full upcoming board from the odds feed and stores
// every quote. The empty event name asks the feed for all upcoming
// fights. Used as the gap-filler between stream sessions.
func (s *MarketService) PollOdds(ctx context.Context) error {
	if s.oddsFetcher == nil {
		return fmt.Errorf("no odds fetcher configured")
	}

	quotes, err := s.oddsFetcher.FetchEventOdds(ctx, "")
	if err != nil {
		return fmt.Errorf("odds poll failed: %w", err)
	}

	for _, quote := range quotes {
		if err := s.HandleStreamQuote(quote); err != nil {
			s.log.WithError(err).WithFields(map[string]interface{}{
				"fighter1": quote.Fighter1,
				"fighter2": quote.Fighter2,
			}).Warn("Failed to store polled quote")
		}
	}

	return nil
}

// HandleStreamQuote persists and caches a quote from the live stream.
// Registered as the odds stream handler.
func (s *MarketService) HandleStreamQuote(quote *models.FightOddsQuote) error {
	ctx := context.Background()

	if err := s.oddsRepo.Insert(ctx, quote); err != nil {
		return fmt.Errorf("failed to store stream quote: %w", err)
	}

	s.caches.Odds.Set(pairKey(quote.Fighter1, quote.Fighter2), quote)
	s.log.LogOddsSnapshot(quote.Bookmaker, quote.Fighter1, quote.Fighter2, quote.LastUpdate)
	return nil
}
