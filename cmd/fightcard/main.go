// Package main provides the fightcard CLI: matchup analysis and market
// reports from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/octagon-edge/internal/analysis"
	"github.com/yourusername/octagon-edge/internal/cache"
	"github.com/yourusername/octagon-edge/internal/config"
	"github.com/yourusername/octagon-edge/internal/database"
	"github.com/yourusername/octagon-edge/internal/datasource"
	"github.com/yourusername/octagon-edge/internal/logger"
	"github.com/yourusername/octagon-edge/internal/market"
	"github.com/yourusername/octagon-edge/internal/models"
	"github.com/yourusername/octagon-edge/internal/oddsfeed"
	"github.com/yourusername/octagon-edge/internal/predictor"
	"github.com/yourusername/octagon-edge/internal/repository"
	"github.com/yourusername/octagon-edge/internal/service"
)

var (
	configFile string
	asJSON     bool

	cfg         *config.Config
	appLog      *logrus.Logger
	db          *database.DB
	analysisSvc *service.AnalysisService
	marketSvc   *service.MarketService
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Emit raw JSON instead of formatted output")

	reportCmd.Flags().String("event", "", "Event name, e.g. \"UFC 309\"")
	reportCmd.Flags().StringArray("fight", nil, "Fight as \"Fighter1 vs Fighter2\" (repeatable)")
	reportCmd.MarkFlagRequired("event")
	reportCmd.MarkFlagRequired("fight")

	rootCmd.AddCommand(reportCmd, compareCmd, styleCmd, commonCmd)
}

var rootCmd = &cobra.Command{
	Use:   "fightcard",
	Short: "Fight matchup analysis and betting value reports",
	Long:  `Analyzes matchups, classifies fighter styles and builds market value reports for fight cards.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupDependencies(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setupDependencies(ctx context.Context) error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLog = logger.NewLogger("warn")

	db, err = database.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	fighterRepo := repository.NewPostgresFighterRepository(db)
	fightRepo := repository.NewPostgresFightRepository(db)
	oddsRepo := repository.NewPostgresOddsRepository(db)
	caches := cache.NewCaches(&cfg.Cache)

	stdLog := log.New(os.Stderr, "", 0)
	httpClient := datasource.NewRateLimitedHTTPClient(datasource.HTTPClientConfig{
		Timeout:           time.Duration(cfg.StatsSource.TimeoutSeconds) * time.Second,
		MaxRetries:        cfg.StatsSource.RetryAttempts,
		RetryWaitMin:      1 * time.Second,
		RetryWaitMax:      30 * time.Second,
		RateLimit:         cfg.StatsSource.RequestsPerSecond,
		CircuitBreakerMax: 5,
	}, stdLog)

	factory := datasource.NewFactory(cfg, stdLog)
	statsSource, err := factory.NewStatsSource(httpClient)
	if err != nil {
		return fmt.Errorf("failed to create stats source: %w", err)
	}

	predictions := predictor.NewCachedClient(&cfg.Predictor, appLog)

	analysisLog := logger.NewAnalysisLogger(appLog)
	marketLog := logger.NewMarketLogger(appLog)

	classifier := analysis.NewStyleClassifier(fighterRepo, fightRepo, nil, appLog)
	common := analysis.NewCommonOpponentAnalyzer(fightRepo, classifier, appLog)

	statsSvc := service.NewStatsService(fighterRepo, fightRepo, statsSource, nil,
		caches, predictions, cfg, analysisLog, marketLog)
	analysisSvc = service.NewAnalysisService(fighterRepo, fightRepo,
		analysis.NewComparator(nil), classifier, common, statsSvc, caches, analysisLog)

	oddsClient := oddsfeed.NewClient(&cfg.OddsFeed, httpClient, stdLog)
	marketSvc = service.NewMarketService(market.NewValueEngine(appLog),
		predictions, oddsRepo, oddsClient, caches, cfg, marketLog)

	return nil
}

func emit(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the market value report for an event",
	RunE: func(cmd *cobra.Command, args []string) error {
		event, _ := cmd.Flags().GetString("event")
		fightArgs, _ := cmd.Flags().GetStringArray("fight")

		matchups := make([]predictor.MatchupRequest, 0, len(fightArgs))
		for _, arg := range fightArgs {
			parts := strings.SplitN(arg, " vs ", 2)
			if len(parts) != 2 {
				return fmt.Errorf("invalid fight %q, expected \"Fighter1 vs Fighter2\"", arg)
			}
			matchups = append(matchups, predictor.MatchupRequest{
				Fighter1: strings.TrimSpace(parts[0]),
				Fighter2: strings.TrimSpace(parts[1]),
			})
		}

		report, err := marketSvc.AnalyzeEvent(cmd.Context(), event, matchups)
		if err != nil {
			return err
		}

		if asJSON {
			return emit(report)
		}
		printReport(report)
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <fighter1> <fighter2>",
	Short: "Head-to-head statistical comparison",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		matchup, err := analysisSvc.CompareMatchup(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return emit(matchup)
	},
}

var styleCmd = &cobra.Command{
	Use:   "style <fighter>",
	Short: "Classify a fighter's style",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		style := analysisSvc.ClassifyStyle(cmd.Context(), args[0])
		if asJSON {
			return emit(map[string]string{"fighter": args[0], "style": string(style)})
		}
		fmt.Printf("%s: %s\n", args[0], style)
		return nil
	},
}

var commonCmd = &cobra.Command{
	Use:   "common <fighter1> <fighter2>",
	Short: "Common opponent analysis",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.Features.CommonOpponentsEnabled {
			return fmt.Errorf("common opponent analysis is disabled in configuration")
		}
		report := analysisSvc.AnalyzeCommonOpponents(cmd.Context(), args[0], args[1])
		if asJSON {
			return emit(report)
		}

		fmt.Printf("%s vs %s: %d common opponents (%d-%d)\n",
			report.Fighter1, report.Fighter2,
			len(report.SharedOpponents), report.Fighter1Wins, report.Fighter2Wins)
		for _, insight := range report.Insights {
			fmt.Printf("  - %s\n", insight)
		}
		return nil
	},
}

func printReport(report *models.MarketReport) {
	fmt.Printf("\n%s market report (%s)\n", report.Event, report.Model)
	fmt.Printf("Generated: %s\n\n", report.GeneratedAt.Format(time.RFC3339))

	fmt.Printf("Market: efficiency %.1f, balance %.1f, sharpness %s\n",
		report.Metrics.MarketEfficiency, report.Metrics.MarketBalance, report.Metrics.Sharpness)
	fmt.Printf("Fights priced: %d/%d, value opportunities: %d\n\n",
		report.Metrics.FightsWithOdds,
		report.Metrics.FightsWithOdds+report.Metrics.FightsWithoutOdds,
		report.Metrics.ValueOpportunities)

	for _, o := range report.Opportunities {
		stars := strings.Repeat("*", o.Rating)
		fmt.Printf("%-5s %s at %s  conf %.0f%%  edge %+.1f  stake %.1f%%  [%s]\n",
			stars, o.PredictedWinner, market.FormatAmerican(o.Odds),
			o.Confidence, o.Edge, o.BetSize, o.RiskLevel)
		fmt.Printf("      %s\n", o.Analysis)
	}

	fmt.Printf("\nRisk: %s (score %d), max single %.1f%%, parlay allocation %.1f%%\n",
		report.Risk.Level, report.Risk.Score,
		report.Risk.MaxSingleExposure, report.Risk.ParlayAllocation)
	for _, note := range report.Risk.Notes {
		fmt.Printf("  - %s\n", note)
	}

	if report.Parlays != nil {
		fmt.Printf("\nParlays: %d two-leg, %d three-leg, %d cross-pool\n",
			len(report.Parlays.TwoLeg), len(report.Parlays.ThreeLeg), len(report.Parlays.CrossPool))
		for _, parlay := range report.Parlays.TwoLeg {
			names := make([]string, 0, len(parlay.Legs))
			for _, leg := range parlay.Legs {
				names = append(names, leg.PredictedWinner)
			}
			fmt.Printf("  %s  conf %.0f%%  return %s\n",
				strings.Join(names, " + "), parlay.CombinedConfidence, parlay.PotentialReturn)
		}
	}
	fmt.Println()
}
