// Package main provides the entry point for the fight analysis service.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/octagon-edge/internal/cache"
	"github.com/yourusername/octagon-edge/internal/config"
	"github.com/yourusername/octagon-edge/internal/database"
	"github.com/yourusername/octagon-edge/internal/datasource"
	"github.com/yourusername/octagon-edge/internal/health"
	"github.com/yourusername/octagon-edge/internal/logger"
	"github.com/yourusername/octagon-edge/internal/market"
	"github.com/yourusername/octagon-edge/internal/metrics"
	"github.com/yourusername/octagon-edge/internal/oddsfeed"
	"github.com/yourusername/octagon-edge/internal/predictor"
	"github.com/yourusername/octagon-edge/internal/repository"
	"github.com/yourusername/octagon-edge/internal/scheduler"
	"github.com/yourusername/octagon-edge/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := config.ValidateEnvironment(cfg); err != nil {
		log.Fatalf("Invalid configuration for environment: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("Octagon Edge analyzer starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	appLog.Info("Database connection established")

	fighterRepo := repository.NewPostgresFighterRepository(db)
	fightRepo := repository.NewPostgresFightRepository(db)
	oddsRepo := repository.NewPostgresOddsRepository(db)

	caches := cache.NewCaches(&cfg.Cache)

	stdLog := log.New(os.Stdout, "datasource: ", log.LstdFlags)
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
		appLog.WithError(err).Fatal("Failed to create stats source")
	}

	var predictions *predictor.CachedClient
	if cfg.Features.PredictionsEnabled {
		predictions = predictor.NewCachedClient(&cfg.Predictor, appLog)
		appLog.WithField("predictor_url", cfg.Predictor.URL).Info("Prediction client initialized")
	}

	analysisLog := logger.NewAnalysisLogger(appLog)
	marketLog := logger.NewMarketLogger(appLog)

	var invalidator service.PredictionInvalidator
	if predictions != nil {
		invalidator = predictions
	}
	statsSvc := service.NewStatsService(fighterRepo, fightRepo, statsSource, nil,
		caches, invalidator, cfg, analysisLog, marketLog)

	oddsClient := oddsfeed.NewClient(&cfg.OddsFeed, httpClient,
		log.New(os.Stdout, "oddsfeed: ", log.LstdFlags))

	var marketSvc *service.MarketService
	if predictions != nil {
		marketSvc = service.NewMarketService(market.NewValueEngine(appLog),
			predictions, oddsRepo, oddsClient, caches, cfg, marketLog)
	}

	var stream *oddsfeed.StreamClient
	if cfg.Features.LiveOddsEnabled && marketSvc != nil {
		stream = oddsfeed.NewStreamClient(cfg.OddsFeed.StreamURL, cfg.OddsFeed.APIKey,
			cfg.OddsFeed.Bookmaker, log.New(os.Stdout, "odds-stream: ", log.LstdFlags))
		stream.AddHandler(marketSvc.HandleStreamQuote)

		if err := stream.ConnectWithRetry(ctx); err != nil {
			appLog.WithError(err).Error("Odds stream unavailable, continuing with polled quotes")
			stream = nil
		} else {
			if err := stream.Authenticate(ctx); err != nil {
				appLog.WithError(err).Error("Odds stream authentication failed")
			}
			if err := stream.Subscribe(ctx); err != nil {
				appLog.WithError(err).Error("Odds stream subscription failed")
			}
			appLog.WithField("bookmaker", cfg.OddsFeed.Bookmaker).Info("Odds stream connected")
		}
	}

	// The poll job backs the stream regardless of stream health
	var sched *scheduler.Scheduler
	if marketSvc != nil {
		sched = scheduler.NewScheduler(statsSvc, log.New(os.Stdout, "scheduler: ", log.LstdFlags))
		if err := sched.ScheduleOddsPolling(cfg.Ingestion.Schedule.OddsPollCron, marketSvc); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule odds polling")
		}
		if err := sched.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start scheduler")
		}
	}

	healthCfg := health.Config{
		ServiceName: "analyzer",
		Version:     Version,
		Commit:      GitCommit,
		Logger:      appLog,
		DB:          db,
	}
	if stream != nil {
		healthCfg.Stream = stream
	}
	healthServer := health.NewServer(healthCfg)
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}
	healthServer.SetReady(true)

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		go func() {
			mux := http.NewServeMux()
			mux.Handle(cfg.Metrics.Path, metrics.Handler())
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			appLog.WithField("addr", addr).Info("Metrics server starting")
			if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
				appLog.WithError(err).Error("Metrics server error")
			}
		}()
	}

	appLog.WithFields(logrus.Fields{
		"live_odds":   cfg.Features.LiveOddsEnabled,
		"predictions": cfg.Features.PredictionsEnabled,
	}).Info("Analyzer running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	cancel()
	if sched != nil {
		if err := sched.Stop(); err != nil {
			appLog.WithError(err).Error("Error stopping scheduler")
		}
	}
	if stream != nil {
		if err := stream.Close(); err != nil {
			appLog.WithError(err).Error("Error closing odds stream")
		}
	}

	time.Sleep(1 * time.Second)
	appLog.Info("Analyzer shut down")
}
