// Package main provides the entry point for the stats ingestion service.
package main

import (
	"context"
	"flag"
	"log"
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
	var (
		configPath   = flag.String("config", "config/config.yaml", "path to configuration file")
		once         = flag.Bool("once", false, "run one ingestion pass and exit")
		lookbackDays = flag.Int("lookback", 7, "days of fight history to fetch per run")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		if err := config.LoadSecretsFromAWS(cfg, os.Getenv("AWS_REGION"), os.Getenv("AWS_SECRET_NAME")); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
		"once":        *once,
	}).Info("Octagon Edge ingestion starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	fighterRepo := repository.NewPostgresFighterRepository(db)
	fightRepo := repository.NewPostgresFightRepository(db)

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
	sources, err := factory.NewDataSources(cfg.Ingestion, httpClient)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create data sources")
	}

	statsSvc := service.NewStatsService(fighterRepo, fightRepo, statsSource, sources,
		cache.NewCaches(&cfg.Cache), nil, cfg,
		logger.NewAnalysisLogger(appLog), logger.NewMarketLogger(appLog))

	if *once {
		runOnce(ctx, statsSvc, appLog, *lookbackDays)
		return
	}

	sched := scheduler.NewScheduler(statsSvc, log.New(os.Stdout, "scheduler: ", log.LstdFlags))
	cronExpr := cfg.Ingestion.Schedule.ProfileRefreshCron
	if err := sched.ScheduleProfileRefresh(cronExpr); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule profile refresh")
	}
	if err := sched.ScheduleFightIngestion(cronExpr, *lookbackDays); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule fight ingestion")
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}

	healthServer := health.NewServer(health.Config{
		ServiceName: "ingest",
		Version:     Version,
		Commit:      GitCommit,
		Logger:      appLog,
		DB:          db,
	})
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}
	healthServer.SetReady(true)

	appLog.WithField("next_run", sched.GetNextRun()).Info("Ingestion scheduler running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	cancel()
	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error stopping scheduler")
	}
	appLog.Info("Ingestion shut down")
}

func runOnce(ctx context.Context, statsSvc *service.StatsService, appLog *logrus.Logger, lookbackDays int) {
	since := time.Now().AddDate(0, 0, -lookbackDays)

	ingestMetrics, err := statsSvc.IngestFightRecords(ctx, since)
	if err != nil {
		appLog.WithError(err).Fatal("Fight ingestion failed")
	}
	appLog.WithField("metrics", ingestMetrics.String()).Info("Fight ingestion complete")

	refreshed, failed, err := statsSvc.RefreshStaleProfiles(ctx)
	if err != nil {
		appLog.WithError(err).Fatal("Profile refresh failed")
	}
	appLog.WithFields(logrus.Fields{
		"refreshed": refreshed,
		"failed":    failed,
	}).Info("Profile refresh complete")
}
