// Package main provides the entry point for the live scanner daemon.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchpulse/internal/config"
	"github.com/yourusername/matchpulse/internal/database"
	"github.com/yourusername/matchpulse/internal/engine"
	"github.com/yourusername/matchpulse/internal/health"
	"github.com/yourusername/matchpulse/internal/logger"
	"github.com/yourusername/matchpulse/internal/metrics"
	"github.com/yourusername/matchpulse/internal/notifier"
	"github.com/yourusername/matchpulse/internal/provider"
	"github.com/yourusername/matchpulse/internal/repository"
	"github.com/yourusername/matchpulse/internal/scheduler"
	"github.com/yourusername/matchpulse/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
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

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set up logging
	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
	}).Info("MatchPulse scanner starting")

	metrics.InitRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection when persistence is on
	var (
		db    *database.DB
		repos *repository.Repositories
	)
	if cfg.Features.PersistenceEnabled {
		db, err = database.Initialize(ctx, cfg)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()

		repos, err = repository.NewRepositories(db)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to initialize repositories")
		}
		appLog.Info("Database connection established")
	} else {
		appLog.Info("Persistence disabled; predictions will not be stored")
	}

	// Initialize the live data provider
	source, err := provider.NewLiveSource(cfg, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize live data provider")
	}
	appLog.WithField("provider", source.Name()).Info("Live data provider initialized")

	// Initialize the Telegram notifier
	var notif notifier.Notifier = notifier.NoopNotifier{}
	if cfg.Notifier.Enabled {
		tg, err := notifier.NewTelegramNotifier(cfg.Notifier, appLog)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to initialize Telegram notifier")
		}
		notif = tg
		appLog.Info("Telegram notifier initialized")
	} else {
		appLog.Info("Alerts disabled; using no-op notifier")
	}
	defer notif.Close()

	// Build the engine and the scan service
	eng := engine.New(&cfg.Engine, cfg.Features.DixonColesEnabled, appLog)
	scanner := service.NewScannerService(source, eng, repos, notif, cfg.Scanner, cfg.Features, appLog)

	// Settlement needs both persistence and a result-capable provider
	var settler *service.SettlementService
	if repos != nil {
		if results, ok := source.(provider.ResultSource); ok {
			settler = service.NewSettlementService(results, repos, appLog)
		}
	}

	// Register the periodic jobs
	sched := scheduler.NewScheduler(scanner, settler, appLog)
	if err := sched.ScheduleScans(cfg.Scanner.PollIntervalSeconds); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule scan job")
	}
	if settler != nil {
		cronExpr := cfg.Scanner.SettlementCron
		if cronExpr == "" {
			cronExpr = "@every 10m"
		}
		if err := sched.ScheduleSettlement(cronExpr); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule settlement job")
		}
	}

	// Start the health and metrics server
	healthCfg := health.Config{
		ServiceName: cfg.App.Name,
		Port:        fmt.Sprintf("%d", cfg.Metrics.Port),
		MetricsPath: cfg.Metrics.Path,
		Logger:      appLog,
		Source:      source,
	}
	if db != nil {
		healthCfg.DB = db
	}
	healthSrv := health.NewServer(healthCfg)
	if err := healthSrv.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}
	healthSrv.SetReady(true)

	appLog.WithFields(logrus.Fields{
		"poll_interval_seconds": cfg.Scanner.PollIntervalSeconds,
		"persistence":           cfg.Features.PersistenceEnabled,
		"alerts":                cfg.Features.AlertsEnabled,
		"dixon_coles":           cfg.Features.DixonColesEnabled,
		"next_run":              sched.NextRun(),
	}).Info("Scanner is running")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	healthSrv.SetReady(false)
	cancel()

	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error during scheduler shutdown")
	}

	// Give in-flight scans time to finish logging
	time.Sleep(2 * time.Second)

	appLog.Info("MatchPulse scanner shut down successfully")
}
