// Package main provides the entry point for the worker daemon: scheduled
// batch jobs, live polling, metrics, health probes, and the overlay stream.
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

	"github.com/Christbey/picksports-sub004/internal/config"
	"github.com/Christbey/picksports-sub004/internal/database"
	"github.com/Christbey/picksports-sub004/internal/efficiency"
	"github.com/Christbey/picksports-sub004/internal/health"
	"github.com/Christbey/picksports-sub004/internal/logger"
	"github.com/Christbey/picksports-sub004/internal/metrics"
	"github.com/Christbey/picksports-sub004/internal/repository"
	"github.com/Christbey/picksports-sub004/internal/scheduler"
	"github.com/Christbey/picksports-sub004/internal/service"
	"github.com/Christbey/picksports-sub004/internal/stream"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	configPath := os.Getenv("PICKSPORTS_CONFIG")
	cfg, err := config.LoadWithDefaults(configPath)
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

	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"version":     Version,
		"commit":      GitCommit,
		"environment": cfg.App.Environment,
	}).Info("Worker starting")

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.NewDB(rootCtx, &cfg.Database)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			appLog.WithError(err).Error("Failed to close database connection")
		}
	}()
	appLog.Info("Database connection established")

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize repositories")
	}

	metrics.InitRegistry()

	// Overlay stream hub, started only when enabled
	var hub *stream.Hub
	if cfg.Stream.Enabled {
		hub = stream.NewHub(appLog)
		go hub.Run(rootCtx)
		go serveStream(cfg, hub, appLog)
	}

	ratings, err := service.NewRatingService(repos, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize rating service")
	}
	preds, err := service.NewPredictionService(repos, buildEfficiencySource(cfg, repos, appLog), repos.Context, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize prediction service")
	}
	grading, err := service.NewGradingService(repos, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize grading service")
	}

	var publisher service.Publisher
	if hub != nil {
		publisher = hub
	}
	liveSvc, err := service.NewLiveService(repos, publisher, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize live service")
	}

	sched, err := scheduler.New(cfg, ratings, preds, grading, liveSvc, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize scheduler")
	}

	healthSrv := health.NewServer("picksports-worker", Version, cfg.Metrics.Port+1, appLog)
	healthSrv.Register("database", health.DatabaseCheck(db))
	healthSrv.Start(rootCtx)

	if cfg.Metrics.Enabled {
		go serveMetrics(cfg, appLog)
	}

	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}
	healthSrv.SetReady(true)
	appLog.Info("Worker running")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	appLog.WithField("signal", sig.String()).Info("Shutting down")

	healthSrv.SetReady(false)
	sched.Stop()
	cancel()
	appLog.Info("Worker stopped")
}

func serveMetrics(cfg *config.Config, appLog *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())

	addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
	appLog.WithField("addr", addr).Info("Metrics server starting")
	if err := http.ListenAndServe(addr, mux); err != nil {
		appLog.WithError(err).Error("Metrics server error")
	}
}

func serveStream(cfg *config.Config, hub *stream.Hub, appLog *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/v1/stream", hub)

	addr := fmt.Sprintf(":%d", cfg.Stream.Port)
	appLog.WithField("addr", addr).Info("Stream server starting")
	if err := http.ListenAndServe(addr, mux); err != nil {
		appLog.WithError(err).Error("Stream server error")
	}
}

func buildEfficiencySource(cfg *config.Config, repos *repository.Repositories, appLog *logrus.Logger) efficiency.Source {
	if cfg.Efficiency.URL == "" {
		return repos.Efficiency
	}

	clientCfg := efficiency.DefaultClientConfig(cfg.Efficiency.URL)
	clientCfg.APIKey = cfg.Efficiency.APIKey
	clientCfg.Timeout = time.Duration(cfg.Efficiency.TimeoutSeconds) * time.Second
	clientCfg.MaxRetries = cfg.Efficiency.RetryAttempts
	clientCfg.RateLimit = cfg.Efficiency.RateLimit

	client := efficiency.NewClient(clientCfg, appLog)
	return efficiency.NewCachedSource(client, time.Duration(cfg.Efficiency.CacheTTLSeconds)*time.Second)
}
