// Package main provides the entry point for the pre-game prediction builder.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Christbey/picksports-sub004/internal/config"
	"github.com/Christbey/picksports-sub004/internal/database"
	"github.com/Christbey/picksports-sub004/internal/efficiency"
	"github.com/Christbey/picksports-sub004/internal/logger"
	"github.com/Christbey/picksports-sub004/internal/metrics"
	"github.com/Christbey/picksports-sub004/internal/repository"
	"github.com/Christbey/picksports-sub004/internal/service"
	"github.com/Christbey/picksports-sub004/internal/sports"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to configuration file")
		sport      = flag.String("sport", "", "Sport to process (empty = all configured sports)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
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
	metrics.InitRegistry()

	ctx := context.Background()
	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() {
		if err := db.Close(ctx); err != nil {
			appLog.WithError(err).Error("Failed to close database connection")
		}
	}()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize repositories")
	}

	preds, err := service.NewPredictionService(repos, buildEfficiencySource(cfg, repos, appLog), repos.Context, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize prediction service")
	}

	var profiles []sports.Profile
	if *sport == "" {
		profiles = cfg.AllProfiles()
	} else {
		profile, err := cfg.ProfileFor(*sport)
		if err != nil {
			appLog.WithField("sport", *sport).Fatal("Unknown sport")
		}
		profiles = []sports.Profile{profile}
	}

	for _, profile := range profiles {
		result, err := preds.BuildPredictions(ctx, profile)
		if err != nil {
			appLog.WithFields(logrus.Fields{"sport": profile.Sport, "error": err}).
				Error("Prediction build failed")
			continue
		}
		appLog.WithFields(logrus.Fields{
			"sport":     profile.Sport,
			"processed": result.Processed,
			"skipped":   result.Skipped,
			"failed":    result.Failed,
		}).Info("Predictions built")
	}
}

// buildEfficiencySource prefers the HTTP stats service when configured,
// falling back to the Postgres snapshot table.
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
