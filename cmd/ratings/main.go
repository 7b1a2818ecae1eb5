// Package main provides the entry point for rating sweeps and offseason
// regression.
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
		season     = flag.Int("season", 0, "Season to sweep (0 = current)")
		lookback   = flag.Int("lookback", 0, "Sweep lookback in days (0 = configured value)")
		regress    = flag.Bool("regress", false, "Run offseason regression instead of a sweep")
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

	ratings, err := service.NewRatingService(repos, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize rating service")
	}

	profiles := selectProfiles(cfg, *sport, appLog)
	lookbackDays := *lookback
	if lookbackDays <= 0 {
		lookbackDays = cfg.Rating.SweepLookbackDays
	}

	for _, profile := range profiles {
		if *regress {
			result, err := ratings.RunRegression(ctx, profile)
			if err != nil {
				appLog.WithFields(logrus.Fields{"sport": profile.Sport, "error": err}).
					Error("Regression failed")
				continue
			}
			appLog.WithFields(logrus.Fields{
				"sport":    profile.Sport,
				"teams":    result.Teams,
				"pitchers": result.Pitchers,
			}).Info("Offseason regression complete")
			continue
		}

		sweepSeason := *season
		if sweepSeason == 0 {
			sweepSeason = profile.CurrentSeason(time.Now())
		}
		result, err := ratings.RunSweep(ctx, profile, sweepSeason, lookbackDays)
		if err != nil {
			appLog.WithFields(logrus.Fields{"sport": profile.Sport, "error": err}).
				Error("Sweep failed")
			continue
		}
		appLog.WithFields(logrus.Fields{
			"sport":     profile.Sport,
			"season":    sweepSeason,
			"processed": result.Processed,
			"skipped":   result.Skipped,
			"failed":    result.Failed,
		}).Info("Rating sweep complete")
	}
}

func selectProfiles(cfg *config.Config, sport string, appLog *logrus.Logger) []sports.Profile {
	if sport == "" {
		return cfg.AllProfiles()
	}
	profile, err := cfg.ProfileFor(sport)
	if err != nil {
		appLog.WithField("sport", sport).Fatal("Unknown sport")
	}
	return []sports.Profile{profile}
}
