// Package main provides the grading CLI: prediction grading, prop grading,
// and accuracy reporting.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Christbey/picksports-sub004/internal/config"
	"github.com/Christbey/picksports-sub004/internal/database"
	"github.com/Christbey/picksports-sub004/internal/logger"
	"github.com/Christbey/picksports-sub004/internal/metrics"
	"github.com/Christbey/picksports-sub004/internal/repository"
	"github.com/Christbey/picksports-sub004/internal/service"
	"github.com/Christbey/picksports-sub004/internal/sports"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	sportFlag  string
	seasonFlag int

	appLog  *logrus.Logger
	cfg     *config.Config
	db      *database.DB
	grading *service.GradingService
)

var rootCmd = &cobra.Command{
	Use:   "grader",
	Short: "Grade predictions and player props against final results",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			if err := db.Close(context.Background()); err != nil {
				appLog.WithError(err).Error("Failed to close database connection")
			}
		}
	},
}

var predictionsCmd = &cobra.Command{
	Use:   "predictions",
	Short: "Grade predictions for finished games",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := batchContext()
		defer cancel()

		for _, profile := range selectedProfiles() {
			result, err := grading.GradePredictions(ctx, profile)
			if err != nil {
				return fmt.Errorf("grading %s predictions: %w", profile.Sport, err)
			}
			fmt.Printf("%s: graded=%d skipped=%d failed=%d\n",
				profile.Sport, result.Processed, result.Skipped, result.Failed)
		}
		return nil
	},
}

var propsCmd = &cobra.Command{
	Use:   "props",
	Short: "Grade player props for finished games",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := batchContext()
		defer cancel()

		for _, profile := range selectedProfiles() {
			result, err := grading.GradeProps(ctx, profile, seasonArg())
			if err != nil {
				return fmt.Errorf("grading %s props: %w", profile.Sport, err)
			}
			fmt.Printf("%s: graded=%d unmatched=%d failed=%d hit_rate=%.3f avg_error=%.2f\n",
				profile.Sport, result.Graded, result.Unmatched, result.Failed,
				result.HitRate, result.AvgError)
		}
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show prediction accuracy by sport and season",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := batchContext()
		defer cancel()

		for _, profile := range selectedProfiles() {
			rows, err := grading.AccuracyReport(ctx, profile.Sport, seasonArg())
			if err != nil {
				return fmt.Errorf("report for %s: %w", profile.Sport, err)
			}
			if len(rows) == 0 {
				fmt.Printf("%s: no graded predictions\n", profile.Sport)
				continue
			}
			for _, row := range rows {
				hitRate := 0.0
				if row.Graded > 0 {
					hitRate = float64(row.WinnerHits) / float64(row.Graded)
				}
				fmt.Printf("%s %d: graded=%d winner_hit_rate=%.3f mean_spread_error=%.2f mean_total_error=%.2f\n",
					row.Sport, row.Season, row.Graded, hitRate,
					row.MeanSpreadError, row.MeanTotalError)
			}
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("grader %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&sportFlag, "sport", "s", "", "Sport to process (empty = all configured sports)")
	rootCmd.PersistentFlags().IntVar(&seasonFlag, "season", 0, "Season filter (0 = all seasons)")

	rootCmd.AddCommand(predictionsCmd)
	rootCmd.AddCommand(propsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setup() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLog = logger.NewLogger(cfg.App.LogLevel)
	metrics.InitRegistry()

	db, err = database.NewDB(context.Background(), &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	grading, err = service.NewGradingService(repos, appLog)
	if err != nil {
		return fmt.Errorf("failed to initialize grading service: %w", err)
	}
	return nil
}

func selectedProfiles() []sports.Profile {
	if sportFlag == "" {
		return cfg.AllProfiles()
	}
	profile, err := cfg.ProfileFor(sportFlag)
	if err != nil {
		appLog.WithField("sport", sportFlag).Fatal("Unknown sport")
	}
	return []sports.Profile{profile}
}

func seasonArg() *int {
	if seasonFlag == 0 {
		return nil
	}
	return &seasonFlag
}

func batchContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Minute)
}
