// Package config provides configuration management for the picksports
// prediction core.
package config

import (
	"fmt"

	"github.com/Christbey/picksports-sub004/internal/sports"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Efficiency EfficiencyConfig `mapstructure:"efficiency" validate:"required"`
	Rating     RatingConfig     `mapstructure:"rating" validate:"required"`
	Live       LiveConfig       `mapstructure:"live" validate:"required"`
	Grading    GradingConfig    `mapstructure:"grading"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
	Stream     StreamConfig     `mapstructure:"stream"`
	Schedule   ScheduleConfig   `mapstructure:"schedule" validate:"required"`
	// Sports overrides the built-in per-sport profiles; sports not listed
	// here use the defaults from internal/sports.
	Sports []sports.Profile `mapstructure:"sports" validate:"dive"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// EfficiencyConfig configures the efficiency metrics provider. When URL is
// empty the Postgres repository is the only source.
type EfficiencyConfig struct {
	URL             string  `mapstructure:"url" validate:"omitempty,url"`
	APIKey          string  `mapstructure:"api_key"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts   int     `mapstructure:"retry_attempts" validate:"gte=0"`
	RateLimit       float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
}

// RatingConfig controls the chronological rating sweep
type RatingConfig struct {
	SweepLookbackDays int `mapstructure:"sweep_lookback_days" validate:"required,gt=0"`
}

// LiveConfig controls the live overlay polling loop
type LiveConfig struct {
	PollIntervalSeconds int     `mapstructure:"poll_interval_seconds" validate:"required,gt=0"`
	PollRateLimit       float64 `mapstructure:"poll_rate_limit" validate:"required,gt=0"`
}

// GradingConfig controls grading batches
type GradingConfig struct {
	PropBatchEnabled bool `mapstructure:"prop_batch_enabled"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// StreamConfig controls the websocket overlay broadcast
type StreamConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
}

// ScheduleConfig holds cron expressions for the worker's batch jobs
type ScheduleConfig struct {
	RatingSweep      string `mapstructure:"rating_sweep" validate:"required"`
	PredictionBuild  string `mapstructure:"prediction_build" validate:"required"`
	GradePredictions string `mapstructure:"grade_predictions" validate:"required"`
	GradeProps       string `mapstructure:"grade_props" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// AllProfiles returns every sport's effective profile: configured overrides
// where present, built-in defaults otherwise.
func (c *Config) AllProfiles() []sports.Profile {
	overridden := make(map[string]sports.Profile, len(c.Sports))
	for _, p := range c.Sports {
		overridden[p.Sport] = p
	}

	base := sports.All()
	profiles := make([]sports.Profile, 0, len(base))
	for _, p := range base {
		if override, ok := overridden[p.Sport]; ok {
			profiles = append(profiles, override)
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles
}

// ProfileFor returns the configured profile for a sport, falling back to the
// built-in defaults for sports without an override.
func (c *Config) ProfileFor(sport string) (sports.Profile, error) {
	for _, p := range c.Sports {
		if p.Sport == sport {
			return p, nil
		}
	}
	return sports.ProfileFor(sport)
}
