// Package service wires the numerical engines to storage, metrics, and the
// overlay stream as schedulable batch jobs.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Christbey/picksports-sub004/internal/elo"
	"github.com/Christbey/picksports-sub004/internal/metrics"
	"github.com/Christbey/picksports-sub004/internal/repository"
	"github.com/Christbey/picksports-sub004/internal/sports"
)

// RatingService runs chronological rating sweeps and offseason regression
type RatingService struct {
	engine *elo.Engine
	repos  *repository.Repositories
	logger *logrus.Logger
}

// NewRatingService creates a rating service
func NewRatingService(repos *repository.Repositories, logger *logrus.Logger) (*RatingService, error) {
	if repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	engine, err := elo.NewEngine(repos.Team, repos.EloHistory, repos.Pitcher, logger)
	if err != nil {
		return nil, err
	}
	return &RatingService{engine: engine, repos: repos, logger: logger}, nil
}

// Engine exposes the underlying Elo engine for single-game operations
func (s *RatingService) Engine() *elo.Engine {
	return s.engine
}

// RunSweep rates all unrated finished games for a sport over the lookback
// window. Seasons are swept independently; within one sweep the order is
// strictly chronological.
func (s *RatingService) RunSweep(ctx context.Context, profile sports.Profile, season int, lookbackDays int) (elo.SweepResult, error) {
	start := time.Now()
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -lookbackDays)

	result, err := s.engine.RateRange(ctx, s.repos.Game, profile, season, from, to)
	if err != nil {
		return result, err
	}

	metrics.GamesRatedTotal.WithLabelValues(profile.Sport).Add(float64(result.Processed))
	metrics.GamesSkippedTotal.WithLabelValues(profile.Sport).Add(float64(result.Skipped))
	metrics.BatchFailuresTotal.WithLabelValues("rating_sweep").Add(float64(result.Failed))
	metrics.SweepDuration.WithLabelValues(profile.Sport).Observe(time.Since(start).Seconds())

	return result, nil
}

// RunRegression applies offseason regression for one sport
func (s *RatingService) RunRegression(ctx context.Context, profile sports.Profile) (elo.RegressionResult, error) {
	return s.engine.RegressSeason(ctx, profile)
}
