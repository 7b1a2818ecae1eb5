package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Christbey/picksports-sub004/internal/efficiency"
	"github.com/Christbey/picksports-sub004/internal/metrics"
	"github.com/Christbey/picksports-sub004/internal/prediction"
	"github.com/Christbey/picksports-sub004/internal/repository"
	"github.com/Christbey/picksports-sub004/internal/sports"
)

// upcomingBatchLimit bounds one prediction build so a backlogged slate
// cannot starve the other scheduled jobs.
const upcomingBatchLimit = 500

// BatchResult reports one batch run of an embarrassingly parallel job
type BatchResult struct {
	Processed int
	Skipped   int
	Failed    int
}

// PredictionService builds pre-game predictions for upcoming games
type PredictionService struct {
	generator *prediction.Generator
	repos     *repository.Repositories
	logger    *logrus.Logger
}

// NewPredictionService creates a prediction service. The efficiency source
// is typically the cached HTTP provider or the Postgres repository.
func NewPredictionService(repos *repository.Repositories, eff efficiency.Source, gameCtx prediction.ContextSource, logger *logrus.Logger) (*PredictionService, error) {
	if repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	if eff == nil {
		eff = repos.Efficiency
	}
	gen, err := prediction.NewGenerator(repos.Team, eff, gameCtx, logger)
	if err != nil {
		return nil, err
	}
	return &PredictionService{generator: gen, repos: repos, logger: logger}, nil
}

// Generator exposes the underlying generator for single-game calls
func (s *PredictionService) Generator() *prediction.Generator {
	return s.generator
}

// BuildPredictions generates and upserts predictions for every upcoming game
// of a sport. Per-game failures are counted, not fatal.
func (s *PredictionService) BuildPredictions(ctx context.Context, profile sports.Profile) (BatchResult, error) {
	games, err := s.repos.Game.ListUpcoming(ctx, profile.Sport, upcomingBatchLimit)
	if err != nil {
		return BatchResult{}, fmt.Errorf("failed to list upcoming games: %w", err)
	}

	var result BatchResult
	for _, game := range games {
		pred, err := s.generator.Generate(ctx, game, profile)
		if err != nil {
			result.Failed++
			s.logger.WithFields(logrus.Fields{"game_id": game.ID, "error": err}).
				Warn("Failed to generate prediction, continuing")
			continue
		}
		if pred == nil {
			result.Skipped++
			continue
		}
		if err := s.repos.Prediction.Upsert(ctx, pred); err != nil {
			result.Failed++
			s.logger.WithFields(logrus.Fields{"game_id": game.ID, "error": err}).
				Warn("Failed to store prediction, continuing")
			continue
		}
		result.Processed++
	}

	metrics.PredictionsGeneratedTotal.WithLabelValues(profile.Sport).Add(float64(result.Processed))
	metrics.BatchFailuresTotal.WithLabelValues("prediction_build").Add(float64(result.Failed))

	s.logger.WithFields(logrus.Fields{
		"sport":     profile.Sport,
		"processed": result.Processed,
		"skipped":   result.Skipped,
		"failed":    result.Failed,
	}).Info("Prediction build complete")

	return result, nil
}
