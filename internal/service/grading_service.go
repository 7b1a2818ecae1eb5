package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Christbey/picksports-sub004/internal/grading"
	"github.com/Christbey/picksports-sub004/internal/metrics"
	"github.com/Christbey/picksports-sub004/internal/models"
	"github.com/Christbey/picksports-sub004/internal/repository"
	"github.com/Christbey/picksports-sub004/internal/sports"
)

// GradingService grades predictions and player props after games finish
type GradingService struct {
	engine     *grading.Engine
	propGrader *grading.PropGrader
	repos      *repository.Repositories
	logger     *logrus.Logger
}

// NewGradingService creates a grading service
func NewGradingService(repos *repository.Repositories, logger *logrus.Logger) (*GradingService, error) {
	if repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	engine, err := grading.NewEngine(repos.Prediction, logger)
	if err != nil {
		return nil, err
	}
	propGrader, err := grading.NewPropGrader(repos.Prop, repos.StatLine, logger)
	if err != nil {
		return nil, err
	}
	return &GradingService{engine: engine, propGrader: propGrader, repos: repos, logger: logger}, nil
}

// GradePredictions grades every finished-but-ungraded game of a sport.
// Games without a prediction are skipped, not failed.
func (s *GradingService) GradePredictions(ctx context.Context, profile sports.Profile) (BatchResult, error) {
	games, err := s.repos.Game.ListFinalUngraded(ctx, profile.Sport)
	if err != nil {
		return BatchResult{}, fmt.Errorf("failed to list ungraded games: %w", err)
	}

	var result BatchResult
	for _, game := range games {
		pred, err := s.repos.Prediction.GetByGameID(ctx, game.ID)
		if errors.Is(err, models.ErrNotFound) {
			result.Skipped++
			continue
		}
		if err != nil {
			result.Failed++
			s.logger.WithFields(logrus.Fields{"game_id": game.ID, "error": err}).
				Warn("Failed to load prediction for grading, continuing")
			continue
		}
		if err := s.engine.Grade(ctx, game, pred); err != nil {
			result.Failed++
			s.logger.WithFields(logrus.Fields{"game_id": game.ID, "error": err}).
				Warn("Failed to grade prediction, continuing")
			continue
		}
		result.Processed++
	}

	metrics.PredictionsGradedTotal.WithLabelValues(profile.Sport).Add(float64(result.Processed))
	metrics.BatchFailuresTotal.WithLabelValues("prediction_grading").Add(float64(result.Failed))

	s.logger.WithFields(logrus.Fields{
		"sport":     profile.Sport,
		"processed": result.Processed,
		"skipped":   result.Skipped,
		"failed":    result.Failed,
	}).Info("Prediction grading complete")

	return result, nil
}

// GradeProps grades every ungraded player prop of a sport
func (s *GradingService) GradeProps(ctx context.Context, profile sports.Profile, season *int) (grading.PropGradeResult, error) {
	result, err := s.propGrader.GradeProps(ctx, profile.Sport, season)
	if err != nil {
		return result, err
	}

	metrics.PropsGradedTotal.WithLabelValues(profile.Sport).Add(float64(result.Graded))
	metrics.PropsUnmatchedTotal.WithLabelValues(profile.Sport).Add(float64(result.Unmatched))
	metrics.BatchFailuresTotal.WithLabelValues("prop_grading").Add(float64(result.Failed))
	if result.Graded > 0 {
		metrics.PropHitRate.WithLabelValues(profile.Sport).Set(result.HitRate)
	}

	return result, nil
}

// AccuracyReport summarizes graded predictions for a sport, one row per
// season. The rollup happens in SQL; this never mutates grading state.
func (s *GradingService) AccuracyReport(ctx context.Context, sport string, season *int) ([]models.ReportRow, error) {
	rows, err := s.repos.Prediction.AccuracyReport(ctx, sport, season)
	if err != nil {
		return nil, fmt.Errorf("failed to build accuracy report: %w", err)
	}
	return rows, nil
}
