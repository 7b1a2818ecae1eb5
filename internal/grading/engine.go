// Package grading compares predictions and player prop lines against
// realized outcomes. Grading is idempotent: re-grading overwrites prior
// values rather than duplicating them.
package grading

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Christbey/picksports-sub004/internal/models"
)

// pushTolerance decides winner_correct when the actual spread is exactly
// zero: a near-pick-em prediction is treated as a push, not a miss.
const pushTolerance = 0.5

// GradeStore persists grading fields on a prediction
type GradeStore interface {
	GetByGameID(ctx context.Context, gameID uuid.UUID) (*models.Prediction, error)
	SaveGrading(ctx context.Context, pred *models.Prediction) error
}

// Engine grades predictions against final scores
type Engine struct {
	store  GradeStore
	logger *logrus.Logger
}

// NewEngine creates a grading engine
func NewEngine(store GradeStore, logger *logrus.Logger) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("grade store is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{store: store, logger: logger}, nil
}

// Grade writes the grading fields for a finished game's prediction. Games
// that are not final or have no scores are a no-op, never an error.
func (e *Engine) Grade(ctx context.Context, game *models.Game, pred *models.Prediction) error {
	if game == nil || pred == nil {
		return nil
	}
	if !game.IsFinal() || !game.HasScores() {
		return nil
	}

	ApplyGrades(game, pred, time.Now().UTC())

	if err := e.store.SaveGrading(ctx, pred); err != nil {
		return fmt.Errorf("failed to save grading: %w", err)
	}
	return nil
}

// ApplyGrades computes grading fields in place. Split out so batch runners
// and tests can grade without a store.
func ApplyGrades(game *models.Game, pred *models.Prediction, gradedAt time.Time) {
	actualSpread := float64(game.Margin())
	actualTotal := float64(*game.HomeScore + *game.AwayScore)
	spreadError := math.Abs(pred.PredictedSpread - actualSpread)
	totalError := math.Abs(pred.PredictedTotal - actualTotal)
	correct := winnerCorrect(pred.PredictedSpread, actualSpread)

	pred.ActualSpread = &actualSpread
	pred.ActualTotal = &actualTotal
	pred.SpreadError = &spreadError
	pred.TotalError = &totalError
	pred.WinnerCorrect = &correct
	pred.GradedAt = &gradedAt
}

// winnerCorrect compares spread signs. A tied final score is a push: only a
// near-zero predicted spread counts as correct.
func winnerCorrect(predicted, actual float64) bool {
	if actual == 0 {
		return math.Abs(predicted) < pushTolerance
	}
	return (predicted > 0) == (actual > 0)
}
