package elo

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Christbey/picksports-sub004/internal/models"
	"github.com/Christbey/picksports-sub004/internal/sports"
)

// GameSource lists finished games for a sweep in chronological order
type GameSource interface {
	ListFinalByDateRange(ctx context.Context, sport string, season int, from, to time.Time) ([]*models.Game, error)
}

// RateRange rates every finished game for a sport/season between from and to.
// The sweep is strictly ordered and single-threaded: each game's expected
// score depends on ratings as they stood after all earlier games. Independent
// sports or seasons may sweep concurrently with each other.
//
// Per-game failures are logged and counted; the sweep continues.
func (e *Engine) RateRange(ctx context.Context, games GameSource, profile sports.Profile, season int, from, to time.Time) (SweepResult, error) {
	list, err := games.ListFinalByDateRange(ctx, profile.Sport, season, from, to)
	if err != nil {
		return SweepResult{}, fmt.Errorf("failed to load games for sweep: %w", err)
	}

	var result SweepResult
	for _, game := range list {
		res, err := e.Rate(ctx, game, profile, RateOptions{SkipIfExists: true})
		if err != nil {
			result.Failed++
			e.logger.WithFields(logrus.Fields{
				"game_id": game.ID,
				"error":   err,
			}).Warn("Failed to rate game, continuing sweep")
			continue
		}
		switch res.Outcome {
		case OutcomeRated:
			result.Processed++
		case OutcomeSkipped:
			result.Skipped++
		}
	}

	e.logger.WithFields(logrus.Fields{
		"sport":     profile.Sport,
		"season":    season,
		"processed": result.Processed,
		"skipped":   result.Skipped,
		"failed":    result.Failed,
	}).Info("Rating sweep complete")

	return result, nil
}
