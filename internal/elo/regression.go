package elo

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Christbey/picksports-sub004/internal/models"
	"github.com/Christbey/picksports-sub004/internal/sports"
)

// RegressionResult reports how many ratings an offseason regression touched
type RegressionResult struct {
	Teams    int
	Pitchers int
}

// RegressSeason moves every team rating a profile-configured fraction toward
// the league mean, and pitcher ratings by their own smaller fraction where a
// pitcher store is wired. This is a bulk operation run once per offseason,
// idempotent per invocation, not part of per-game rating.
func (e *Engine) RegressSeason(ctx context.Context, profile sports.Profile) (RegressionResult, error) {
	var result RegressionResult

	teams, err := e.teams.ListBySport(ctx, profile.Sport)
	if err != nil {
		return result, fmt.Errorf("failed to list teams for regression: %w", err)
	}
	for _, team := range teams {
		regressed := regressToward(team.Rating, models.DefaultRating, profile.RegressionFactor)
		if err := e.teams.UpdateRating(ctx, team.ID, regressed); err != nil {
			return result, fmt.Errorf("failed to regress team %s: %w", team.ID, err)
		}
		result.Teams++
	}

	if e.pitchers != nil && profile.PitcherRegressionFactor > 0 {
		pitchers, err := e.pitchers.ListBySport(ctx, profile.Sport)
		if err != nil {
			return result, fmt.Errorf("failed to list pitchers for regression: %w", err)
		}
		for _, pitcher := range pitchers {
			regressed := regressToward(pitcher.Rating, models.DefaultRating, profile.PitcherRegressionFactor)
			if err := e.pitchers.UpdateRating(ctx, pitcher.ID, regressed); err != nil {
				return result, fmt.Errorf("failed to regress pitcher %s: %w", pitcher.ID, err)
			}
			result.Pitchers++
		}
	}

	e.logger.WithFields(logrus.Fields{
		"sport":    profile.Sport,
		"teams":    result.Teams,
		"pitchers": result.Pitchers,
	}).Info("Offseason regression complete")

	return result, nil
}

func regressToward(rating, mean, factor float64) float64 {
	return rating + (mean-rating)*factor
}
