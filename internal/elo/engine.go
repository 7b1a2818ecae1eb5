// Package elo implements the per-game rating updater with margin-of-victory
// scaling and strength-of-schedule damping, plus the chronological sweep and
// offseason regression operations built on top of it.
package elo

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Christbey/picksports-sub004/internal/models"
	"github.com/Christbey/picksports-sub004/internal/sports"
)

// TeamStore is the slice of the rating store the engine needs for teams
type TeamStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error
	ListBySport(ctx context.Context, sport string) ([]*models.Team, error)
}

// HistoryStore persists per-game rating snapshots
type HistoryStore interface {
	Exists(ctx context.Context, gameID, teamID uuid.UUID) (bool, error)
	Create(ctx context.Context, history *models.EloRatingHistory) error
}

// PitcherStore is used only by offseason regression for baseball
type PitcherStore interface {
	ListBySport(ctx context.Context, sport string) ([]*models.Pitcher, error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error
}

// RateOptions controls idempotence behavior of a single Rate call
type RateOptions struct {
	// SkipIfExists short-circuits games that already have a history row
	SkipIfExists bool
}

// Engine applies Elo updates for finished games
type Engine struct {
	teams    TeamStore
	history  HistoryStore
	pitchers PitcherStore
	logger   *logrus.Logger
}

// NewEngine creates a rating engine. The pitcher store may be nil for
// deployments without baseball.
func NewEngine(teams TeamStore, history HistoryStore, pitchers PitcherStore, logger *logrus.Logger) (*Engine, error) {
	if teams == nil {
		return nil, fmt.Errorf("team store is required")
	}
	if history == nil {
		return nil, fmt.Errorf("history store is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{teams: teams, history: history, pitchers: pitchers, logger: logger}, nil
}

// Rate applies the Elo update for one finished game. Non-final games and
// games with missing scores are a no-op, not an error; historical batches
// must tolerate partially-ingested data.
func (e *Engine) Rate(ctx context.Context, game *models.Game, profile sports.Profile, opts RateOptions) (RatingResult, error) {
	if game == nil {
		return RatingResult{Outcome: OutcomeNoOp, Reason: "nil game"}, nil
	}
	if !game.IsFinal() {
		return RatingResult{Outcome: OutcomeNoOp, Reason: "game not final"}, nil
	}
	if !game.HasScores() {
		return RatingResult{Outcome: OutcomeNoOp, Reason: "missing scores"}, nil
	}

	if opts.SkipIfExists {
		exists, err := e.history.Exists(ctx, game.ID, game.HomeTeamID)
		if err != nil {
			return RatingResult{}, fmt.Errorf("failed to check rating history: %w", err)
		}
		if exists {
			return RatingResult{Outcome: OutcomeSkipped, Reason: "already rated"}, nil
		}
	}

	home, err := e.teams.GetByID(ctx, game.HomeTeamID)
	if err != nil {
		return RatingResult{}, fmt.Errorf("failed to load home team: %w", err)
	}
	away, err := e.teams.GetByID(ctx, game.AwayTeamID)
	if err != nil {
		return RatingResult{}, fmt.Errorf("failed to load away team: %w", err)
	}

	change := computeChange(home.Rating, away.Rating, game.Margin(), profile)
	newHome := home.Rating + change
	newAway := away.Rating - change

	if err := e.applyUpdate(ctx, game, home, away, newHome, newAway, change); err != nil {
		return RatingResult{}, err
	}

	e.logger.WithFields(logrus.Fields{
		"game_id": game.ID,
		"sport":   game.Sport,
		"change":  change,
	}).Debug("Rated game")

	return RatingResult{
		Outcome:    OutcomeRated,
		HomeChange: change,
		AwayChange: -change,
		HomeRating: newHome,
		AwayRating: newAway,
	}, nil
}

func (e *Engine) applyUpdate(ctx context.Context, game *models.Game, home, away *models.Team, newHome, newAway, change float64) error {
	if err := e.teams.UpdateRating(ctx, home.ID, newHome); err != nil {
		return fmt.Errorf("failed to update home rating: %w", err)
	}
	if err := e.teams.UpdateRating(ctx, away.ID, newAway); err != nil {
		return fmt.Errorf("failed to update away rating: %w", err)
	}

	rows := []*models.EloRatingHistory{
		{ID: uuid.New(), GameID: game.ID, TeamID: home.ID, Rating: newHome, RatingChange: change},
		{ID: uuid.New(), GameID: game.ID, TeamID: away.ID, Rating: newAway, RatingChange: -change},
	}
	for _, row := range rows {
		if err := e.history.Create(ctx, row); err != nil {
			return fmt.Errorf("failed to write rating history: %w", err)
		}
	}
	return nil
}

// computeChange returns the home team's signed rating change. The away
// change is always the exact negation.
func computeChange(homeRating, awayRating float64, margin int, profile sports.Profile) float64 {
	expectedHome := ExpectedScore(homeRating, awayRating, profile.HomeAdvantage)

	actual := 0.5
	switch {
	case margin > 0:
		actual = 1
	case margin < 0:
		actual = 0
	}

	k := profile.BaseKFactor
	k *= movMultiplier(homeRating, awayRating, margin)
	k *= sosDampener(homeRating-awayRating, profile.Dampener)

	return k * (actual - expectedHome)
}

// ExpectedScore is the logistic win expectation for the home side, with the
// home advantage expressed in rating points.
func ExpectedScore(homeRating, awayRating, homeAdvantage float64) float64 {
	return 1 / (1 + math.Pow(10, (awayRating-homeRating-homeAdvantage)/400))
}

// movDenominatorFloor keeps the blowout damping term positive: a rating gap
// of 2200 or more against the winner would otherwise zero or flip the update.
const movDenominatorFloor = 0.2

// movMultiplier scales K up with margin of victory while damping blowouts by
// the winner's rating edge, so beating a weak team badly is not over-rewarded.
func movMultiplier(homeRating, awayRating float64, margin int) float64 {
	if margin == 0 {
		return 1
	}
	winnerEdge := homeRating - awayRating
	if margin < 0 {
		winnerEdge = -winnerEdge
	}
	denom := winnerEdge*0.001 + 2.2
	if denom < movDenominatorFloor {
		denom = movDenominatorFloor
	}
	return math.Log(math.Abs(float64(margin))+1) * (2.2 / denom)
}

// sosDampener shrinks the effective K as the pre-game rating gap widens,
// clamped at the configured floor. Disabled profiles always return 1.
func sosDampener(gap float64, cfg sports.DampenerConfig) float64 {
	if !cfg.Enabled {
		return 1
	}
	d := 1 - math.Abs(gap)/cfg.Span
	if d < cfg.Floor {
		return cfg.Floor
	}
	return d
}
