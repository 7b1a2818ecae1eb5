package live

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Christbey/picksports-sub004/internal/models"
	"github.com/Christbey/picksports-sub004/internal/prediction"
	"github.com/Christbey/picksports-sub004/internal/sports"
)

// OverlayStore reads the pre-game prediction and writes the live overlay
type OverlayStore interface {
	GetByGameID(ctx context.Context, gameID uuid.UUID) (*models.Prediction, error)
	SetLiveOverlay(ctx context.Context, predictionID uuid.UUID, overlay *models.LiveOverlay) error
	ClearLiveOverlay(ctx context.Context, predictionID uuid.UUID) error
}

// Updater recomputes live win probability on each score/status refresh. Each
// invocation is one bounded read-compute-write; no state is carried between
// calls.
type Updater struct {
	store  OverlayStore
	logger *logrus.Logger
}

// NewUpdater creates a live probability updater
func NewUpdater(store OverlayStore, logger *logrus.Logger) (*Updater, error) {
	if store == nil {
		return nil, fmt.Errorf("overlay store is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Updater{store: store, logger: logger}, nil
}

// Update runs the live state machine for one game:
//
//	scheduled       -> clear any stale overlay, return nil
//	in-progress     -> compute and persist the overlay
//	final/terminal  -> clear the overlay, return nil (idempotent)
func (u *Updater) Update(ctx context.Context, game *models.Game, profile sports.Profile) (*models.LiveOverlay, error) {
	if game == nil {
		return nil, nil
	}

	pred, err := u.store.GetByGameID(ctx, game.ID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load prediction: %w", err)
	}

	if !game.IsLive() {
		if pred.HasLiveOverlay() {
			if err := u.store.ClearLiveOverlay(ctx, pred.ID); err != nil {
				return nil, fmt.Errorf("failed to clear live overlay: %w", err)
			}
		}
		return nil, nil
	}

	if !game.HasScores() {
		return nil, nil
	}

	overlay, err := ComputeOverlay(game, pred, profile)
	if err != nil {
		// Malformed clock state is tolerated; the next poll gets a fresh snapshot
		u.logger.WithFields(logrus.Fields{
			"game_id": game.ID,
			"error":   err,
		}).Debug("Skipping live update")
		return nil, nil
	}

	if err := u.store.SetLiveOverlay(ctx, pred.ID, overlay); err != nil {
		return nil, fmt.Errorf("failed to persist live overlay: %w", err)
	}
	return overlay, nil
}

// ComputeOverlay blends the pre-game prior with the current score state.
// Pure function of its inputs.
func ComputeOverlay(game *models.Game, pred *models.Prediction, profile sports.Profile) (*models.LiveOverlay, error) {
	elapsed, err := ElapsedFraction(game, profile.Clock)
	if err != nil {
		return nil, err
	}

	margin := float64(game.Margin())
	remainingFraction := 1 - elapsed

	p := BlendProbability(pred.WinProbability, margin, elapsed, profile)

	currentTotal := float64(*game.HomeScore + *game.AwayScore)
	overlay := &models.LiveOverlay{
		PredictedSpread: margin + pred.PredictedSpread*remainingFraction,
		PredictedTotal:  currentTotal + pred.PredictedTotal*remainingFraction,
		WinProbability:  p,
		UpdatedAt:       time.Now().UTC(),
	}

	if profile.Clock.OutBased() {
		outs, err := OutsRemaining(game, profile.Clock)
		if err != nil {
			return nil, err
		}
		overlay.OutsRemaining = &outs
	} else {
		seconds, err := SecondsRemaining(game, profile.Clock)
		if err != nil {
			return nil, err
		}
		overlay.SecondsRemaining = &seconds
	}

	return overlay, nil
}

// BlendProbability combines the pre-game prior with a margin term in log-odds
// space. The margin's point value grows with the square of elapsed time while
// the prior's weight decays with its square root, so the score dominates late
// and the prior dominates early. With no time left the probability collapses
// to the clamp bounds (or a coin flip at a tie).
func BlendProbability(preGameProb, margin, elapsed float64, profile sports.Profile) float64 {
	if elapsed >= 1 {
		switch {
		case margin > 0:
			return prediction.MaxProbability
		case margin < 0:
			return prediction.MinProbability
		default:
			return 0.5
		}
	}

	prior := math.Min(prediction.MaxProbability, math.Max(prediction.MinProbability, preGameProb))
	preGameLogOdds := math.Log(prior / (1 - prior))

	pointValue := profile.LivePointBase + profile.LivePointGrowth*elapsed*elapsed
	preGameWeight := 1 - math.Sqrt(elapsed)

	combined := preGameLogOdds*preGameWeight + margin*pointValue
	p := 1 / (1 + math.Exp(-combined))
	return math.Min(prediction.MaxProbability, math.Max(prediction.MinProbability, p))
}
