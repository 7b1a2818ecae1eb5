package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Christbey/picksports-sub004/internal/live"
	"github.com/Christbey/picksports-sub004/internal/metrics"
	"github.com/Christbey/picksports-sub004/internal/models"
	"github.com/Christbey/picksports-sub004/internal/repository"
	"github.com/Christbey/picksports-sub004/internal/sports"
)

// Publisher pushes fresh overlays to connected stream subscribers. A nil
// publisher disables streaming without touching the persistence path.
type Publisher interface {
	Publish(gameID uuid.UUID, overlay *models.LiveOverlay)
}

// LiveService polls in-progress games and maintains the live overlay on
// each game's prediction.
type LiveService struct {
	updater   *live.Updater
	repos     *repository.Repositories
	publisher Publisher
	logger    *logrus.Logger
}

// NewLiveService creates a live polling service
func NewLiveService(repos *repository.Repositories, publisher Publisher, logger *logrus.Logger) (*LiveService, error) {
	if repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	updater, err := live.NewUpdater(repos.Prediction, logger)
	if err != nil {
		return nil, err
	}
	return &LiveService{updater: updater, repos: repos, publisher: publisher, logger: logger}, nil
}

// PollOnce runs one polling cycle for a sport: refresh the overlay of every
// live game, then clear overlays left behind by games that went final
// between polls.
func (s *LiveService) PollOnce(ctx context.Context, profile sports.Profile) (BatchResult, error) {
	start := time.Now()
	defer func() {
		metrics.LivePollDuration.Observe(time.Since(start).Seconds())
	}()

	games, err := s.repos.Game.ListLive(ctx, profile.Sport)
	if err != nil {
		return BatchResult{}, fmt.Errorf("failed to list live games: %w", err)
	}
	metrics.LiveGames.WithLabelValues(profile.Sport).Set(float64(len(games)))

	var result BatchResult
	for _, game := range games {
		overlay, err := s.updater.Update(ctx, game, profile)
		if err != nil {
			result.Failed++
			s.logger.WithFields(logrus.Fields{"game_id": game.ID, "error": err}).
				Warn("Failed to update live overlay, continuing")
			continue
		}
		if overlay == nil {
			result.Skipped++
			continue
		}
		result.Processed++
		metrics.LiveUpdatesTotal.WithLabelValues(profile.Sport).Inc()
		if s.publisher != nil {
			s.publisher.Publish(game.ID, overlay)
		}
	}

	if err := s.clearStaleOverlays(ctx, profile, &result); err != nil {
		return result, err
	}

	metrics.BatchFailuresTotal.WithLabelValues("live_poll").Add(float64(result.Failed))
	return result, nil
}

// clearStaleOverlays runs the updater against games that left live status
// while their prediction still carries an overlay. The updater's own state
// machine performs the clear.
func (s *LiveService) clearStaleOverlays(ctx context.Context, profile sports.Profile, result *BatchResult) error {
	ids, err := s.repos.Prediction.ListStaleOverlayGameIDs(ctx, profile.Sport)
	if err != nil {
		return fmt.Errorf("failed to list stale overlays: %w", err)
	}

	for _, id := range ids {
		game, err := s.repos.Game.GetByID(ctx, id)
		if err != nil {
			result.Failed++
			s.logger.WithFields(logrus.Fields{"game_id": id, "error": err}).
				Warn("Failed to load game for overlay clear, continuing")
			continue
		}
		if _, err := s.updater.Update(ctx, game, profile); err != nil {
			result.Failed++
			s.logger.WithFields(logrus.Fields{"game_id": id, "error": err}).
				Warn("Failed to clear stale overlay, continuing")
			continue
		}
		if s.publisher != nil {
			s.publisher.Publish(id, nil)
		}
	}
	return nil
}
