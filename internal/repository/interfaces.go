// Package repository provides PostgreSQL persistence for the prediction core.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Christbey/picksports-sub004/internal/models"
)

// TeamRepository manages canonical team records and current ratings
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListBySport(ctx context.Context, sport string) ([]*models.Team, error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error
}

// PitcherRepository manages individual pitcher ratings (baseball)
type PitcherRepository interface {
	ListBySport(ctx context.Context, sport string) ([]*models.Pitcher, error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error
}

// GameRepository reads game snapshots maintained by score ingestion
type GameRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
	ListFinalByDateRange(ctx context.Context, sport string, season int, from, to time.Time) ([]*models.Game, error)
	ListUpcoming(ctx context.Context, sport string, limit int) ([]*models.Game, error)
	ListLive(ctx context.Context, sport string) ([]*models.Game, error)
	ListFinalUngraded(ctx context.Context, sport string) ([]*models.Game, error)
}

// EloHistoryRepository appends per-game rating snapshots
type EloHistoryRepository interface {
	Create(ctx context.Context, history *models.EloRatingHistory) error
	Exists(ctx context.Context, gameID, teamID uuid.UUID) (bool, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID, limit int) ([]*models.EloRatingHistory, error)
	DeleteByGame(ctx context.Context, gameID uuid.UUID) error
}

// PredictionRepository persists predictions, live overlays, and grades
type PredictionRepository interface {
	Upsert(ctx context.Context, pred *models.Prediction) error
	GetByGameID(ctx context.Context, gameID uuid.UUID) (*models.Prediction, error)
	SetLiveOverlay(ctx context.Context, predictionID uuid.UUID, overlay *models.LiveOverlay) error
	ClearLiveOverlay(ctx context.Context, predictionID uuid.UUID) error
	SaveGrading(ctx context.Context, pred *models.Prediction) error
	AccuracyReport(ctx context.Context, sport string, season *int) ([]models.ReportRow, error)
	ListStaleOverlayGameIDs(ctx context.Context, sport string) ([]uuid.UUID, error)
}

// PropRepository lists and grades player props
type PropRepository interface {
	ListUngraded(ctx context.Context, sport string, season *int) ([]*models.PlayerProp, error)
	SaveGrade(ctx context.Context, prop *models.PlayerProp) error
}

// StatLineRepository reads realized player stat lines
type StatLineRepository interface {
	ListByGame(ctx context.Context, gameID uuid.UUID) ([]*models.PlayerStatLine, error)
}

// GameContextRepository reads precomputed schedule-context adjustments
type GameContextRepository interface {
	ForGame(ctx context.Context, game *models.Game) (*models.GameContext, error)
}

// EfficiencyRepository reads precomputed team efficiency metrics
type EfficiencyRepository interface {
	ForTeam(ctx context.Context, teamID uuid.UUID, season int) (*models.TeamEfficiency, error)
}
