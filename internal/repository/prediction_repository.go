package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Christbey/picksports-sub004/internal/database"
	"github.com/Christbey/picksports-sub004/internal/models"
)

// PostgresPredictionRepository implements PredictionRepository for PostgreSQL
type PostgresPredictionRepository struct {
	db *database.DB
}

// NewPostgresPredictionRepository creates a new prediction repository
func NewPostgresPredictionRepository(db *database.DB) PredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

// Upsert inserts a prediction or refreshes the pre-game fields of an
// existing one. Live and grading fields are untouched here.
func (r *PostgresPredictionRepository) Upsert(ctx context.Context, pred *models.Prediction) error {
	query := `
		INSERT INTO predictions (
			id, game_id, home_elo, away_elo, elo_component, efficiency_component,
			adjustments_sum, predicted_spread, predicted_total, win_probability,
			confidence_score
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (game_id) DO UPDATE SET
			home_elo = EXCLUDED.home_elo,
			away_elo = EXCLUDED.away_elo,
			elo_component = EXCLUDED.elo_component,
			efficiency_component = EXCLUDED.efficiency_component,
			adjustments_sum = EXCLUDED.adjustments_sum,
			predicted_spread = EXCLUDED.predicted_spread,
			predicted_total = EXCLUDED.predicted_total,
			win_probability = EXCLUDED.win_probability,
			confidence_score = EXCLUDED.confidence_score,
			updated_at = NOW()
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		pred.ID, pred.GameID, pred.HomeElo, pred.AwayElo, pred.EloComponent,
		pred.EffComponent, pred.AdjustmentsSum, pred.PredictedSpread,
		pred.PredictedTotal, pred.WinProbability, pred.ConfidenceScore,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert prediction: %w", err)
	}
	return nil
}

// GetByGameID retrieves the prediction for a game
func (r *PostgresPredictionRepository) GetByGameID(ctx context.Context, gameID uuid.UUID) (*models.Prediction, error) {
	query := `
		SELECT id, game_id, home_elo, away_elo, elo_component, efficiency_component,
		       adjustments_sum, predicted_spread, predicted_total, win_probability,
		       confidence_score,
		       live_predicted_spread, live_win_probability, live_predicted_total,
		       live_seconds_remaining, live_outs_remaining, live_updated_at,
		       actual_spread, actual_total, spread_error, total_error,
		       winner_correct, graded_at, created_at, updated_at
		FROM predictions WHERE game_id = $1
	`

	pred := &models.Prediction{}
	err := r.db.GetPool().QueryRow(ctx, query, gameID).Scan(
		&pred.ID, &pred.GameID, &pred.HomeElo, &pred.AwayElo, &pred.EloComponent,
		&pred.EffComponent, &pred.AdjustmentsSum, &pred.PredictedSpread,
		&pred.PredictedTotal, &pred.WinProbability, &pred.ConfidenceScore,
		&pred.LivePredictedSpread, &pred.LiveWinProbability, &pred.LivePredictedTotal,
		&pred.LiveSecondsRemaining, &pred.LiveOutsRemaining, &pred.LiveUpdatedAt,
		&pred.ActualSpread, &pred.ActualTotal, &pred.SpreadError, &pred.TotalError,
		&pred.WinnerCorrect, &pred.GradedAt, &pred.CreatedAt, &pred.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}
	return pred, nil
}

// SetLiveOverlay writes the live fields for an in-progress game
func (r *PostgresPredictionRepository) SetLiveOverlay(ctx context.Context, predictionID uuid.UUID, overlay *models.LiveOverlay) error {
	query := `
		UPDATE predictions SET
			live_predicted_spread = $2,
			live_win_probability = $3,
			live_predicted_total = $4,
			live_seconds_remaining = $5,
			live_outs_remaining = $6,
			live_updated_at = $7,
			updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		predictionID, overlay.PredictedSpread, overlay.WinProbability,
		overlay.PredictedTotal, overlay.SecondsRemaining, overlay.OutsRemaining,
		overlay.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to set live overlay: %w", err)
	}
	return nil
}

// ClearLiveOverlay nulls all live fields. Safe to call repeatedly.
func (r *PostgresPredictionRepository) ClearLiveOverlay(ctx context.Context, predictionID uuid.UUID) error {
	query := `
		UPDATE predictions SET
			live_predicted_spread = NULL,
			live_win_probability = NULL,
			live_predicted_total = NULL,
			live_seconds_remaining = NULL,
			live_outs_remaining = NULL,
			live_updated_at = NULL,
			updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.db.GetPool().Exec(ctx, query, predictionID); err != nil {
		return fmt.Errorf("failed to clear live overlay: %w", err)
	}
	return nil
}

// SaveGrading writes grading fields, overwriting any prior grade
func (r *PostgresPredictionRepository) SaveGrading(ctx context.Context, pred *models.Prediction) error {
	query := `
		UPDATE predictions SET
			actual_spread = $2,
			actual_total = $3,
			spread_error = $4,
			total_error = $5,
			winner_correct = $6,
			graded_at = $7,
			updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		pred.ID, pred.ActualSpread, pred.ActualTotal, pred.SpreadError,
		pred.TotalError, pred.WinnerCorrect, pred.GradedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save grading: %w", err)
	}
	return nil
}

// ListStaleOverlayGameIDs finds games that left an in-progress status while
// their prediction still carries a live overlay. The poller clears these.
func (r *PostgresPredictionRepository) ListStaleOverlayGameIDs(ctx context.Context, sport string) ([]uuid.UUID, error) {
	query := `
		SELECT p.game_id
		FROM predictions p
		JOIN games g ON g.id = p.game_id
		WHERE g.sport = $1
		  AND p.live_updated_at IS NOT NULL
		  AND g.status NOT IN ('in_progress', 'halftime', 'end_period')
	`

	rows, err := r.db.GetPool().Query(ctx, query, sport)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale overlays: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan stale overlay id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AccuracyReport is a read-only rollup over graded predictions grouped by
// sport and season.
func (r *PostgresPredictionRepository) AccuracyReport(ctx context.Context, sport string, season *int) ([]models.ReportRow, error) {
	query := `
		SELECT g.sport, g.season,
		       COUNT(*) AS graded,
		       COUNT(*) FILTER (WHERE p.winner_correct) AS winner_hits,
		       AVG(p.spread_error) AS mean_spread_error,
		       AVG(p.total_error) AS mean_total_error
		FROM predictions p
		JOIN games g ON g.id = p.game_id
		WHERE p.graded_at IS NOT NULL
		  AND g.sport = $1
		  AND ($2::int IS NULL OR g.season = $2)
		GROUP BY g.sport, g.season
		ORDER BY g.season DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, sport, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query accuracy report: %w", err)
	}
	defer rows.Close()

	var report []models.ReportRow
	for rows.Next() {
		var row models.ReportRow
		err := rows.Scan(&row.Sport, &row.Season, &row.Graded, &row.WinnerHits,
			&row.MeanSpreadError, &row.MeanTotalError)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		report = append(report, row)
	}
	return report, rows.Err()
}
