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

// PostgresEfficiencyRepository implements EfficiencyRepository for PostgreSQL.
// It also satisfies efficiency.Source.
type PostgresEfficiencyRepository struct {
	db *database.DB
}

// NewPostgresEfficiencyRepository creates a new efficiency repository
func NewPostgresEfficiencyRepository(db *database.DB) EfficiencyRepository {
	return &PostgresEfficiencyRepository{db: db}
}

// ForTeam retrieves a team's efficiency metrics for a season
func (r *PostgresEfficiencyRepository) ForTeam(ctx context.Context, teamID uuid.UUID, season int) (*models.TeamEfficiency, error) {
	query := `
		SELECT id, team_id, season, offensive_rating, defensive_rating,
		       strength_of_schedule, tempo, updated_at
		FROM team_efficiency
		WHERE team_id = $1 AND season = $2
	`

	eff := &models.TeamEfficiency{}
	err := r.db.GetPool().QueryRow(ctx, query, teamID, season).Scan(
		&eff.ID, &eff.TeamID, &eff.Season, &eff.OffensiveRating,
		&eff.DefensiveRating, &eff.StrengthOfSchedule, &eff.Tempo, &eff.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team efficiency: %w", err)
	}
	return eff, nil
}
