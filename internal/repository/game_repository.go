package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Christbey/picksports-sub004/internal/database"
	"github.com/Christbey/picksports-sub004/internal/models"
)

const (
	errScanGame = "failed to scan game: %w"

	gameColumns = `id, sport, season, game_date, home_team_id, away_team_id,
		status, period, clock, outs_recorded, home_score, away_score,
		created_at, updated_at`
)

// PostgresGameRepository implements GameRepository for PostgreSQL
type PostgresGameRepository struct {
	db *database.DB
}

// NewPostgresGameRepository creates a new game repository
func NewPostgresGameRepository(db *database.DB) GameRepository {
	return &PostgresGameRepository{db: db}
}

func scanGame(row pgx.Row) (*models.Game, error) {
	game := &models.Game{}
	err := row.Scan(
		&game.ID, &game.Sport, &game.Season, &game.GameDate,
		&game.HomeTeamID, &game.AwayTeamID, &game.Status, &game.Period,
		&game.Clock, &game.OutsRecorded, &game.HomeScore, &game.AwayScore,
		&game.CreatedAt, &game.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return game, nil
}

// GetByID retrieves a game by ID
func (r *PostgresGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	game, err := scanGame(r.db.GetPool().QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

func (r *PostgresGameRepository) queryGames(ctx context.Context, query string, args ...interface{}) ([]*models.Game, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf(errScanGame, err)
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

// ListFinalByDateRange retrieves finished games for a sweep in chronological
// order. Ordering matters: the rating sweep depends on it.
func (r *PostgresGameRepository) ListFinalByDateRange(ctx context.Context, sport string, season int, from, to time.Time) ([]*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE sport = $1 AND season = $2 AND status = 'final'
		  AND game_date >= $3 AND game_date <= $4
		ORDER BY game_date ASC, id ASC
	`
	return r.queryGames(ctx, query, sport, season, from, to)
}

// ListUpcoming retrieves scheduled games ordered by start time
func (r *PostgresGameRepository) ListUpcoming(ctx context.Context, sport string, limit int) ([]*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE sport = $1 AND status = 'scheduled' AND game_date > NOW()
		ORDER BY game_date ASC
		LIMIT $2
	`
	return r.queryGames(ctx, query, sport, limit)
}

// ListLive retrieves games currently in an in-progress status
func (r *PostgresGameRepository) ListLive(ctx context.Context, sport string) ([]*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE sport = $1 AND status IN ('in_progress', 'halftime', 'end_period')
		ORDER BY game_date ASC
	`
	return r.queryGames(ctx, query, sport)
}

// ListFinalUngraded retrieves finished games whose prediction has not been graded
func (r *PostgresGameRepository) ListFinalUngraded(ctx context.Context, sport string) ([]*models.Game, error) {
	query := `
		SELECT ` + qualifiedGameColumns("g") + `
		FROM games g
		JOIN predictions p ON p.game_id = g.id
		WHERE g.sport = $1 AND g.status = 'final'
		  AND g.home_score IS NOT NULL AND g.away_score IS NOT NULL
		  AND p.graded_at IS NULL
		ORDER BY g.game_date ASC
	`
	return r.queryGames(ctx, query, sport)
}

func qualifiedGameColumns(alias string) string {
	return alias + `.id, ` + alias + `.sport, ` + alias + `.season, ` + alias + `.game_date, ` +
		alias + `.home_team_id, ` + alias + `.away_team_id, ` + alias + `.status, ` +
		alias + `.period, ` + alias + `.clock, ` + alias + `.outs_recorded, ` +
		alias + `.home_score, ` + alias + `.away_score, ` + alias + `.created_at, ` + alias + `.updated_at`
}
