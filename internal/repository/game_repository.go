package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/hoopsight/internal/database"
	"github.com/yourusername/hoopsight/internal/models"
)

const gameColumns = `id, season_year, game_date, home_team_id, away_team_id, home_score, away_score, is_playoff, status`

// PostgresGameRepository implements GameRepository for PostgreSQL
type PostgresGameRepository struct {
	db *database.DB
}

// NewPostgresGameRepository creates a new game repository
func NewPostgresGameRepository(db *database.DB) GameRepository {
	return &PostgresGameRepository{db: db}
}

// Upsert inserts a game or refreshes its schedule fields if it already exists
func (r *PostgresGameRepository) Upsert(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (id, season_year, game_date, home_team_id, away_team_id, home_score, away_score, is_playoff, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			game_date = EXCLUDED.game_date,
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			is_playoff = EXCLUDED.is_playoff,
			status = EXCLUDED.status
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		game.ID, game.SeasonYear, game.GameDate, game.HomeTeamID, game.AwayTeamID,
		game.HomeScore, game.AwayScore, game.IsPlayoff, game.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	return nil
}

// GetByID retrieves a game by its ID
func (r *PostgresGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	game := &models.Game{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&game.ID, &game.SeasonYear, &game.GameDate, &game.HomeTeamID, &game.AwayTeamID,
		&game.HomeScore, &game.AwayScore, &game.IsPlayoff, &game.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GetByDate retrieves all games scheduled on a calendar day
func (r *PostgresGameRepository) GetByDate(ctx context.Context, date time.Time) ([]*models.Game, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE game_date >= $1 AND game_date < $2
		ORDER BY game_date ASC
	`

	return r.queryGames(ctx, query, dayStart, dayEnd)
}

// GetFinalsBySeason retrieves completed games for a season in chronological order.
// This ordering is what the rating rebuild depends on.
func (r *PostgresGameRepository) GetFinalsBySeason(ctx context.Context, seasonYear int) ([]*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE season_year = $1 AND status = $2
		ORDER BY game_date ASC, id ASC
	`

	return r.queryGames(ctx, query, seasonYear, models.GameStatusFinal)
}

// GetRecentFinalsByTeam retrieves a team's most recent completed games before a cutoff
func (r *PostgresGameRepository) GetRecentFinalsByTeam(ctx context.Context, teamID uuid.UUID, before time.Time, limit int) ([]*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE (home_team_id = $1 OR away_team_id = $1)
		  AND status = $2 AND game_date < $3
		ORDER BY game_date DESC
		LIMIT $4
	`

	return r.queryGames(ctx, query, teamID, models.GameStatusFinal, before, limit)
}

// GetHeadToHead retrieves completed meetings between two teams in a season
func (r *PostgresGameRepository) GetHeadToHead(ctx context.Context, teamA, teamB uuid.UUID, seasonYear int) ([]*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE season_year = $1 AND status = $2
		  AND ((home_team_id = $3 AND away_team_id = $4) OR (home_team_id = $4 AND away_team_id = $3))
		ORDER BY game_date ASC
	`

	return r.queryGames(ctx, query, seasonYear, models.GameStatusFinal, teamA, teamB)
}

// UpdateResult records a final score and marks the game final
func (r *PostgresGameRepository) UpdateResult(ctx context.Context, id uuid.UUID, homeScore, awayScore int) error {
	query := `UPDATE games SET home_score = $1, away_score = $2, status = $3 WHERE id = $4`

	tag, err := r.db.GetPool().Exec(ctx, query, homeScore, awayScore, models.GameStatusFinal, id)
	if err != nil {
		return fmt.Errorf("failed to update game result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *PostgresGameRepository) queryGames(ctx context.Context, query string, args ...interface{}) ([]*models.Game, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game := &models.Game{}
		err := rows.Scan(
			&game.ID, &game.SeasonYear, &game.GameDate, &game.HomeTeamID, &game.AwayTeamID,
			&game.HomeScore, &game.AwayScore, &game.IsPlayoff, &game.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}
