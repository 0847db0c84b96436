package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/hoopsight/internal/database"
	"github.com/yourusername/hoopsight/internal/models"
)

// PostgresPropRepository implements PropRepository for PostgreSQL
type PostgresPropRepository struct {
	db *database.DB
}

// NewPostgresPropRepository creates a new prop repository
func NewPostgresPropRepository(db *database.DB) PropRepository {
	return &PostgresPropRepository{db: db}
}

const averagesColumns = "player_id, team_id, stat_type, season_average, recent_average, games_played, season_minutes, bpm, status, updated_at"

// UpsertAverages inserts or refreshes a player's per-stat averages
func (r *PostgresPropRepository) UpsertAverages(ctx context.Context, averages *models.PlayerAverages) error {
	query := `
		INSERT INTO player_averages (player_id, team_id, stat_type, season_average, recent_average, games_played, season_minutes, bpm, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (player_id, stat_type) DO UPDATE SET
			team_id = EXCLUDED.team_id,
			season_average = EXCLUDED.season_average,
			recent_average = EXCLUDED.recent_average,
			games_played = EXCLUDED.games_played,
			season_minutes = EXCLUDED.season_minutes,
			bpm = EXCLUDED.bpm,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		averages.PlayerID, averages.TeamID, averages.StatType,
		averages.SeasonAverage, averages.RecentAverage,
		averages.GamesPlayed, averages.SeasonMinutes,
		averages.BPM, averages.Status, averages.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert player averages: %w", err)
	}

	return nil
}

// GetAverages retrieves a player's averages for one stat type
func (r *PostgresPropRepository) GetAverages(ctx context.Context, playerID, statType string) (*models.PlayerAverages, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM player_averages
		WHERE player_id = $1 AND stat_type = $2
	`, averagesColumns)

	averages := &models.PlayerAverages{}
	err := r.db.GetPool().QueryRow(ctx, query, playerID, statType).Scan(
		&averages.PlayerID, &averages.TeamID, &averages.StatType,
		&averages.SeasonAverage, &averages.RecentAverage,
		&averages.GamesPlayed, &averages.SeasonMinutes,
		&averages.BPM, &averages.Status, &averages.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player averages: %w", err)
	}

	return averages, nil
}

// ListAveragesByTeam retrieves one row per rostered player for a team.
// Averages are stored per stat type, so minutes, BPM, and status repeat
// across a player's rows; the freshest row per player wins.
func (r *PostgresPropRepository) ListAveragesByTeam(ctx context.Context, teamID uuid.UUID) ([]*models.PlayerAverages, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT ON (player_id) %s
		FROM player_averages
		WHERE team_id = $1
		ORDER BY player_id, updated_at DESC
	`, averagesColumns)

	rows, err := r.db.GetPool().Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query team averages: %w", err)
	}
	defer rows.Close()

	var roster []*models.PlayerAverages
	for rows.Next() {
		averages := &models.PlayerAverages{}
		err := rows.Scan(
			&averages.PlayerID, &averages.TeamID, &averages.StatType,
			&averages.SeasonAverage, &averages.RecentAverage,
			&averages.GamesPlayed, &averages.SeasonMinutes,
			&averages.BPM, &averages.Status, &averages.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player averages: %w", err)
		}
		roster = append(roster, averages)
	}

	return roster, rows.Err()
}

// InsertPropLine inserts a posted prop market
func (r *PostgresPropRepository) InsertPropLine(ctx context.Context, line *models.PropLine) error {
	query := `
		INSERT INTO prop_lines (id, game_id, player_id, stat_type, line, over_price, under_price, bookmaker, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		line.ID, line.GameID, line.PlayerID, line.StatType, line.Line,
		line.OverPrice, line.UnderPrice, line.Bookmaker, line.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert prop line: %w", err)
	}

	return nil
}

// GetPropLinesByGame retrieves the latest prop line per player and stat for a game
func (r *PostgresPropRepository) GetPropLinesByGame(ctx context.Context, gameID uuid.UUID) ([]*models.PropLine, error) {
	query := `
		SELECT DISTINCT ON (player_id, stat_type, bookmaker)
			id, game_id, player_id, stat_type, line, over_price, under_price, bookmaker, fetched_at
		FROM prop_lines
		WHERE game_id = $1
		ORDER BY player_id, stat_type, bookmaker, fetched_at DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query prop lines: %w", err)
	}
	defer rows.Close()

	var lines []*models.PropLine
	for rows.Next() {
		line := &models.PropLine{}
		err := rows.Scan(
			&line.ID, &line.GameID, &line.PlayerID, &line.StatType, &line.Line,
			&line.OverPrice, &line.UnderPrice, &line.Bookmaker, &line.FetchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prop line: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}
