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

// PostgresTeamRepository implements TeamRepository for PostgreSQL
type PostgresTeamRepository struct {
	db *database.DB
}

// NewPostgresTeamRepository creates a new team repository
func NewPostgresTeamRepository(db *database.DB) TeamRepository {
	return &PostgresTeamRepository{db: db}
}

const teamColumns = "id, code, name, conference, rating, pace_rating, net_rating, defensive_rank, updated_at"

// Create inserts a new team
func (r *PostgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (id, code, name, conference, rating, pace_rating, net_rating, defensive_rank, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		team.ID, team.Code, team.Name, team.Conference, team.Rating,
		team.PaceRating, team.NetRating, team.DefensiveRank, team.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert team: %w", err)
	}

	return nil
}

// GetByID retrieves a team by its ID
func (r *PostgresTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM teams WHERE id = $1`, teamColumns)

	team := &models.Team{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&team.ID, &team.Code, &team.Name, &team.Conference, &team.Rating,
		&team.PaceRating, &team.NetRating, &team.DefensiveRank, &team.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return team, nil
}

// GetByCode retrieves a team by its three-letter code
func (r *PostgresTeamRepository) GetByCode(ctx context.Context, code string) (*models.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM teams WHERE code = $1`, teamColumns)

	team := &models.Team{}
	err := r.db.GetPool().QueryRow(ctx, query, code).Scan(
		&team.ID, &team.Code, &team.Name, &team.Conference, &team.Rating,
		&team.PaceRating, &team.NetRating, &team.DefensiveRank, &team.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team by code: %w", err)
	}

	return team, nil
}

// List retrieves all teams ordered by code
func (r *PostgresTeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM teams ORDER BY code ASC`, teamColumns)

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		team := &models.Team{}
		err := rows.Scan(
			&team.ID, &team.Code, &team.Name, &team.Conference, &team.Rating,
			&team.PaceRating, &team.NetRating, &team.DefensiveRank, &team.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// UpdateRating persists a new rating for a team
func (r *PostgresTeamRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	query := `UPDATE teams SET rating = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.db.GetPool().Exec(ctx, query, rating, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update team rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// UpdateStatsProfile persists the season-stat derived figures for a
// team: pace, SOS-adjusted net rating, and defensive rank.
func (r *PostgresTeamRepository) UpdateStatsProfile(ctx context.Context, id uuid.UUID, paceRating, netRating float64, defensiveRank int) error {
	query := `UPDATE teams SET pace_rating = $1, net_rating = $2, defensive_rank = $3, updated_at = $4 WHERE id = $5`

	tag, err := r.db.GetPool().Exec(ctx, query, paceRating, netRating, defensiveRank, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update team stats profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
