package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/hoopsight/internal/database"
	"github.com/yourusername/hoopsight/internal/models"
)

const signalColumns = `id, game_id, bookmaker, bet_type, odds, model_probability, expected_value, edge, kelly_fraction, stake, explanation, line_direction, created_at`

// PostgresValueSignalRepository implements ValueSignalRepository for PostgreSQL
type PostgresValueSignalRepository struct {
	db *database.DB
}

// NewPostgresValueSignalRepository creates a new value signal repository
func NewPostgresValueSignalRepository(db *database.DB) ValueSignalRepository {
	return &PostgresValueSignalRepository{db: db}
}

// Create inserts a value signal
func (r *PostgresValueSignalRepository) Create(ctx context.Context, signal *models.ValueSignal) error {
	query := `
		INSERT INTO value_signals (` + signalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		signal.ID, signal.GameID, signal.Bookmaker, signal.BetType, signal.Odds,
		signal.ModelProbability, signal.ExpectedValue, signal.Edge,
		signal.KellyFraction, signal.Stake, signal.Explanation,
		signal.LineDirection, signal.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert value signal: %w", err)
	}

	return nil
}

// GetByGameID retrieves all signals emitted for a game
func (r *PostgresValueSignalRepository) GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.ValueSignal, error) {
	query := `
		SELECT ` + signalColumns + `
		FROM value_signals
		WHERE game_id = $1
		ORDER BY expected_value DESC
	`

	return r.querySignals(ctx, query, gameID)
}

// GetSince retrieves signals created after a point in time
func (r *PostgresValueSignalRepository) GetSince(ctx context.Context, since time.Time) ([]*models.ValueSignal, error) {
	query := `
		SELECT ` + signalColumns + `
		FROM value_signals
		WHERE created_at >= $1
		ORDER BY created_at ASC
	`

	return r.querySignals(ctx, query, since)
}

func (r *PostgresValueSignalRepository) querySignals(ctx context.Context, query string, args ...interface{}) ([]*models.ValueSignal, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query value signals: %w", err)
	}
	defer rows.Close()

	var signals []*models.ValueSignal
	for rows.Next() {
		signal := &models.ValueSignal{}
		if err := scanSignal(rows, signal); err != nil {
			return nil, err
		}
		signals = append(signals, signal)
	}

	return signals, rows.Err()
}

func scanSignal(rows pgx.Rows, signal *models.ValueSignal) error {
	err := rows.Scan(
		&signal.ID, &signal.GameID, &signal.Bookmaker, &signal.BetType, &signal.Odds,
		&signal.ModelProbability, &signal.ExpectedValue, &signal.Edge,
		&signal.KellyFraction, &signal.Stake, &signal.Explanation,
		&signal.LineDirection, &signal.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to scan value signal: %w", err)
	}
	return nil
}
