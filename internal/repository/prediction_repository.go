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

const predictionColumns = `id, game_id, home_win_probability, away_win_probability, predicted_spread, confidence, predicted_winner_id, factors, predicted_at`

// PostgresPredictionRepository implements PredictionRepository for PostgreSQL
type PostgresPredictionRepository struct {
	db *database.DB
}

// NewPostgresPredictionRepository creates a new prediction repository
func NewPostgresPredictionRepository(db *database.DB) PredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

// Create inserts a prediction. One prediction per game; re-running the
// model for a game replaces the stored row.
func (r *PostgresPredictionRepository) Create(ctx context.Context, prediction *models.Prediction) error {
	query := `
		INSERT INTO predictions (` + predictionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (game_id) DO UPDATE SET
			home_win_probability = EXCLUDED.home_win_probability,
			away_win_probability = EXCLUDED.away_win_probability,
			predicted_spread = EXCLUDED.predicted_spread,
			confidence = EXCLUDED.confidence,
			predicted_winner_id = EXCLUDED.predicted_winner_id,
			factors = EXCLUDED.factors,
			predicted_at = EXCLUDED.predicted_at
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		prediction.ID, prediction.GameID,
		prediction.HomeWinProbability, prediction.AwayWinProbability,
		prediction.PredictedSpread, prediction.Confidence,
		prediction.PredictedWinnerID, prediction.Factors, prediction.PredictedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}

	return nil
}

// GetByGameID retrieves the stored prediction for a game
func (r *PostgresPredictionRepository) GetByGameID(ctx context.Context, gameID uuid.UUID) (*models.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE game_id = $1`

	prediction := &models.Prediction{}
	err := r.db.GetPool().QueryRow(ctx, query, gameID).Scan(
		&prediction.ID, &prediction.GameID,
		&prediction.HomeWinProbability, &prediction.AwayWinProbability,
		&prediction.PredictedSpread, &prediction.Confidence,
		&prediction.PredictedWinnerID, &prediction.Factors, &prediction.PredictedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}

	return prediction, nil
}

// GetByDateRange retrieves predictions made within a time window
func (r *PostgresPredictionRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.Prediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		WHERE predicted_at >= $1 AND predicted_at <= $2
		ORDER BY predicted_at ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var predictions []*models.Prediction
	for rows.Next() {
		prediction := &models.Prediction{}
		err := rows.Scan(
			&prediction.ID, &prediction.GameID,
			&prediction.HomeWinProbability, &prediction.AwayWinProbability,
			&prediction.PredictedSpread, &prediction.Confidence,
			&prediction.PredictedWinnerID, &prediction.Factors, &prediction.PredictedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		predictions = append(predictions, prediction)
	}

	return predictions, rows.Err()
}
