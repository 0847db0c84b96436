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

const oddsColumns = `id, game_id, bookmaker, fetched_at, home_moneyline, away_moneyline, home_spread, home_spread_price, away_spread_price, total, over_price, under_price`

// PostgresOddsRepository implements OddsRepository for PostgreSQL
type PostgresOddsRepository struct {
	db *database.DB
}

// NewPostgresOddsRepository creates a new odds repository
func NewPostgresOddsRepository(db *database.DB) OddsRepository {
	return &PostgresOddsRepository{db: db}
}

// Insert inserts a single line snapshot
func (r *PostgresOddsRepository) Insert(ctx context.Context, line *models.OddsLine) error {
	query := `
		INSERT INTO odds_lines (` + oddsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		line.ID, line.GameID, line.Bookmaker, line.FetchedAt,
		line.HomeMoneyline, line.AwayMoneyline,
		line.HomeSpread, line.HomeSpreadPrice, line.AwaySpreadPrice,
		line.Total, line.OverPrice, line.UnderPrice,
	)
	if err != nil {
		return fmt.Errorf("failed to insert odds line: %w", err)
	}

	return nil
}

// InsertBatch inserts multiple line snapshots using COPY
func (r *PostgresOddsRepository) InsertBatch(ctx context.Context, lines []*models.OddsLine) error {
	if len(lines) == 0 {
		return nil
	}

	columns := []string{
		"id", "game_id", "bookmaker", "fetched_at",
		"home_moneyline", "away_moneyline",
		"home_spread", "home_spread_price", "away_spread_price",
		"total", "over_price", "under_price",
	}

	copyFromSource := make([][]interface{}, len(lines))
	for i, l := range lines {
		copyFromSource[i] = []interface{}{
			l.ID, l.GameID, l.Bookmaker, l.FetchedAt,
			l.HomeMoneyline, l.AwayMoneyline,
			l.HomeSpread, l.HomeSpreadPrice, l.AwaySpreadPrice,
			l.Total, l.OverPrice, l.UnderPrice,
		}
	}

	count, err := r.db.GetPool().CopyFrom(ctx, pgx.Identifier{"odds_lines"}, columns, pgx.CopyFromRows(copyFromSource))
	if err != nil {
		return fmt.Errorf("failed to batch insert odds lines: %w", err)
	}

	if count != int64(len(lines)) {
		return fmt.Errorf("inserted %d rows, expected %d", count, len(lines))
	}

	return nil
}

// GetLatestByGame retrieves the newest snapshot per bookmaker for a game
func (r *PostgresOddsRepository) GetLatestByGame(ctx context.Context, gameID uuid.UUID) ([]*models.OddsLine, error) {
	query := `
		SELECT DISTINCT ON (bookmaker) ` + oddsColumns + `
		FROM odds_lines
		WHERE game_id = $1
		ORDER BY bookmaker, fetched_at DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query odds lines: %w", err)
	}
	defer rows.Close()

	var lines []*models.OddsLine
	for rows.Next() {
		line := &models.OddsLine{}
		if err := scanOddsLine(rows, line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

// GetOpeningLine retrieves the earliest snapshot for a game at a bookmaker
func (r *PostgresOddsRepository) GetOpeningLine(ctx context.Context, gameID uuid.UUID, bookmaker string) (*models.OddsLine, error) {
	return r.getEdgeLine(ctx, gameID, bookmaker, "ASC")
}

// GetCurrentLine retrieves the most recent snapshot for a game at a bookmaker
func (r *PostgresOddsRepository) GetCurrentLine(ctx context.Context, gameID uuid.UUID, bookmaker string) (*models.OddsLine, error) {
	return r.getEdgeLine(ctx, gameID, bookmaker, "DESC")
}

func (r *PostgresOddsRepository) getEdgeLine(ctx context.Context, gameID uuid.UUID, bookmaker, direction string) (*models.OddsLine, error) {
	query := `
		SELECT ` + oddsColumns + `
		FROM odds_lines
		WHERE game_id = $1 AND bookmaker = $2
		ORDER BY fetched_at ` + direction + `
		LIMIT 1
	`

	line := &models.OddsLine{}
	row := r.db.GetPool().QueryRow(ctx, query, gameID, bookmaker)
	err := row.Scan(
		&line.ID, &line.GameID, &line.Bookmaker, &line.FetchedAt,
		&line.HomeMoneyline, &line.AwayMoneyline,
		&line.HomeSpread, &line.HomeSpreadPrice, &line.AwaySpreadPrice,
		&line.Total, &line.OverPrice, &line.UnderPrice,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get odds line: %w", err)
	}

	return line, nil
}

func scanOddsLine(rows pgx.Rows, line *models.OddsLine) error {
	err := rows.Scan(
		&line.ID, &line.GameID, &line.Bookmaker, &line.FetchedAt,
		&line.HomeMoneyline, &line.AwayMoneyline,
		&line.HomeSpread, &line.HomeSpreadPrice, &line.AwaySpreadPrice,
		&line.Total, &line.OverPrice, &line.UnderPrice,
	)
	if err != nil {
		return fmt.Errorf("failed to scan odds line: %w", err)
	}
	return nil
}
