package database

import (
	"context"
	"fmt"

	"github.com/yourusername/hoopsight/internal/config"
)

// requiredTables are the tables the application reads and writes. Initialize
// verifies they exist so a misconfigured database fails fast at startup
// instead of during the first scheduled job.
var requiredTables = []string{
	"teams",
	"games",
	"odds_lines",
	"predictions",
	"value_signals",
	"player_averages",
	"prop_lines",
}

// Initialize creates a database connection pool and verifies the schema
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	missing, err := db.missingTables(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to verify schema: %w", err)
	}
	if len(missing) > 0 {
		db.Close()
		return nil, fmt.Errorf(
			"schema is missing tables %v. Run database migrations: migrate -path migrations -database \"your_dsn\" up",
			missing,
		)
	}

	return db, nil
}

func (db *DB) missingTables(ctx context.Context) ([]string, error) {
	var missing []string
	for _, table := range requiredTables {
		var exists bool
		err := db.pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = 'public' AND table_name = $1)",
			table,
		).Scan(&exists)
		if err != nil {
			return nil, err
		}
		if !exists {
			missing = append(missing, table)
		}
	}
	return missing, nil
}
