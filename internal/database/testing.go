package database

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/yourusername/hoopsight/internal/config"
)

// SetupTestDB creates a test database connection and verifies it.
// Connection parameters come from HOOPSIGHT_TEST_DB_* environment
// variables with local defaults.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Host:               testEnv("HOOPSIGHT_TEST_DB_HOST", "localhost"),
		Port:               testEnvInt("HOOPSIGHT_TEST_DB_PORT", 5432),
		Name:               testEnv("HOOPSIGHT_TEST_DB_NAME", "hoopsight_test"),
		User:               testEnv("HOOPSIGHT_TEST_DB_USER", "hoopsight"),
		Password:           testEnv("HOOPSIGHT_TEST_DB_PASSWORD", "hoopsight"),
		SSLMode:            "disable",
		MaxConnections:     5,
		MaxIdleConnections: 1,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := NewDB(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}

	verifyCtx, verifyCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer verifyCancel()

	if err := db.Ping(verifyCtx); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	return db
}

// TeardownTestDB truncates every table touched by the tests and closes
// the connection.
func TeardownTestDB(t *testing.T, db *DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tables := []string{
		"value_signals",
		"predictions",
		"prop_lines",
		"player_averages",
		"odds_lines",
		"games",
		"teams",
	}
	for _, table := range tables {
		if _, err := db.pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			t.Logf("warning: failed to truncate table %s: %v", table, err)
		}
	}

	db.Close()
}

func testEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
