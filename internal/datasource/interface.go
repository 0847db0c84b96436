// Package datasource fetches schedule, stats, and market data from
// external providers and normalizes it for the services layer.
package datasource

import (
	"context"
	"errors"
	"time"
)

// StatsProvider defines the interface for fetching schedule and
// statistics data from an external provider
type StatsProvider interface {
	// FetchGames retrieves games (scheduled and final) within the date range
	FetchGames(ctx context.Context, startDate, endDate time.Time) ([]GameData, error)

	// FetchTeamStats retrieves season aggregate stats for every team
	FetchTeamStats(ctx context.Context, seasonYear int) ([]TeamStatsData, error)

	// FetchPlayerAverages retrieves per-stat averages for a team's roster
	FetchPlayerAverages(ctx context.Context, teamCode string) ([]PlayerAveragesData, error)

	// Name returns the name of the provider
	Name() string
}

// OddsProvider defines the interface for fetching bookmaker markets
type OddsProvider interface {
	// FetchGameOdds retrieves current game lines for a calendar day
	FetchGameOdds(ctx context.Context, date time.Time) ([]GameOddsData, error)

	// FetchPropLines retrieves posted player prop markets for a game
	FetchPropLines(ctx context.Context, sourceGameID string) ([]PropLineData, error)

	// Name returns the name of the provider
	Name() string
}

// GameData represents a normalized game from any stats provider
type GameData struct {
	SourceID     string    `json:"source_id"`
	SeasonYear   int       `json:"season_year"`
	GameDate     time.Time `json:"game_date"`
	HomeTeamCode string    `json:"home_team_code"`
	AwayTeamCode string    `json:"away_team_code"`
	HomeScore    *int      `json:"home_score"`
	AwayScore    *int      `json:"away_score"`
	IsPlayoff    bool      `json:"is_playoff"`
	Status       string    `json:"status"`
}

// TeamStatsData represents normalized season aggregates for one team.
// The four-factor inputs feed pace estimation.
type TeamStatsData struct {
	TeamCode           string  `json:"team_code"`
	GamesPlayed        int     `json:"games_played"`
	PointsScored       float64 `json:"points_scored"`
	PointsAllowed      float64 `json:"points_allowed"`
	FieldGoalAttempts  float64 `json:"field_goal_attempts"`
	OffensiveRebounds  float64 `json:"offensive_rebounds"`
	Turnovers          float64 `json:"turnovers"`
	FreeThrowAttempts  float64 `json:"free_throw_attempts"`
	OpponentWinPct     float64 `json:"opponent_win_pct"`
}

// PlayerAveragesData represents normalized per-stat averages for one
// player. BPM is the season Box Plus/Minus; Status carries the
// provider's availability designation ("out" when ruled out).
type PlayerAveragesData struct {
	PlayerID      string  `json:"player_id"`
	PlayerName    string  `json:"player_name"`
	TeamCode      string  `json:"team_code"`
	StatType      string  `json:"stat_type"`
	SeasonAverage float64 `json:"season_average"`
	RecentAverage float64 `json:"recent_average"`
	GamesPlayed   int     `json:"games_played"`
	SeasonMinutes float64 `json:"season_minutes"`
	BPM           float64 `json:"bpm"`
	Status        string  `json:"status"`
}

// GameOddsData represents a normalized market snapshot for one game at
// one bookmaker. Nil pointers mark markets the book is not offering.
type GameOddsData struct {
	SourceGameID    string    `json:"source_game_id"`
	HomeTeamCode    string    `json:"home_team_code"`
	AwayTeamCode    string    `json:"away_team_code"`
	Bookmaker       string    `json:"bookmaker"`
	FetchedAt       time.Time `json:"fetched_at"`
	HomeMoneyline   *int      `json:"home_moneyline"`
	AwayMoneyline   *int      `json:"away_moneyline"`
	HomeSpread      *float64  `json:"home_spread"`
	HomeSpreadPrice *int      `json:"home_spread_price"`
	AwaySpreadPrice *int      `json:"away_spread_price"`
	Total           *float64  `json:"total"`
	OverPrice       *int      `json:"over_price"`
	UnderPrice      *int      `json:"under_price"`
}

// PropLineData represents a normalized player prop market
type PropLineData struct {
	SourceGameID string    `json:"source_game_id"`
	PlayerID     string    `json:"player_id"`
	PlayerName   string    `json:"player_name"`
	StatType     string    `json:"stat_type"`
	Line         float64   `json:"line"`
	OverPrice    *int      `json:"over_price"`
	UnderPrice   *int      `json:"under_price"`
	Bookmaker    string    `json:"bookmaker"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Provider name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
)

// Error constructors
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("data not found")
	ErrInvalidData          = errors.New("invalid data format")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
