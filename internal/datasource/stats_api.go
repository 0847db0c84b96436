package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const statsSourceName = "stats_api"

// StatsAPIClient implements StatsProvider against the hosted stats API
type StatsAPIClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	logger     *log.Logger
}

// statsAPIGame is the provider's game payload
type statsAPIGame struct {
	ID         string `json:"id"`
	Season     int    `json:"season"`
	Date       string `json:"date"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"visitor_team"`
	HomeScore  *int   `json:"home_team_score"`
	AwayScore  *int   `json:"visitor_team_score"`
	Postseason bool   `json:"postseason"`
	Status     string `json:"status"`
}

// statsAPITeamStats is the provider's season aggregate payload
type statsAPITeamStats struct {
	Team              string  `json:"team"`
	GamesPlayed       int     `json:"games_played"`
	PointsScored      float64 `json:"pts"`
	PointsAllowed     float64 `json:"opp_pts"`
	FieldGoalAttempts float64 `json:"fga"`
	OffensiveRebounds float64 `json:"oreb"`
	Turnovers         float64 `json:"tov"`
	FreeThrowAttempts float64 `json:"fta"`
	OpponentWinPct    float64 `json:"opp_win_pct"`
}

// statsAPIPlayerAverages is the provider's per-player payload
type statsAPIPlayerAverages struct {
	PlayerID      string  `json:"player_id"`
	PlayerName    string  `json:"player_name"`
	Team          string  `json:"team"`
	Stat          string  `json:"stat"`
	SeasonAverage float64 `json:"season_avg"`
	RecentAverage float64 `json:"last10_avg"`
	GamesPlayed   int     `json:"games_played"`
	SeasonMinutes float64 `json:"min"`
	BPM           float64 `json:"bpm"`
	Status        string  `json:"status"`
}

type statsAPIEnvelope[T any] struct {
	Data []T `json:"data"`
}

// NewStatsAPIClient creates a new stats API client
func NewStatsAPIClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, logger *log.Logger) *StatsAPIClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &StatsAPIClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// FetchGames retrieves games within the date range
func (c *StatsAPIClient) FetchGames(ctx context.Context, startDate, endDate time.Time) ([]GameData, error) {
	url := fmt.Sprintf("%s/games?start_date=%s&end_date=%s",
		c.baseURL, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	var payload statsAPIEnvelope[statsAPIGame]
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	games := make([]GameData, 0, len(payload.Data))
	for _, g := range payload.Data {
		gameDate, err := time.Parse(time.RFC3339, g.Date)
		if err != nil {
			c.logger.Printf("Skipping game %s with unparseable date %q: %v", g.ID, g.Date, err)
			continue
		}
		games = append(games, GameData{
			SourceID:     g.ID,
			SeasonYear:   g.Season,
			GameDate:     gameDate,
			HomeTeamCode: g.HomeTeam,
			AwayTeamCode: g.AwayTeam,
			HomeScore:    g.HomeScore,
			AwayScore:    g.AwayScore,
			IsPlayoff:    g.Postseason,
			Status:       normalizeGameStatus(g.Status),
		})
	}

	return games, nil
}

// FetchTeamStats retrieves season aggregates for every team
func (c *StatsAPIClient) FetchTeamStats(ctx context.Context, seasonYear int) ([]TeamStatsData, error) {
	url := fmt.Sprintf("%s/team_stats?season=%d", c.baseURL, seasonYear)

	var payload statsAPIEnvelope[statsAPITeamStats]
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	stats := make([]TeamStatsData, 0, len(payload.Data))
	for _, s := range payload.Data {
		stats = append(stats, TeamStatsData{
			TeamCode:          s.Team,
			GamesPlayed:       s.GamesPlayed,
			PointsScored:      s.PointsScored,
			PointsAllowed:     s.PointsAllowed,
			FieldGoalAttempts: s.FieldGoalAttempts,
			OffensiveRebounds: s.OffensiveRebounds,
			Turnovers:         s.Turnovers,
			FreeThrowAttempts: s.FreeThrowAttempts,
			OpponentWinPct:    s.OpponentWinPct,
		})
	}

	return stats, nil
}

// FetchPlayerAverages retrieves per-stat averages for a team's roster
func (c *StatsAPIClient) FetchPlayerAverages(ctx context.Context, teamCode string) ([]PlayerAveragesData, error) {
	url := fmt.Sprintf("%s/player_averages?team=%s", c.baseURL, teamCode)

	var payload statsAPIEnvelope[statsAPIPlayerAverages]
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	averages := make([]PlayerAveragesData, 0, len(payload.Data))
	for _, a := range payload.Data {
		averages = append(averages, PlayerAveragesData{
			PlayerID:      a.PlayerID,
			PlayerName:    a.PlayerName,
			TeamCode:      a.Team,
			StatType:      a.Stat,
			SeasonAverage: a.SeasonAverage,
			RecentAverage: a.RecentAverage,
			GamesPlayed:   a.GamesPlayed,
			SeasonMinutes: a.SeasonMinutes,
			BPM:           a.BPM,
			Status:        normalizePlayerStatus(a.Status),
		})
	}

	return averages, nil
}

// Name returns the provider name
func (c *StatsAPIClient) Name() string {
	return statsSourceName
}

func (c *StatsAPIClient) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return NewDataSourceError(statsSourceName, ErrCodeNetworkError, "failed to create request", err)
	}

	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return NewDataSourceError(statsSourceName, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return NewDataSourceError(statsSourceName, ErrCodeAuthenticationFailed, "invalid API key", nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return NewDataSourceError(statsSourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	case resp.StatusCode == http.StatusNotFound:
		return NewDataSourceError(statsSourceName, ErrCodeNotFound, "resource not found", nil)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return NewDataSourceError(statsSourceName, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewDataSourceError(statsSourceName, ErrCodeInvalidData, "failed to parse response", err)
	}

	return nil
}

// normalizePlayerStatus maps provider availability designations onto
// the stored vocabulary: anything ruled out is "out", the rest is
// "active".
func normalizePlayerStatus(status string) string {
	switch status {
	case "Out", "out", "Injured":
		return "out"
	default:
		return "active"
	}
}

// normalizeGameStatus maps provider status strings onto the stored vocabulary
func normalizeGameStatus(status string) string {
	switch status {
	case "Final", "final":
		return "final"
	case "Postponed", "postponed":
		return "postponed"
	default:
		return "scheduled"
	}
}
