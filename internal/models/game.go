package models

import (
	"time"

	"github.com/google/uuid"
)

// Game status values.
const (
	GameStatusScheduled = "scheduled"
	GameStatusFinal     = "final"
	GameStatusPostponed = "postponed"
)

// Game represents one scheduled or completed matchup.
type Game struct {
	ID         uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	SeasonYear int       `db:"season_year" json:"season_year" validate:"required,gt=2000"`
	GameDate   time.Time `db:"game_date" json:"game_date" validate:"required"`
	HomeTeamID uuid.UUID `db:"home_team_id" json:"home_team_id" validate:"required,uuid4"`
	AwayTeamID uuid.UUID `db:"away_team_id" json:"away_team_id" validate:"required,uuid4"`
	HomeScore  *int      `db:"home_score" json:"home_score"`
	AwayScore  *int      `db:"away_score" json:"away_score"`
	IsPlayoff  bool      `db:"is_playoff" json:"is_playoff"`
	Status     string    `db:"status" json:"status" validate:"required,oneof=scheduled final postponed"`
}

// IsFinal reports whether the game has a decided result.
func (g *Game) IsFinal() bool {
	return g.Status == GameStatusFinal && g.HomeScore != nil && g.AwayScore != nil
}

// HomeMargin returns the home score minus the away score. Zero when
// the game has no result yet.
func (g *Game) HomeMargin() int {
	if g.HomeScore == nil || g.AwayScore == nil {
		return 0
	}
	return *g.HomeScore - *g.AwayScore
}

// HomeWon reports whether the home side won a final game.
func (g *Game) HomeWon() bool {
	return g.IsFinal() && g.HomeMargin() > 0
}
