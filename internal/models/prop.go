package models

import (
	"time"

	"github.com/google/uuid"
)

// PlayerStatusOut marks a player ruled out for the upcoming game.
const PlayerStatusOut = "out"

// PlayerAverages holds the per-stat season and recent figures a prop
// projection needs, as supplied by the stats provider. BPM and Status
// also feed the game model's injury impact aggregation.
type PlayerAverages struct {
	PlayerID      string    `db:"player_id" json:"player_id" validate:"required"`
	TeamID        uuid.UUID `db:"team_id" json:"team_id" validate:"required,uuid4"`
	StatType      string    `db:"stat_type" json:"stat_type" validate:"required"`
	SeasonAverage float64   `db:"season_average" json:"season_average" validate:"gte=0"`
	RecentAverage float64   `db:"recent_average" json:"recent_average" validate:"gte=0"`
	GamesPlayed   int       `db:"games_played" json:"games_played" validate:"gte=0"`
	SeasonMinutes float64   `db:"season_minutes" json:"season_minutes" validate:"gte=0"`
	BPM           float64   `db:"bpm" json:"bpm"`
	Status        string    `db:"status" json:"status"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// PropLine is a posted player prop market for one game.
type PropLine struct {
	ID         uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	GameID     uuid.UUID `db:"game_id" json:"game_id" validate:"required,uuid4"`
	PlayerID   string    `db:"player_id" json:"player_id" validate:"required"`
	StatType   string    `db:"stat_type" json:"stat_type" validate:"required"`
	Line       float64   `db:"line" json:"line" validate:"required,gt=0"`
	OverPrice  *int      `db:"over_price" json:"over_price"`
	UnderPrice *int      `db:"under_price" json:"under_price"`
	Bookmaker  string    `db:"bookmaker" json:"bookmaker" validate:"required"`
	FetchedAt  time.Time `db:"fetched_at" json:"fetched_at" validate:"required"`
}
