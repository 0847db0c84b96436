// Package models defines the persistence and transport value objects
// shared across services and repositories.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Team represents one competitor and its current skill rating. The
// rating is owned here, outside the engine: services pass it in and
// persist the value handed back. NetRating is the SOS-adjusted net
// rating in points per 100 possessions; DefensiveRank orders teams from
// 1 (toughest defense) to 30 (softest), zero when no stats are stored.
type Team struct {
	ID            uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	Code          string    `db:"code" json:"code" validate:"required,len=3"`
	Name          string    `db:"name" json:"name" validate:"required"`
	Conference    string    `db:"conference" json:"conference"`
	Rating        float64   `db:"rating" json:"rating" validate:"required,gt=0"`
	PaceRating    float64   `db:"pace_rating" json:"pace_rating"`
	NetRating     float64   `db:"net_rating" json:"net_rating"`
	DefensiveRank int       `db:"defensive_rank" json:"defensive_rank" validate:"gte=0"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
