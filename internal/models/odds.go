package models

import (
	"time"

	"github.com/google/uuid"
)

// OddsLine represents a point-in-time market snapshot for one game at
// one bookmaker. Nil pointers mark markets the book is not offering.
type OddsLine struct {
	ID              uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	GameID          uuid.UUID `db:"game_id" json:"game_id" validate:"required,uuid4"`
	Bookmaker       string    `db:"bookmaker" json:"bookmaker" validate:"required"`
	FetchedAt       time.Time `db:"fetched_at" json:"fetched_at" validate:"required"`
	HomeMoneyline   *int      `db:"home_moneyline" json:"home_moneyline"`
	AwayMoneyline   *int      `db:"away_moneyline" json:"away_moneyline"`
	HomeSpread      *float64  `db:"home_spread" json:"home_spread"`
	HomeSpreadPrice *int      `db:"home_spread_price" json:"home_spread_price"`
	AwaySpreadPrice *int      `db:"away_spread_price" json:"away_spread_price"`
	Total           *float64  `db:"total" json:"total"`
	OverPrice       *int      `db:"over_price" json:"over_price"`
	UnderPrice      *int      `db:"under_price" json:"under_price"`
}

// HasMoneyline reports whether both moneyline sides are quoted.
func (o *OddsLine) HasMoneyline() bool {
	return o.HomeMoneyline != nil && o.AwayMoneyline != nil
}

// HasSpread reports whether the spread market is fully quoted.
func (o *OddsLine) HasSpread() bool {
	return o.HomeSpread != nil && o.HomeSpreadPrice != nil && o.AwaySpreadPrice != nil
}

// HasTotal reports whether the total market is fully quoted.
func (o *OddsLine) HasTotal() bool {
	return o.Total != nil && o.OverPrice != nil && o.UnderPrice != nil
}
