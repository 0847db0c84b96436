package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValueSignal represents a recommended bet emitted by the value
// analyzer: the market, the price taken, and the sizing.
type ValueSignal struct {
	ID               uuid.UUID       `db:"id" json:"id" validate:"required,uuid4"`
	GameID           uuid.UUID       `db:"game_id" json:"game_id" validate:"required,uuid4"`
	Bookmaker        string          `db:"bookmaker" json:"bookmaker" validate:"required"`
	BetType          string          `db:"bet_type" json:"bet_type" validate:"required"`
	Odds             int             `db:"odds" json:"odds" validate:"required"`
	ModelProbability float64         `db:"model_probability" json:"model_probability" validate:"required,gte=0,lte=1"`
	ExpectedValue    float64         `db:"expected_value" json:"expected_value"`
	Edge             float64         `db:"edge" json:"edge"`
	KellyFraction    float64         `db:"kelly_fraction" json:"kelly_fraction" validate:"gte=0,lte=0.25"`
	Stake            decimal.Decimal `db:"stake" json:"stake"`
	Explanation      string          `db:"explanation" json:"explanation"`
	LineDirection    string          `db:"line_direction" json:"line_direction"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at" validate:"required"`
}

// StakeFor sizes the signal against a bankroll using its Kelly
// fraction, rounded to cents.
func (v *ValueSignal) StakeFor(bankroll decimal.Decimal) decimal.Decimal {
	kelly := decimal.NewFromFloat(v.KellyFraction)
	return bankroll.Mul(kelly).Round(2)
}
