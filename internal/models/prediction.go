package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Prediction represents a stored model prediction for one game.
type Prediction struct {
	ID                 uuid.UUID       `db:"id" json:"id" validate:"required,uuid4"`
	GameID             uuid.UUID       `db:"game_id" json:"game_id" validate:"required,uuid4"`
	HomeWinProbability float64         `db:"home_win_probability" json:"home_win_probability" validate:"required,gte=0,lte=1"`
	AwayWinProbability float64         `db:"away_win_probability" json:"away_win_probability" validate:"required,gte=0,lte=1"`
	PredictedSpread    float64         `db:"predicted_spread" json:"predicted_spread"`
	Confidence         float64         `db:"confidence" json:"confidence" validate:"required,gte=0,lte=1"`
	PredictedWinnerID  uuid.UUID       `db:"predicted_winner_id" json:"predicted_winner_id" validate:"required,uuid4"`
	Factors            json.RawMessage `db:"factors" json:"factors"`
	PredictedAt        time.Time       `db:"predicted_at" json:"predicted_at" validate:"required"`
}

// GetFactor retrieves a single factor entry from the stored breakdown.
func (p *Prediction) GetFactor(category string) (map[string]interface{}, error) {
	if p.Factors == nil {
		return nil, nil
	}

	var factors []map[string]interface{}
	if err := json.Unmarshal(p.Factors, &factors); err != nil {
		return nil, err
	}

	for _, f := range factors {
		if f["category"] == category {
			return f, nil
		}
	}
	return nil, nil
}

// MeetsThreshold checks if the confidence meets the given threshold.
func (p *Prediction) MeetsThreshold(threshold float64) bool {
	return p.Confidence >= threshold
}
