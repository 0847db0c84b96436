package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/hoopsight/internal/engine/factors"
)

func TestPredictDegenerateSymmetricCase(t *testing.T) {
	// Equal ratings, no home advantage, every factor neutral: the
	// model must return exactly 50/50 with a zero spread.
	in := MatchupInput{
		HomeTeamID: "BOS",
		AwayTeamID: "MIA",
		HomeRating: 1500,
		AwayRating: 1500,
	}

	pred := Predict(in)

	assert.Equal(t, 0.5, pred.HomeWinProbability)
	assert.Equal(t, 0.5, pred.AwayWinProbability)
	assert.Equal(t, 0.0, pred.PredictedSpread)
}

func TestPredictProbabilitiesSumToOne(t *testing.T) {
	tests := []struct {
		name string
		in   MatchupInput
	}{
		{
			name: "Default home advantage",
			in:   NewMatchupInput("DEN", "LAL", 1580, 1540),
		},
		{
			name: "Huge mismatch clamps at bounds",
			in:   NewMatchupInput("OKC", "WAS", 2100, 1200),
		},
		{
			name: "Full context",
			in: MatchupInput{
				HomeTeamID:    "NYK",
				AwayTeamID:    "PHI",
				HomeRating:    1520,
				AwayRating:    1560,
				HomeAdvantage: DefaultHomeAdvantage,
				RecentForm:    &FormContext{Home: factors.Record{Wins: 7, Losses: 3}, Away: factors.Record{Wins: 4, Losses: 6}},
				Rest:          &RestContext{HomeDays: 2, AwayDays: 0},
				HeadToHead:    &HeadToHeadContext{HomeWins: 2, AwayWins: 1},
				Travel:        &TravelContext{AwayMiles: 1200},
				Injury:        &InjuryContext{HomeImpact: 0.1, AwayImpact: 0.4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := Predict(tt.in)
			assert.InDelta(t, 1.0, pred.HomeWinProbability+pred.AwayWinProbability, 1e-12)
			assert.GreaterOrEqual(t, pred.HomeWinProbability, 0.05)
			assert.LessOrEqual(t, pred.HomeWinProbability, 0.95)
			assert.GreaterOrEqual(t, pred.AwayWinProbability, 0.05)
			assert.LessOrEqual(t, pred.AwayWinProbability, 0.95)
		})
	}
}

func TestPredictStrongHomeFavorite(t *testing.T) {
	// 150-point rating gap plus full home advantage: confident home
	// pick.
	in := NewMatchupInput("BOS", "CHA", 1650, 1500)

	pred := Predict(in)

	assert.Equal(t, "BOS", pred.PredictedWinner)
	assert.Greater(t, pred.Confidence, 0.75)
	assert.Less(t, pred.PredictedSpread, 0.0, "negative spread means home favored")
}

func TestPredictSpreadScalesWithRatingGap(t *testing.T) {
	in := NewMatchupInput("MIL", "DET", 1600, 1500)
	pred := Predict(in)

	// 100 rating points + 100 home advantage at 25 points per spread
	// point, neutral factors.
	assert.InDelta(t, -8.0, pred.PredictedSpread, 1e-9)
}

func TestPredictFactorsShiftProbability(t *testing.T) {
	base := Predict(NewMatchupInput("CLE", "IND", 1550, 1550))

	boosted := NewMatchupInput("CLE", "IND", 1550, 1550)
	boosted.RecentForm = &FormContext{Home: factors.Record{Wins: 9, Losses: 1}, Away: factors.Record{Wins: 2, Losses: 8}}
	boosted.Injury = &InjuryContext{AwayImpact: 0.6}
	withFactors := Predict(boosted)

	assert.Greater(t, withFactors.HomeWinProbability, base.HomeWinProbability)
	assert.Less(t, withFactors.PredictedSpread, base.PredictedSpread)
}

func TestPredictConfidenceCappedForPlayoffs(t *testing.T) {
	in := NewMatchupInput("OKC", "POR", 2000, 1400)
	in.IsPlayoff = true

	pred := Predict(in)

	assert.LessOrEqual(t, pred.Confidence, 0.95)
}

func TestPredictConflictingFactorsReduceConfidence(t *testing.T) {
	aligned := NewMatchupInput("DAL", "SAS", 1600, 1500)
	aligned.RecentForm = &FormContext{Home: factors.Record{Wins: 8, Losses: 2}, Away: factors.Record{Wins: 3, Losses: 7}}
	aligned.Injury = &InjuryContext{AwayImpact: 0.5}

	conflicted := NewMatchupInput("DAL", "SAS", 1600, 1500)
	conflicted.RecentForm = &FormContext{Home: factors.Record{Wins: 8, Losses: 2}, Away: factors.Record{Wins: 3, Losses: 7}}
	conflicted.Injury = &InjuryContext{HomeImpact: 0.5}
	conflicted.Rest = &RestContext{HomeDays: 0, AwayDays: 2}

	assert.Greater(t, Predict(aligned).Confidence, Predict(conflicted).Confidence)
}

func TestPredictNetRatingGapShiftsProbability(t *testing.T) {
	base := Predict(NewMatchupInput("CLE", "IND", 1550, 1550))

	withNets := NewMatchupInput("CLE", "IND", 1550, 1550)
	withNets.NetRatings = &NetRatingContext{Home: 6.5, Away: -2.0}
	boosted := Predict(withNets)

	assert.Greater(t, boosted.HomeWinProbability, base.HomeWinProbability)
	assert.Less(t, boosted.PredictedSpread, base.PredictedSpread)
}

func TestPredictIncludesFullFactorBreakdown(t *testing.T) {
	pred := Predict(NewMatchupInput("MEM", "NOP", 1500, 1500))

	assert.Len(t, pred.Factors, 6)
	seen := map[factors.Category]bool{}
	for _, f := range pred.Factors {
		seen[f.Category] = true
	}
	assert.True(t, seen[factors.CategoryRecentForm])
	assert.True(t, seen[factors.CategoryRest])
	assert.True(t, seen[factors.CategoryHeadToHead])
	assert.True(t, seen[factors.CategoryTravel])
	assert.True(t, seen[factors.CategoryInjury])
	assert.True(t, seen[factors.CategoryNetRating])
}
