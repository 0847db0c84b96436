package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseInput() PropInput {
	return PropInput{
		PlayerID:         "tatumja01",
		StatType:         StatPoints,
		Line:             26.5,
		SeasonAverage:    27.0,
		RecentAverage:    27.5,
		GamesPlayed:      40,
		OpponentRank:     15,
		IsHome:           true,
		ProjectedMinutes: 36,
		SeasonMinutes:    36,
	}
}

func TestPredictPropProbabilitiesSumToOne(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PropInput)
	}{
		{"Baseline", func(in *PropInput) {}},
		{"Line far above projection", func(in *PropInput) { in.Line = 45.5 }},
		{"Line far below projection", func(in *PropInput) { in.Line = 10.5 }},
		{"No averages at all", func(in *PropInput) {
			in.SeasonAverage = 0
			in.RecentAverage = 0
		}},
		{"Back-to-back on the road", func(in *PropInput) {
			in.IsHome = false
			in.IsBackToBack = true
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			tt.mutate(&in)
			pred := PredictProp(in)
			assert.InDelta(t, 1.0, pred.OverProbability+pred.UnderProbability, 1e-12)
		})
	}
}

func TestPredictPropRecommendations(t *testing.T) {
	// Line right at the projection: both sides hover at 50% and the
	// model passes.
	in := baseInput()
	pred := PredictProp(in)
	if pred.OverProbability <= 0.57 && pred.UnderProbability <= 0.57 {
		assert.Equal(t, RecommendPass, pred.Recommendation)
	}

	// Line far below the projection: clear over.
	in.Line = 15.5
	over := PredictProp(in)
	assert.Greater(t, over.OverProbability, 0.57)
	assert.Equal(t, RecommendOver, over.Recommendation)

	// Line far above: clear under.
	in.Line = 40.5
	under := PredictProp(in)
	assert.Greater(t, under.UnderProbability, 0.57)
	assert.Equal(t, RecommendUnder, under.Recommendation)
}

func TestPredictPropPassWithoutSignal(t *testing.T) {
	// Degenerate input: no averages means a zero projection, even
	// probabilities, and a pass.
	pred := PredictProp(PropInput{PlayerID: "nobody", StatType: StatPoints, Line: 10.5})
	assert.Equal(t, 0.5, pred.OverProbability)
	assert.Equal(t, 0.5, pred.UnderProbability)
	assert.Equal(t, RecommendPass, pred.Recommendation)
}

func TestPredictedValueWeightedBlend(t *testing.T) {
	// Stable trend, neutral matchup rank, neutral minutes: the blend
	// reduces to season/recent averages with only the small context
	// multiplier on its 10% share.
	in := baseInput()
	in.OpponentRank = 0
	pred := PredictProp(in)

	baseline := (in.SeasonAverage + in.RecentAverage) / 2.0
	expected := 0.35*in.SeasonAverage + 0.35*in.RecentAverage + 0.20*baseline + 0.10*baseline*1.02
	assert.InDelta(t, expected, pred.PredictedValue, 1e-9)
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name     string
		season   float64
		recent   float64
		expected Trend
	}{
		{"Hot streak", 20.0, 24.0, TrendHot},
		{"Cold spell", 20.0, 17.0, TrendCold},
		{"Within noise", 20.0, 20.5, TrendStable},
		{"No season data", 0, 15.0, TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyTrend(tt.season, tt.recent))
		})
	}
}

func TestCoefficientOfVariationOrdering(t *testing.T) {
	// Higher-variance stats carry higher coefficients.
	assert.Greater(t, CoefficientOfVariation(StatBlocks), CoefficientOfVariation(StatPoints))
	assert.Greater(t, CoefficientOfVariation(StatSteals), CoefficientOfVariation(StatRebounds))
	assert.Less(t, CoefficientOfVariation(StatPRA), CoefficientOfVariation(StatPoints))
	assert.InDelta(t, 0.75, CoefficientOfVariation(StatBlocks), 1e-9)
	assert.InDelta(t, 0.25, CoefficientOfVariation(StatPRA), 1e-9)
}

func TestConfidenceBounds(t *testing.T) {
	// Everything favorable still clamps at 0.85.
	strong := baseInput()
	strong.GamesPlayed = 60
	strong.RecentAverage = strong.SeasonAverage
	assert.LessOrEqual(t, PredictProp(strong).Confidence, 0.85)

	// Tiny sample, wild swing, no matchup data: floor at 0.40.
	weak := PropInput{
		PlayerID:      "rookie01",
		StatType:      StatPoints,
		Line:          12.5,
		SeasonAverage: 10.0,
		RecentAverage: 18.0,
		GamesPlayed:   2,
	}
	pred := PredictProp(weak)
	assert.GreaterOrEqual(t, pred.Confidence, 0.40)
	assert.Less(t, pred.Confidence, 0.5)
}

func TestMatchupMultiplier(t *testing.T) {
	assert.InDelta(t, 1.0, matchupMultiplier(0), 1e-9, "unknown rank is neutral")
	assert.Greater(t, matchupMultiplier(30), 1.0, "soft matchup boosts")
	assert.Less(t, matchupMultiplier(1), 1.0, "tough matchup cuts")
	assert.LessOrEqual(t, matchupMultiplier(30), 1.10)
	assert.GreaterOrEqual(t, matchupMultiplier(1), 0.90)
}

func TestPaceHelpers(t *testing.T) {
	// 88 FGA, 10 OREB, 14 TOV, 22 FTA is a typical NBA stat line.
	poss := Possessions(88, 10, 14, 22)
	assert.InDelta(t, 101.68, poss, 0.01)

	assert.InDelta(t, poss, Pace(poss, 48), 1e-9)
	assert.Equal(t, 0.0, Pace(poss, 0))

	assert.InDelta(t, 110.0, PointsPer100(112, 101.8), 0.1)
	assert.Equal(t, 0.0, PointsPer100(112, 0))
}

func TestProjectGamePaceRegressesTowardAverage(t *testing.T) {
	// Two extreme-pace teams project closer to league average than
	// their raw mean.
	fast := ProjectGamePace(106, 104)
	assert.Less(t, fast, 105.0)
	assert.Greater(t, fast, 100.0)

	// Missing pace data returns league average.
	assert.Equal(t, LeagueAveragePace, ProjectGamePace(0, 104))
}
