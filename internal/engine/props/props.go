// Package props predicts individual player statistical outputs against
// a posted line. It is a sibling pipeline to the game model: no team
// ratings, just season/recent averages, matchup and context
// adjustments, and a normal-distribution probability estimate.
package props

import (
	"math"

	"github.com/yourusername/hoopsight/internal/engine/normdist"
)

// StatType identifies the player statistic a prop line covers.
type StatType string

const (
	StatPoints   StatType = "points"
	StatRebounds StatType = "rebounds"
	StatAssists  StatType = "assists"
	StatThrees   StatType = "threes"
	StatSteals   StatType = "steals"
	StatBlocks   StatType = "blocks"
	// StatPRA is the combined points+rebounds+assists market.
	StatPRA StatType = "pra"
)

// Trend classifies a player's recent production against their season
// baseline.
type Trend string

const (
	TrendHot    Trend = "hot"
	TrendCold   Trend = "cold"
	TrendStable Trend = "stable"
)

// Recommendation is the model's verdict on a prop line.
type Recommendation string

const (
	RecommendOver  Recommendation = "over"
	RecommendUnder Recommendation = "under"
	RecommendPass  Recommendation = "pass"
)

// Blend weights. These sum to 1.0 and must be re-normalized together,
// never changed independently.
const (
	weightSeason  = 0.35
	weightRecent  = 0.35
	weightMatchup = 0.20
	weightContext = 0.10
)

const (
	trendMultiplierHot  = 1.05
	trendMultiplierCold = 0.95

	// recommendProbability is the asymmetric over/under threshold; at
	// exactly 0.57 or below on both sides the model passes.
	recommendProbability = 0.57

	// standardJuiceImplied is the implied probability of the standard
	// -110 prop price, the baseline for the reported edge.
	standardJuiceImplied = 110.0 / 210.0

	minConfidence = 0.40
	maxConfidence = 0.85
)

// PropInput is the complete input for one prop prediction. OpponentRank
// ranks the opposing defense against this stat, 1 (toughest) to 30
// (softest); zero means unknown. GamePace is an optional projected
// possessions-per-48 figure; zero means unknown.
type PropInput struct {
	PlayerID         string
	StatType         StatType
	Line             float64
	SeasonAverage    float64
	RecentAverage    float64
	GamesPlayed      int
	OpponentRank     int
	IsHome           bool
	IsBackToBack     bool
	ProjectedMinutes float64
	SeasonMinutes    float64
	GamePace         float64
}

// PropPrediction is the model output for one prop line.
type PropPrediction struct {
	PlayerID         string         `json:"player_id"`
	StatType         StatType       `json:"stat_type"`
	Line             float64        `json:"line"`
	PredictedValue   float64        `json:"predicted_value"`
	StdDev           float64        `json:"std_dev"`
	OverProbability  float64        `json:"over_probability"`
	UnderProbability float64        `json:"under_probability"`
	Trend            Trend          `json:"trend"`
	Confidence       float64        `json:"confidence"`
	Recommendation   Recommendation `json:"recommendation"`
	EdgePercent      float64        `json:"edge_percent"`
}

// CoefficientOfVariation returns the per-stat spread coefficient used
// to estimate a prop's standard deviation. Low-volume stats like blocks
// swing far more game to game than combined scoring lines.
func CoefficientOfVariation(stat StatType) float64 {
	switch stat {
	case StatPoints:
		return 0.30
	case StatRebounds, StatAssists:
		return 0.40
	case StatThrees:
		return 0.50
	case StatSteals:
		return 0.65
	case StatBlocks:
		return 0.75
	case StatPRA:
		return 0.25
	default:
		return 0.35
	}
}

// ClassifyTrend compares recent production to the season baseline.
// More than 5% above is hot, more than 5% below is cold.
func ClassifyTrend(seasonAverage, recentAverage float64) Trend {
	if seasonAverage <= 0 {
		return TrendStable
	}
	switch {
	case recentAverage > seasonAverage*trendMultiplierHot:
		return TrendHot
	case recentAverage < seasonAverage*trendMultiplierCold:
		return TrendCold
	default:
		return TrendStable
	}
}

// PredictProp produces the full prop prediction for one line.
func PredictProp(in PropInput) PropPrediction {
	trend := ClassifyTrend(in.SeasonAverage, in.RecentAverage)
	predicted := predictValue(in, trend)
	stdDev := predicted * CoefficientOfVariation(in.StatType)

	// A degenerate projection carries no signal: even odds either way.
	overProb, underProb := 0.5, 0.5
	if stdDev > 0 {
		underProb = normdist.CDF(normdist.ZScore(in.Line, predicted, stdDev))
		overProb = 1.0 - underProb
	}

	recommendation := RecommendPass
	switch {
	case overProb > recommendProbability:
		recommendation = RecommendOver
	case underProb > recommendProbability:
		recommendation = RecommendUnder
	}

	best := math.Max(overProb, underProb)

	return PropPrediction{
		PlayerID:         in.PlayerID,
		StatType:         in.StatType,
		Line:             in.Line,
		PredictedValue:   predicted,
		StdDev:           stdDev,
		OverProbability:  overProb,
		UnderProbability: underProb,
		Trend:            trend,
		Confidence:       confidence(in),
		Recommendation:   recommendation,
		EdgePercent:      (best - standardJuiceImplied) * 100.0,
	}
}

// predictValue blends the four projection components with fixed
// weights: season baseline, trend-adjusted recent form, the
// matchup-adjusted average, and the game-context-adjusted average.
func predictValue(in PropInput, trend Trend) float64 {
	trendMult := 1.0
	switch trend {
	case TrendHot:
		trendMult = trendMultiplierHot
	case TrendCold:
		trendMult = trendMultiplierCold
	}

	baseline := (in.SeasonAverage + in.RecentAverage) / 2.0

	return weightSeason*in.SeasonAverage +
		weightRecent*in.RecentAverage*trendMult +
		weightMatchup*baseline*matchupMultiplier(in.OpponentRank) +
		weightContext*baseline*contextMultiplier(in)
}

// matchupMultiplier scales the projection by opponent defensive rank
// against the stat. Rank 30 (softest) boosts up to +10%, rank 1
// (toughest) cuts up to -10%; unknown rank is neutral.
func matchupMultiplier(opponentRank int) float64 {
	if opponentRank <= 0 {
		return 1.0
	}
	mult := 1.0 + (float64(opponentRank)-15.5)/14.5*0.10
	return clamp(mult, 0.90, 1.10)
}

// contextMultiplier folds home/away, back-to-back fatigue, projected
// minutes, and game pace into one adjustment.
func contextMultiplier(in PropInput) float64 {
	mult := 0.98
	if in.IsHome {
		mult = 1.02
	}
	if in.IsBackToBack {
		mult *= 0.96
	}
	if in.ProjectedMinutes > 0 && in.SeasonMinutes > 0 {
		mult *= clamp(in.ProjectedMinutes/in.SeasonMinutes, 0.70, 1.30)
	}
	if in.GamePace > 0 {
		mult *= clamp(in.GamePace/LeagueAveragePace, 0.90, 1.10)
	}
	return mult
}

// confidence starts at 0.5 and moves with sample size, season/recent
// consistency, and matchup data availability, clamped to [0.40, 0.85].
func confidence(in PropInput) float64 {
	c := 0.5

	switch {
	case in.GamesPlayed >= 20:
		c += 0.10
	case in.GamesPlayed >= 10:
		c += 0.05
	case in.GamesPlayed < 5:
		c -= 0.05
	}

	if in.SeasonAverage > 0 {
		deviation := math.Abs(in.SeasonAverage-in.RecentAverage) / in.SeasonAverage
		switch {
		case deviation < 0.10:
			c += 0.10
		case deviation > 0.30:
			c -= 0.05
		}
	}

	if in.OpponentRank > 0 {
		c += 0.05
	}

	return clamp(c, minConfidence, maxConfidence)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
