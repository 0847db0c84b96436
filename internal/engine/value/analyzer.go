package value

import (
	"fmt"

	"github.com/yourusername/hoopsight/internal/engine/normdist"
	"github.com/yourusername/hoopsight/internal/engine/prediction"
)

const (
	// MinExpectedValue and MinEdge are the two independent thresholds a
	// bet must meet to flag as having value. Both are required; a
	// single-threshold check lets thin-edge or thin-EV bets through.
	MinExpectedValue = 0.03
	MinEdge          = 0.05

	// MaxKellyFraction is the quarter-Kelly safety ceiling on stake
	// sizing. It is a risk policy, not part of the Kelly formula.
	MaxKellyFraction = 0.25

	// marginStdDev and totalStdDev are the score-margin and game-total
	// standard deviations used for cover probabilities.
	marginStdDev = 12.0
	totalStdDev  = 18.0
)

// BetType identifies one of the six markets a game analysis covers.
type BetType string

const (
	BetHomeMoneyline BetType = "home_moneyline"
	BetAwayMoneyline BetType = "away_moneyline"
	BetHomeSpread    BetType = "home_spread"
	BetAwaySpread    BetType = "away_spread"
	BetOver          BetType = "over"
	BetUnder         BetType = "under"
)

// OddsQuote is one bookmaker's market snapshot for a game. A zero
// price marks a market the book is not offering.
type OddsQuote struct {
	Bookmaker       string  `json:"bookmaker"`
	HomeMoneyline   int     `json:"home_moneyline"`
	AwayMoneyline   int     `json:"away_moneyline"`
	HomeSpread      float64 `json:"home_spread"`
	HomeSpreadPrice int     `json:"home_spread_price"`
	AwaySpreadPrice int     `json:"away_spread_price"`
	Total           float64 `json:"total"`
	OverPrice       int     `json:"over_price"`
	UnderPrice      int     `json:"under_price"`
}

// ValueAssessment is the analyzer's verdict on a single bet type.
type ValueAssessment struct {
	BetType            BetType `json:"bet_type"`
	Odds               int     `json:"odds"`
	ModelProbability   float64 `json:"model_probability"`
	ImpliedProbability float64 `json:"implied_probability"`
	ExpectedValue      float64 `json:"expected_value"`
	Edge               float64 `json:"edge"`
	HasValue           bool    `json:"has_value"`
	Explanation        string  `json:"explanation"`
}

// GameAnalysis holds every assessed market plus the single best
// qualifying bet, or nil when nothing clears both thresholds.
type GameAnalysis struct {
	Assessments []ValueAssessment `json:"assessments"`
	BestBet     *ValueAssessment  `json:"best_bet,omitempty"`
}

// ExpectedValue returns the probability-weighted profit per unit stake
// for a bet at the given American odds.
func ExpectedValue(p float64, american int) (float64, error) {
	dec, err := ToDecimalOdds(american)
	if err != nil {
		return 0, err
	}
	return p*(dec-1.0) - (1.0 - p), nil
}

// Edge returns the model probability minus the market-implied
// probability.
func Edge(p float64, american int) (float64, error) {
	implied, err := ImpliedProbability(american)
	if err != nil {
		return 0, err
	}
	return p - implied, nil
}

// KellyFraction returns the bankroll fraction to stake, clamped to
// [0, MaxKellyFraction]. Negative-EV bets size to zero.
func KellyFraction(p float64, american int) float64 {
	dec, err := ToDecimalOdds(american)
	if err != nil {
		return 0
	}
	b := dec - 1.0
	if b <= 0 {
		return 0
	}
	kelly := (b*p - (1.0 - p)) / b
	if kelly < 0 {
		return 0
	}
	if kelly > MaxKellyFraction {
		return MaxKellyFraction
	}
	return kelly
}

// Assess evaluates one bet type at the given model probability and
// market price.
func Assess(betType BetType, p float64, american int) (ValueAssessment, error) {
	implied, err := ImpliedProbability(american)
	if err != nil {
		return ValueAssessment{}, err
	}
	ev, err := ExpectedValue(p, american)
	if err != nil {
		return ValueAssessment{}, err
	}

	edge := p - implied
	hasValue := ev >= MinExpectedValue && edge >= MinEdge

	explanation := fmt.Sprintf("model %.1f%% vs market %.1f%%: EV %+.3f, edge %+.3f", p*100, implied*100, ev, edge)
	if hasValue {
		explanation += " - value bet"
	} else {
		explanation += " - no value"
	}

	return ValueAssessment{
		BetType:            betType,
		Odds:               american,
		ModelProbability:   p,
		ImpliedProbability: implied,
		ExpectedValue:      ev,
		Edge:               edge,
		HasValue:           hasValue,
		Explanation:        explanation,
	}, nil
}

// AnalyzeGame assesses up to six bet types for one game against one
// market snapshot. modelTotal is the model's projected combined score;
// pass 0 when no total projection exists and the over/under markets
// are skipped. The best bet is the highest-EV assessment among those
// flagging value.
func AnalyzeGame(pred prediction.GamePrediction, modelTotal float64, quote OddsQuote) GameAnalysis {
	// Model home margin: negative predicted spread means home favored.
	homeMargin := -pred.PredictedSpread
	homeCover := normdist.Survival(normdist.ZScore(-quote.HomeSpread, homeMargin, marginStdDev))

	type candidate struct {
		betType BetType
		prob    float64
		odds    int
	}

	candidates := []candidate{
		{BetHomeMoneyline, pred.HomeWinProbability, quote.HomeMoneyline},
		{BetAwayMoneyline, pred.AwayWinProbability, quote.AwayMoneyline},
		{BetHomeSpread, homeCover, quote.HomeSpreadPrice},
		{BetAwaySpread, 1.0 - homeCover, quote.AwaySpreadPrice},
	}

	if modelTotal > 0 {
		over := normdist.Survival(normdist.ZScore(quote.Total, modelTotal, totalStdDev))
		candidates = append(candidates,
			candidate{BetOver, over, quote.OverPrice},
			candidate{BetUnder, 1.0 - over, quote.UnderPrice},
		)
	}

	analysis := GameAnalysis{}
	for _, c := range candidates {
		if c.odds == 0 {
			continue
		}
		assessment, err := Assess(c.betType, c.prob, c.odds)
		if err != nil {
			continue
		}
		analysis.Assessments = append(analysis.Assessments, assessment)
	}

	for i := range analysis.Assessments {
		a := &analysis.Assessments[i]
		if !a.HasValue {
			continue
		}
		if analysis.BestBet == nil || a.ExpectedValue > analysis.BestBet.ExpectedValue {
			analysis.BestBet = a
		}
	}

	return analysis
}
