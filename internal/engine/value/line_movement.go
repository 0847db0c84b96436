package value

// Line movement analysis: how a market has shifted from open to
// current. A line chasing one side usually marks sharp money; value
// signals that agree with the move are stronger than ones fighting it.

// MovementDirection classifies which side a line move favors.
type MovementDirection string

const (
	MovementSharpHome MovementDirection = "sharp_home"
	MovementSharpAway MovementDirection = "sharp_away"
	MovementStable    MovementDirection = "stable"
)

// significantMovePoints is the minimum open-to-current spread move
// treated as meaningful.
const significantMovePoints = 1.0

// spreadPointProbability is the rule-of-thumb win-probability worth of
// one spread point.
const spreadPointProbability = 0.03

// LineMovement summarizes open-to-current movement for one game's
// spread and total markets.
type LineMovement struct {
	SpreadMovement   float64           `json:"spread_movement"`
	TotalMovement    float64           `json:"total_movement"`
	Direction        MovementDirection `json:"direction"`
	ProbabilityShift float64           `json:"probability_shift"`
}

// SpreadMovement returns current minus opening spread. Negative means
// the line moved toward the home side. A missing line (zero paired
// with zero) contributes no movement.
func SpreadMovement(opening, current float64) float64 {
	if opening == 0 && current == 0 {
		return 0
	}
	return current - opening
}

// TotalMovement returns current minus opening total. Positive means
// the market expects more scoring than it did at open.
func TotalMovement(opening, current float64) float64 {
	if opening == 0 || current == 0 {
		return 0
	}
	return current - opening
}

// ClassifyMovement labels a spread move once it clears the
// significance threshold. The line moving toward a side means money is
// arriving on that side.
func ClassifyMovement(spreadMovement float64) MovementDirection {
	switch {
	case spreadMovement <= -significantMovePoints:
		return MovementSharpHome
	case spreadMovement >= significantMovePoints:
		return MovementSharpAway
	default:
		return MovementStable
	}
}

// AnalyzeLineMovement builds the full movement summary for one game.
// The probability shift converts spread points moved into win
// probability at 3% per point, positive toward the home side.
func AnalyzeLineMovement(openingSpread, currentSpread, openingTotal, currentTotal float64) LineMovement {
	spreadMove := SpreadMovement(openingSpread, currentSpread)
	return LineMovement{
		SpreadMovement:   spreadMove,
		TotalMovement:    TotalMovement(openingTotal, currentTotal),
		Direction:        ClassifyMovement(spreadMove),
		ProbabilityShift: -spreadMove * spreadPointProbability,
	}
}
