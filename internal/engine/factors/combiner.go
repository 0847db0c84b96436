package factors

// adjustmentScale caps any single factor's probability swing at 10% of
// its weight share.
const adjustmentScale = 0.1

// alignmentThreshold is the magnitude below which a factor is treated
// as neutral for alignment purposes.
const alignmentThreshold = 0.05

// Result is one category's computed output: the normalized signed
// value, the category's fixed weight, and the weighted probability
// contribution.
type Result struct {
	Category     Category `json:"category"`
	Value        float64  `json:"value"`
	Weight       float64  `json:"weight"`
	Contribution float64  `json:"contribution"`
}

// NewResult builds a Result for a category, deriving the contribution
// from the category's fixed weight.
func NewResult(category Category, value float64) Result {
	w := Weight(category)
	return Result{
		Category:     category,
		Value:        value,
		Weight:       w,
		Contribution: Contribution(value, w),
	}
}

// Contribution converts a factor value into a probability adjustment.
// The magnitude is bounded by weight*0.1, so no single factor can push
// the final probability beyond its weight's share.
func Contribution(value, weight float64) float64 {
	return value * weight * adjustmentScale
}

// TotalAdjustment sums all factor contributions. The rating difference
// is deliberately absent: it forms the base probability, and summing it
// here would double-count team skill.
func TotalAdjustment(results []Result) float64 {
	var total float64
	for _, r := range results {
		total += r.Contribution
	}
	return total
}

// Alignment measures how much the factors agree. Factors beyond the
// neutral threshold are counted by direction; the return value scales
// confidence between 0.7 (full disagreement) and 1.0 (full agreement).
// A slate with no significant factors carries no signal to disagree
// about and applies no discount.
func Alignment(results []Result) float64 {
	var positive, negative int
	for _, r := range results {
		switch {
		case r.Value > alignmentThreshold:
			positive++
		case r.Value < -alignmentThreshold:
			negative++
		}
	}

	total := positive + negative
	if total == 0 {
		return 1.0
	}

	dominant := positive
	if negative > dominant {
		dominant = negative
	}
	return 0.7 + (float64(dominant)/float64(total))*0.3
}
