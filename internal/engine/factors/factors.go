// Package factors converts contextual matchup data into normalized
// signed scores and blends them into a single probability adjustment.
// Every calculator is total: missing data degrades to a neutral value,
// never an error. Positive values favor the home side.
package factors

import "math"

// Category identifies one contextual factor.
type Category string

const (
	CategoryRecentForm Category = "recent_form"
	CategoryRest       Category = "rest"
	CategoryHeadToHead Category = "head_to_head"
	CategoryTravel     Category = "travel"
	CategoryInjury     Category = "injury"
	CategoryNetRating  Category = "net_rating"
)

// Fixed category weights. Rating difference is not in this table; it
// forms the base probability and is never summed with these.
const (
	WeightRecentForm = 0.25
	WeightInjury     = 0.20
	WeightNetRating  = 0.20
	WeightRest       = 0.15
	WeightHeadToHead = 0.15
	WeightTravel     = 0.10
)

// Weight returns the fixed weight for a category.
func Weight(c Category) float64 {
	switch c {
	case CategoryRecentForm:
		return WeightRecentForm
	case CategoryInjury:
		return WeightInjury
	case CategoryNetRating:
		return WeightNetRating
	case CategoryRest:
		return WeightRest
	case CategoryHeadToHead:
		return WeightHeadToHead
	case CategoryTravel:
		return WeightTravel
	}
	return 0
}

// DefaultFormWindow is the trailing window for recent-form records.
const DefaultFormWindow = 10

// Record is a win/loss tally over a trailing window.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// WinPct returns the record's win percentage, defaulting to .500 when
// no games have been played.
func (r Record) WinPct() float64 {
	total := r.Wins + r.Losses
	if total == 0 {
		return 0.5
	}
	return float64(r.Wins) / float64(total)
}

// RecentForm returns the win-percentage differential between the two
// sides' trailing records. With no data on either side the value is 0.
func RecentForm(home, away Record) float64 {
	return clampUnit(home.WinPct() - away.WinPct())
}

// Rest compares the two sides' rest situations. A back-to-back (zero
// rest days) is a fixed -0.5 penalty; each rest day beyond one adds a
// +0.1 bonus capped at +0.3.
func Rest(homeRestDays, awayRestDays int) float64 {
	return clampUnit(restScore(homeRestDays) - restScore(awayRestDays))
}

func restScore(days int) float64 {
	if days <= 0 {
		return -0.5
	}
	bonus := 0.1 * float64(days-1)
	return math.Min(bonus, 0.3)
}

// HeadToHead returns the home side's win differential across this
// season's meetings, normalized by meetings played. Zero when the teams
// have not met.
func HeadToHead(homeWins, awayWins int) float64 {
	total := homeWins + awayWins
	if total == 0 {
		return 0
	}
	return clampUnit(float64(homeWins-awayWins) / float64(total))
}

// Travel penalizes the traveling (away) side by a step function of
// travel distance in miles. The home side is never penalized, so the
// value is always >= 0 in home-favoring convention.
func Travel(awayTravelMiles float64) float64 {
	switch {
	case awayTravelMiles >= 2000:
		return 0.20
	case awayTravelMiles >= 1500:
		return 0.15
	case awayTravelMiles >= 1000:
		return 0.10
	case awayTravelMiles >= 500:
		return 0.05
	default:
		return 0
	}
}

// Injury returns the injury-impact differential. Impact scores are
// supplied by the caller on a 0 (healthy) to 1 (maximal impact) scale;
// injuries to the away side favor home.
func Injury(homeImpact, awayImpact float64) float64 {
	return clampUnit(awayImpact - homeImpact)
}

// netRatingGapSaturation is the adjusted net-rating gap, in points per
// 100 possessions, treated as a maximal edge.
const netRatingGapSaturation = 10.0

// NetRatingGap normalizes the SOS-adjusted net-rating gap between the
// sides. Teams without stored net ratings read as zero and cancel out.
func NetRatingGap(homeNet, awayNet float64) float64 {
	return clampUnit((homeNet - awayNet) / netRatingGapSaturation)
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
