package rating

// Strength-of-schedule adjusted net ratings. These helpers normalize a
// team's raw offensive/defensive ratings against the quality of the
// opposition it has faced, so early-season schedules don't distort the
// net-rating differential.

const (
	// LeagueAverageRating is the league-wide average offensive (and
	// defensive) rating in points per 100 possessions.
	LeagueAverageRating = 110.0

	// HomeCourtPoints is the net-rating equivalent of home court.
	HomeCourtPoints = 3.5
)

// AdjustedOffensiveRating scales a raw offensive rating by the strength
// of the defenses faced. sosDefensiveRating is the average defensive
// rating of the team's opponents; a value of 0 or less returns the raw
// rating unchanged.
func AdjustedOffensiveRating(rawORTG, sosDefensiveRating float64) float64 {
	if sosDefensiveRating <= 0 {
		return rawORTG
	}
	return rawORTG * (LeagueAverageRating / sosDefensiveRating)
}

// AdjustedDefensiveRating scales a raw defensive rating by the strength
// of the offenses faced. sosOffensiveRating is the average offensive
// rating of the team's opponents; a value of 0 or less returns the raw
// rating unchanged.
func AdjustedDefensiveRating(rawDRTG, sosOffensiveRating float64) float64 {
	if sosOffensiveRating <= 0 {
		return rawDRTG
	}
	return rawDRTG / (sosOffensiveRating / LeagueAverageRating)
}

// netRatingPointsPerWinPct converts a win-percentage edge over .500
// into net-rating points: one point of net rating is worth roughly 2.7
// wins across an 82-game season.
const netRatingPointsPerWinPct = 30.0

// ScheduleStrength estimates a schedule's average offensive and
// defensive ratings from the opponents' aggregate win percentage,
// splitting the implied net-rating edge evenly between the two ends.
// A win percentage of zero or less means unknown and returns (0, 0),
// which the adjustment helpers treat as missing.
func ScheduleStrength(opponentWinPct float64) (sosORTG, sosDRTG float64) {
	if opponentWinPct <= 0 {
		return 0, 0
	}
	edge := (opponentWinPct - 0.5) * netRatingPointsPerWinPct
	return LeagueAverageRating + edge/2, LeagueAverageRating - edge/2
}

// NetRatingInput carries one team's raw ratings and optional strength
// of schedule aggregates.
type NetRatingInput struct {
	OffensiveRating    float64
	DefensiveRating    float64
	SOSOffensiveRating float64 // 0 means unknown
	SOSDefensiveRating float64 // 0 means unknown
}

// AdjustedNetRating returns the SOS-adjusted net rating for one team.
// Missing SOS data falls back to the raw ratings.
func AdjustedNetRating(in NetRatingInput) float64 {
	ortg := AdjustedOffensiveRating(in.OffensiveRating, in.SOSDefensiveRating)
	drtg := AdjustedDefensiveRating(in.DefensiveRating, in.SOSOffensiveRating)
	return ortg - drtg
}

// NetRatingDifferential returns the home-minus-away adjusted net rating
// gap including the home court term. Positive favors the home side, and
// the value doubles as an expected scoreboard margin.
func NetRatingDifferential(homeNet, awayNet float64) float64 {
	return homeNet + HomeCourtPoints - awayNet
}
