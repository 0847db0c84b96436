package props

// Pace estimation. A prop projection for a fast game is worth more
// than the same projection in a slog; these helpers turn box-score
// aggregates into a projected game pace for the context multiplier.

// LeagueAveragePace is possessions per 48 minutes, league wide.
const LeagueAveragePace = 100.0

// freeThrowPossessionWeight accounts for and-ones, technicals, and
// three-shot fouls that don't end possessions.
const freeThrowPossessionWeight = 0.44

// Possessions estimates possessions from box-score counts:
// FGA - OREB + TOV + 0.44*FTA.
func Possessions(fieldGoalAttempts, offensiveRebounds, turnovers, freeThrowAttempts int) float64 {
	return float64(fieldGoalAttempts-offensiveRebounds+turnovers) +
		freeThrowPossessionWeight*float64(freeThrowAttempts)
}

// Pace normalizes possessions to a 48-minute game.
func Pace(possessions, minutes float64) float64 {
	if minutes <= 0 {
		return 0
	}
	return possessions / minutes * 48.0
}

// PointsPer100 is the offensive (or defensive) rating for a points and
// possessions total.
func PointsPer100(points, possessions float64) float64 {
	if possessions <= 0 {
		return 0
	}
	return points / possessions * 100.0
}

// ProjectGamePace projects the pace of a game between two teams. The
// average of the two season paces is regressed 10% toward league
// average, since extreme-pace teams normalize against each other.
func ProjectGamePace(homePace, awayPace float64) float64 {
	if homePace <= 0 || awayPace <= 0 {
		return LeagueAveragePace
	}
	expected := (homePace + awayPace) / 2.0
	return expected*0.9 + LeagueAveragePace*0.1
}
