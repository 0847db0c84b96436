package factors

import "math"

// Player availability impact from Box Plus/Minus (BPM). BPM estimates a
// player's contribution per 100 possessions: league average is 0.0,
// All-Star level sits at +4 to +6. When a rotation player is ruled out,
// his minutes fall to a replacement-level fill-in, and the drop in the
// minutes-weighted team BPM converts into the impact score the Injury
// factor consumes.

// ReplacementBPM is the production of a replacement-level fill-in.
const ReplacementBPM = -2.0

// bpmLossPerFullImpact is the minutes-weighted team BPM drop treated as
// a maximal (1.0) injury impact. One point of team BPM is worth roughly
// 2.5% win probability, which the injury weight scales back down.
const bpmLossPerFullImpact = 8.0

// PlayerImpact is one rotation player's production and availability.
type PlayerImpact struct {
	PlayerID string
	BPM      float64
	Minutes  float64
	Out      bool
}

// TeamBPM returns the minutes-weighted team BPM at full strength.
func TeamBPM(players []PlayerImpact) float64 {
	var totalMinutes, weighted float64
	for _, p := range players {
		totalMinutes += p.Minutes
		weighted += p.BPM * p.Minutes
	}
	if totalMinutes == 0 {
		return 0
	}
	return weighted / totalMinutes
}

// InjuryAdjustedTeamBPM recomputes the weighted team BPM with every
// unavailable player's production replaced at replacement level.
func InjuryAdjustedTeamBPM(players []PlayerImpact) float64 {
	var totalMinutes, weighted float64
	for _, p := range players {
		totalMinutes += p.Minutes
		bpm := p.BPM
		if p.Out {
			bpm = ReplacementBPM
		}
		weighted += bpm * p.Minutes
	}
	if totalMinutes == 0 {
		return 0
	}
	return weighted / totalMinutes
}

// InjuryImpact converts the weighted BPM drop from unavailable players
// into the 0 (healthy) to 1 (maximal) scale the Injury factor takes.
// Losing a below-replacement player never reads as an injury.
func InjuryImpact(players []PlayerImpact) float64 {
	loss := TeamBPM(players) - InjuryAdjustedTeamBPM(players)
	if loss <= 0 {
		return 0
	}
	return math.Min(loss/bpmLossPerFullImpact, 1.0)
}
