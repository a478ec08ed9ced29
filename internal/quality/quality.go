package quality

import (
	"math"

	"football-betting-engine/internal/match"
)

// Defaults for the quality score model.
const (
	DefaultReputation   = 70
	DefaultLeagueWeight = 0.70

	// Component weights; they sum to 1.
	WeightReputation     = 0.25
	WeightPosition       = 0.30
	WeightGoalDifference = 0.25
	WeightForm           = 0.20

	earlySeasonRounds = 5
	goalDiffCap       = 20
	neutralScore      = 50.0
	singleTeamLeague  = 75.0
)

// Reputations maps team IDs to a static 0-100 reputation.
type Reputations map[int]int

// Of returns a team's reputation, DefaultReputation when unknown.
func (r Reputations) Of(teamID int) int {
	if v, ok := r[teamID]; ok {
		return v
	}
	return DefaultReputation
}

// DefaultReputations returns the built-in reputation table.
func DefaultReputations() Reputations {
	return Reputations{
		// Premier League
		33: 95, 40: 92, 42: 90, 34: 88, 50: 87, 49: 86, 35: 85, 66: 83, 48: 82,
		// La Liga
		529: 94, 541: 93, 530: 87, 532: 82, 536: 81, 548: 80, 724: 78, 531: 77,
		// Serie A
		489: 91, 487: 86, 505: 89, 496: 88, 497: 84,
		// Bundesliga
		157: 93, 165: 89, 173: 86, 168: 83,
		// Ligue 1
		85: 91, 81: 82, 80: 80, 83: 78,
		// Brasileirão
		127: 85, 131: 82, 126: 80, 128: 78, 118: 77, 124: 76, 130: 75, 120: 74,
	}
}

// LeagueWeights maps league IDs to a quality multiplier.
type LeagueWeights map[int]float64

// Of returns a league's weight, DefaultLeagueWeight when unlisted.
func (w LeagueWeights) Of(leagueID int) float64 {
	if v, ok := w[leagueID]; ok {
		return v
	}
	return DefaultLeagueWeight
}

// DefaultLeagueWeights returns the built-in league weighting table.
func DefaultLeagueWeights() LeagueWeights {
	return LeagueWeights{
		// Top five European leagues
		39: 1.0, 140: 1.0, 135: 1.0, 78: 1.0, 61: 0.95,
		// UEFA competitions
		2: 1.0, 3: 0.95, 848: 0.90,
		// Strong European leagues
		94: 0.90, 88: 0.88, 144: 0.85, 203: 0.85,
		// South American competitions and leagues
		13: 0.95, 11: 0.90, 71: 0.90, 128: 0.88, 239: 0.82, 265: 0.80, 274: 0.78,
		// European second tiers
		40: 0.85, 141: 0.82, 136: 0.82, 79: 0.82, 62: 0.80,
		// Mid tier
		179: 0.78, 218: 0.75, 207: 0.75, 197: 0.73, 235: 0.73, 119: 0.72, 103: 0.70, 113: 0.70,
		// North America
		253: 0.78, 262: 0.76,
		// Asia
		307: 0.78, 83: 0.75, 292: 0.73, 301: 0.72,
		// Lower tier
		72: 0.72, 106: 0.70, 345: 0.68, 210: 0.68, 283: 0.67, 286: 0.66, 240: 0.66, 250: 0.65, 281: 0.65,
		// Emerging
		233: 0.65, 288: 0.64, 200: 0.63, 188: 0.62, 17: 0.60,
	}
}

// Position is a team's place in a league table. Rank 0 means not listed.
type Position struct {
	Rank  int
	Teams int
}

// PositionIn looks a team up in a table.
func PositionIn(table match.Table, teamID int) Position {
	return Position{Rank: table.Rank(teamID), Teams: len(table)}
}

// Components is the explainable breakdown of a quality score.
type Components struct {
	Reputation     float64 `json:"reputation"`
	Position       float64 `json:"position"`
	GoalDifference float64 `json:"goal_difference"`
	Form           float64 `json:"form"`
	LeagueWeight   float64 `json:"league_weight"`
	Score          int     `json:"score"`
}

// Compute builds the quality score with all of its sub-scores.
func Compute(team match.TeamStats, reps Reputations, pos Position, leagueWeight float64, round int) Components {
	c := Components{
		Reputation:     float64(reps.Of(team.ID)),
		Position:       PositionScore(pos),
		GoalDifference: GoalDifferenceScore(team.GoalDifference()),
		Form:           FormScore(team.Form),
		LeagueWeight:   leagueWeight,
	}

	// Table position is unreliable in the first rounds.
	if round >= 1 && round <= earlySeasonRounds {
		c.Position = c.Position*0.5 + c.Reputation*0.5
	}

	raw := c.Reputation*WeightReputation +
		c.Position*WeightPosition +
		c.GoalDifference*WeightGoalDifference +
		c.Form*WeightForm

	c.Score = clampScore(int(math.Round(raw * leagueWeight)))
	return c
}

// QualityScore returns the composite 0-100 quality score of a team.
func QualityScore(team match.TeamStats, reps Reputations, pos Position, leagueWeight float64, round int) int {
	return Compute(team, reps, pos, leagueWeight, round).Score
}

// PositionScore maps rank 1 to 100 and the last rank to 50.
func PositionScore(pos Position) float64 {
	if pos.Rank <= 0 || pos.Teams <= 0 {
		return neutralScore
	}
	if pos.Teams == 1 {
		return singleTeamLeague
	}
	return 100 - float64(pos.Rank-1)/float64(pos.Teams-1)*50
}

// GoalDifferenceScore maps ±20 goals linearly onto [0,100].
func GoalDifferenceScore(gd int) float64 {
	switch {
	case gd >= goalDiffCap:
		return 100
	case gd <= -goalDiffCap:
		return 0
	}
	return neutralScore + float64(gd)/goalDiffCap*50
}

// FormScore scores the last five results.
func FormScore(form string) float64 {
	recent := match.Recent(form, 5)
	if recent == "" {
		return neutralScore
	}
	wins, _, losses := match.FormCounts(recent)
	switch {
	case wins == 5:
		return 100
	case wins == 4:
		return 85
	case wins == 3:
		return 70
	case wins == 2:
		return 60
	case wins == 1:
		return 52
	case losses == 5:
		return 0
	case losses == 4:
		return 15
	case losses == 3:
		return 30
	}
	return neutralScore
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
