package quality

import "football-betting-engine/internal/match"

// Momentum scores only the last five results, then nudges by the season
// scoring rate. It is independent of the quality score.
func Momentum(team match.TeamStats) int {
	recent := match.Recent(team.Form, 5)
	if recent == "" {
		return 50
	}

	wins, _, losses := match.FormCounts(recent)
	moment := 50
	switch {
	case wins >= 4:
		moment = 95
	case wins >= 3:
		moment = 80
	case wins >= 2:
		moment = 65
	case wins == 1:
		moment = 55
	case losses >= 4:
		moment = 20
	case losses >= 3:
		moment = 35
	}

	avg := team.ScoringAverage()
	if avg > 2.5 {
		moment += 10
	} else if avg < 0.8 {
		moment -= 10
	}
	return clampScore(moment)
}

// PowerScore is the season-long strength: win rate plus goal difference bands.
func PowerScore(team match.TeamStats) int {
	score := 50
	if team.GamesPlayed > 0 {
		winRate := float64(team.Wins) / float64(team.GamesPlayed)
		score += int(winRate * 25)
	}

	gd := team.GoalDifference()
	switch {
	case gd > 15:
		score += 20
	case gd > 10:
		score += 15
	case gd > 5:
		score += 10
	case gd > 0:
		score += 5
	case gd < -15:
		score -= 20
	case gd < -10:
		score -= 15
	case gd < -5:
		score -= 10
	case gd < 0:
		score -= 5
	}
	return clampScore(score)
}
