package markets

import (
	"fmt"

	"football-betting-engine/internal/bet"
	"football-betting-engine/internal/quality"
)

// Goals prices match, first-half and team goal lines.
type Goals struct{}

func (Goals) Market() bet.Market { return bet.MarketGoals }

// GoalsExpectation is the blended goal model of a fixture.
type GoalsExpectation struct {
	Total    float64 `json:"total"`
	HalfTime float64 `json:"half_time"`
	Home     float64 `json:"home"`
	Away     float64 `json:"away"`
}

// ExpectGoals blends each attack with the opposing defence, using the home
// side's home averages and the away side's away averages.
func ExpectGoals(in Input) (GoalsExpectation, bool) {
	h, a := in.Fixture.Home.Home, in.Fixture.Away.Away
	if allZero(h.GoalsScored, h.GoalsConceded, a.GoalsScored, a.GoalsConceded) {
		return GoalsExpectation{}, false
	}
	total := (h.GoalsScored + a.GoalsConceded + a.GoalsScored + h.GoalsConceded) / 2
	return GoalsExpectation{
		Total:    total,
		HalfTime: total * HalfTimeShare,
		Home:     (h.GoalsScored + a.GoalsConceded) / 2,
		Away:     (a.GoalsScored + h.GoalsConceded) / 2,
	}, true
}

var goalsStandard = concat(
	lines(bet.MarketGoals, bet.Over, bet.FullTime, bet.ScopeMatch, 0.5, 1.5, 2.5, 3.5),
	lines(bet.MarketGoals, bet.Under, bet.FullTime, bet.ScopeMatch, 1.5, 2.5, 3.5),
	lines(bet.MarketGoals, bet.Over, bet.FirstHalf, bet.ScopeMatch, 0.5, 1.5),
	lines(bet.MarketGoals, bet.Under, bet.FirstHalf, bet.ScopeMatch, 1.5),
	lines(bet.MarketGoals, bet.Over, bet.FullTime, bet.ScopeHome, 0.5, 1.5),
	lines(bet.MarketGoals, bet.Over, bet.FullTime, bet.ScopeAway, 0.5, 1.5),
)

func (Goals) Analyze(in Input) []Prediction {
	exp, ok := ExpectGoals(in)
	if !ok {
		return nil
	}
	t := in.Settings.Thresholds

	price := func(b bet.Bet) (float64, float64, bool) {
		var expected float64
		switch {
		case b.Scope == bet.ScopeHome && b.Period == bet.FullTime:
			expected = exp.Home
		case b.Scope == bet.ScopeAway && b.Period == bet.FullTime:
			expected = exp.Away
		case b.Scope == bet.ScopeMatch && b.Period == bet.FirstHalf:
			expected = exp.HalfTime
		case b.Scope == bet.ScopeMatch:
			expected = exp.Total
		default:
			return 0, 0, false
		}
		switch b.Direction {
		case bet.Over:
			threshold := t.GoalsOver
			if b.Line <= 1.5 {
				threshold = t.GoalsOverShort
			}
			return overUnder(b, expected), threshold, true
		case bet.Under:
			return overUnder(b, expected), t.GoalsUnder, true
		}
		return 0, 0, false
	}

	evidence := []string{
		fmt.Sprintf("expected goals %.2f (first half %.2f)", exp.Total, exp.HalfTime),
		fmt.Sprintf("home expects %.2f, away expects %.2f", exp.Home, exp.Away),
	}
	for _, ins := range quality.Compatibility(in.Fixture.Home, in.Fixture.Away) {
		evidence = append(evidence, ins.Description)
	}
	return evaluate(in, bet.MarketGoals, goalsStandard, price, evidence)
}

func concat(groups ...[]bet.Bet) []bet.Bet {
	var out []bet.Bet
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
