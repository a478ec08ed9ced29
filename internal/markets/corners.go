package markets

import (
	"fmt"

	"football-betting-engine/internal/bet"
	"football-betting-engine/internal/quality"
	"football-betting-engine/internal/scenario"
)

// MinUnderCornersLine is the lowest full-time total line an under pick may use.
const MinUnderCornersLine = 7.5

// Corners prices total, first-half and team corner lines.
type Corners struct{}

func (Corners) Market() bet.Market { return bet.MarketCorners }

// CornersExpectation is the corner model of a fixture.
type CornersExpectation struct {
	Total    float64 `json:"total"`
	HalfTime float64 `json:"half_time"`
	Home     float64 `json:"home"`
	Away     float64 `json:"away"`
	Factor   float64 `json:"factor"`
	Weighted bool    `json:"weighted"`
}

// ExpectCorners builds corner expectations. Opponent-weighted recent
// averages are used when both teams have them; otherwise venue averages.
// Matchup insights scale the totals.
func ExpectCorners(in Input) (CornersExpectation, bool) {
	f := in.Fixture
	homeFor, homeAgainst := f.Home.Home.CornersFor, f.Home.Home.CornersAgainst
	awayFor, awayAgainst := f.Away.Away.CornersFor, f.Away.Away.CornersAgainst

	var exp CornersExpectation
	wh, wa := quality.WeightedMetrics(f.Home.Recent), quality.WeightedMetrics(f.Away.Recent)
	if !wh.IsZero() && !wa.IsZero() {
		homeFor, homeAgainst = wh.CornersFor, wh.CornersAgainst
		awayFor, awayAgainst = wa.CornersFor, wa.CornersAgainst
		exp.Weighted = true
	}
	if allZero(homeFor, homeAgainst, awayFor, awayAgainst) {
		return CornersExpectation{}, false
	}

	exp.Factor = 1.0
	for _, ins := range quality.Compatibility(f.Home, f.Away) {
		switch ins.Kind {
		case quality.HomeCornersEdge:
			exp.Factor *= ins.Factor
		case quality.GoalFestival:
			exp.Factor *= 1.2
		}
	}

	exp.Total = (homeFor + awayAgainst + awayFor + homeAgainst) / 2 * exp.Factor
	exp.HalfTime = exp.Total * HalfTimeShare
	exp.Home = homeFor
	if exp.Factor > 1 {
		exp.Home *= exp.Factor
	}
	exp.Away = awayFor
	return exp, true
}

var cornersStandard = concat(
	lines(bet.MarketCorners, bet.Over, bet.FullTime, bet.ScopeMatch, 8.5, 9.5, 10.5, 11.5),
	lines(bet.MarketCorners, bet.Under, bet.FullTime, bet.ScopeMatch, 8.5, 9.5, 10.5, 11.5),
	lines(bet.MarketCorners, bet.Over, bet.FirstHalf, bet.ScopeMatch, 4.5, 5.5),
	lines(bet.MarketCorners, bet.Under, bet.FirstHalf, bet.ScopeMatch, 4.5, 5.5),
	lines(bet.MarketCorners, bet.Over, bet.FullTime, bet.ScopeHome, 4.5, 5.5, 6.5),
	lines(bet.MarketCorners, bet.Under, bet.FullTime, bet.ScopeHome, 4.5, 5.5, 6.5),
	lines(bet.MarketCorners, bet.Over, bet.FullTime, bet.ScopeAway, 3.5, 4.5, 5.5),
	lines(bet.MarketCorners, bet.Under, bet.FullTime, bet.ScopeAway, 3.5, 4.5, 5.5),
)

func (Corners) Analyze(in Input) []Prediction {
	exp, ok := ExpectCorners(in)
	if !ok {
		return nil
	}
	t := in.Settings.Thresholds
	label := in.Scenario.Label

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
			if b.Direction == bet.Under && b.Line < MinUnderCornersLine {
				return 0, 0, false
			}
			expected = exp.Total
		default:
			return 0, 0, false
		}
		prob := scaled(overUnder(b, expected), CornersModifier(b, label))
		switch b.Direction {
		case bet.Over:
			return prob, t.CornersOver, true
		case bet.Under:
			return prob, t.CornersUnder, true
		}
		return 0, 0, false
	}

	source := "venue averages"
	if exp.Weighted {
		source = "opponent-weighted recent averages"
	}
	evidence := []string{
		fmt.Sprintf("expected corners %.1f (first half %.1f) from %s", exp.Total, exp.HalfTime, source),
		fmt.Sprintf("home %.1f, away %.1f, matchup factor %.2f", exp.Home, exp.Away, exp.Factor),
	}
	return evaluate(in, bet.MarketCorners, cornersStandard, price, evidence)
}

// CornersModifier scales a corner probability by scenario. Attacking
// scenarios favour overs; cagey ones favour unders. A dominant side's own
// over line gets the larger boost.
func CornersModifier(b bet.Bet, label scenario.Label) float64 {
	if label == "" {
		return 1.0
	}
	if b.Direction == bet.Over {
		if b.Scope == bet.ScopeHome && labelIn(label, scenario.HomeDominance, scenario.TeamOnFireHome) {
			return 1.25
		}
		if b.Scope == bet.ScopeAway && labelIn(label, scenario.AwayDominance, scenario.TeamOnFireAway) {
			return 1.25
		}
	}

	switch b.Direction {
	case bet.Over:
		switch {
		case labelIn(label, scenario.OpenHighScoring, scenario.HomeDominance, scenario.AwayDominance,
			scenario.TeamOnFireHome, scenario.TeamOnFireAway):
			return 1.20
		case labelIn(label, scenario.CageyTactical, scenario.TightLowScoring):
			return 0.80
		}
	case bet.Under:
		switch {
		case labelIn(label, scenario.CageyTactical, scenario.TightLowScoring, scenario.LowMotivation):
			return 1.20
		case labelIn(label, scenario.OpenHighScoring, scenario.HomeDominance, scenario.AwayDominance):
			return 0.80
		}
	}
	return 1.0
}
