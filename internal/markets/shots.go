package markets

import (
	"fmt"

	"football-betting-engine/internal/analysis"
	"football-betting-engine/internal/bet"
	"football-betting-engine/internal/quality"
)

// MinShotsProbability is the floor a shots-on-target or team shots line
// must reach before it is scored.
const MinShotsProbability = 45.0

// Shots prices total, on-target and team shot lines.
type Shots struct{}

func (Shots) Market() bet.Market { return bet.MarketShots }

var shotsStandard = concat(
	lines(bet.MarketShots, bet.Over, bet.FullTime, bet.ScopeMatch, 21.5, 18.5, 15.5),
	lines(bet.MarketShots, bet.Under, bet.FullTime, bet.ScopeMatch, 18.5, 15.5),
	lines(bet.MarketShots, bet.Over, bet.FullTime, bet.ScopeHome, 11.5),
	lines(bet.MarketShots, bet.Under, bet.FullTime, bet.ScopeHome, 8.5),
	lines(bet.MarketShots, bet.Over, bet.FullTime, bet.ScopeAway, 11.5),
	lines(bet.MarketShots, bet.Under, bet.FullTime, bet.ScopeAway, 8.5),
)

var onTargetStandard = concat(
	lines(bet.MarketShotsOnTarget, bet.Over, bet.FullTime, bet.ScopeMatch, 9.5),
	lines(bet.MarketShotsOnTarget, bet.Under, bet.FullTime, bet.ScopeMatch, 7.5),
)

func (Shots) Analyze(in Input) []Prediction {
	f := in.Fixture
	home, away := f.Home.Home.Shots, f.Away.Away.Shots
	homeOT, awayOT := f.Home.Home.ShotsOnTarget, f.Away.Away.ShotsOnTarget
	if allZero(home, away, homeOT, awayOT) {
		return nil
	}
	wh, wa := quality.WeightedMetrics(f.Home.Recent), quality.WeightedMetrics(f.Away.Recent)
	if wh.ShotsFor > 0 && wa.ShotsFor > 0 {
		home, away = wh.ShotsFor, wa.ShotsFor
	}
	total, onTarget := home+away, homeOT+awayOT
	threshold := in.Settings.Thresholds.Shots

	price := func(b bet.Bet) (float64, float64, bool) {
		if b.Period != bet.FullTime {
			return 0, 0, false
		}
		expected := total
		floor := false
		switch {
		case b.Market == bet.MarketShotsOnTarget && b.Scope == bet.ScopeMatch:
			expected, floor = onTarget, true
		case b.Scope == bet.ScopeHome:
			expected, floor = home, true
		case b.Scope == bet.ScopeAway:
			expected, floor = away, true
		}
		if expected <= 0 {
			return 0, 0, false
		}
		var prob float64
		switch b.Direction {
		case bet.Over:
			prob = analysis.ProbabilityShotsOver(expected, b.Line)
		case bet.Under:
			prob = analysis.ProbabilityShotsUnder(expected, b.Line)
		default:
			return 0, 0, false
		}
		if floor && prob < MinShotsProbability {
			return 0, 0, false
		}
		return prob, threshold, true
	}

	evidence := []string{
		fmt.Sprintf("expected shots %.1f (home %.1f, away %.1f), on target %.1f", total, home, away, onTarget),
	}
	preds := evaluate(in, bet.MarketShots, shotsStandard, price, evidence)
	preds = append(preds, evaluate(in, bet.MarketShotsOnTarget, onTargetStandard, price, evidence)...)
	Sort(preds)
	return preds
}
