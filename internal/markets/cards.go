package markets

import (
	"fmt"

	"football-betting-engine/internal/bet"
	"football-betting-engine/internal/quality"
	"football-betting-engine/internal/scenario"
)

// Cards prices total booking lines. Yellow and red cards count alike.
type Cards struct{}

func (Cards) Market() bet.Market { return bet.MarketCards }

var cardsStandard = concat(
	lines(bet.MarketCards, bet.Over, bet.FullTime, bet.ScopeMatch, 3.5, 4.5, 5.5),
	lines(bet.MarketCards, bet.Under, bet.FullTime, bet.ScopeMatch, 3.5, 4.5, 5.5),
)

func (Cards) Analyze(in Input) []Prediction {
	h, a := in.Fixture.Home.Home, in.Fixture.Away.Away
	if allZero(h.YellowCards, h.RedCards, a.YellowCards, a.RedCards) {
		return nil
	}
	home := h.YellowCards + h.RedCards
	away := a.YellowCards + a.RedCards
	total := home + away

	vc := quality.DetectValueContext(in.Fixture)
	label := in.Scenario.Label
	threshold := in.Settings.Thresholds.Cards

	price := func(b bet.Bet) (float64, float64, bool) {
		if b.Scope != bet.ScopeMatch || b.Period != bet.FullTime {
			return 0, 0, false
		}
		if b.Direction != bet.Over && b.Direction != bet.Under {
			return 0, 0, false
		}
		return scaled(overUnder(b, total), CardsModifier(b, label, vc)), threshold, true
	}

	evidence := []string{
		fmt.Sprintf("expected cards %.1f (home %.1f, away %.1f)", total, home, away),
	}
	if vc.Derby {
		evidence = append(evidence, "derby fixture")
	} else if vc.Tense {
		evidence = append(evidence, "tense meeting of big clubs")
	}
	return evaluate(in, bet.MarketCards, cardsStandard, price, evidence)
}

// CardsModifier scales a card probability. Tense scenarios push overs up
// and unders down; calm ones do the opposite. A derby or big-club clash
// counts as tense when the scenario itself is neutral.
func CardsModifier(b bet.Bet, label scenario.Label, vc quality.ValueContext) float64 {
	switch b.Direction {
	case bet.Over:
		switch {
		case labelIn(label, scenario.BalancedRivalryClash, scenario.RelegationBattle,
			scenario.CageyTactical, scenario.TightLowScoring):
			return 1.25
		case labelIn(label, scenario.GiantVsMinnow, scenario.LowMotivation):
			return 0.80
		case vc.Tense:
			return 1.20
		}
	case bet.Under:
		switch {
		case labelIn(label, scenario.GiantVsMinnow, scenario.LowMotivation):
			return 1.25
		case labelIn(label, scenario.BalancedRivalryClash, scenario.RelegationBattle):
			return 0.80
		case vc.Tense:
			return 0.80
		}
	}
	return 1.0
}
