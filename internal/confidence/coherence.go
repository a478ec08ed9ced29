package confidence

import (
	"football-betting-engine/internal/bet"
	"football-betting-engine/internal/scenario"
)

// DefaultIncoherencePenalty is subtracted when a bet contradicts the scenario.
const DefaultIncoherencePenalty = 2.5

// CoherenceRule lists the scenarios that support a bet and the bonus they give.
type CoherenceRule struct {
	Bet      bet.Bet          `yaml:"bet" json:"bet"`
	Coherent []scenario.Label `yaml:"coherent" json:"coherent"`
	Bonus    float64          `yaml:"bonus" json:"bonus"`
}

// Coherence is the scenario-modifier table. Over and under bets with a rule
// are penalised under the scenarios listed in OverIncoherent and
// UnderIncoherent respectively.
type Coherence struct {
	Rules           []CoherenceRule  `yaml:"rules" json:"rules"`
	Penalty         float64          `yaml:"penalty" json:"penalty"`
	OverIncoherent  []scenario.Label `yaml:"over_incoherent" json:"over_incoherent"`
	UnderIncoherent []scenario.Label `yaml:"under_incoherent" json:"under_incoherent"`
}

// DefaultCoherence returns the built-in table.
func DefaultCoherence() Coherence {
	goals := func(d bet.Direction, line float64) bet.Bet {
		return bet.Bet{Market: bet.MarketGoals, Direction: d, Line: line}
	}
	return Coherence{
		Rules: []CoherenceRule{
			{
				Bet: goals(bet.Over, 2.5),
				Coherent: []scenario.Label{
					scenario.OpenHighScoring, scenario.HomeDominance, scenario.AwayDominance,
					scenario.TeamOnFireHome, scenario.TeamOnFireAway,
				},
				Bonus: 1.5,
			},
			{
				Bet: goals(bet.Under, 2.5),
				Coherent: []scenario.Label{
					scenario.CageyTactical, scenario.RelegationBattle, scenario.LowMotivation,
					scenario.TightLowScoring, scenario.BalancedTacticalBattle,
				},
				Bonus: 1.5,
			},
			{
				Bet:      goals(bet.Over, 1.5),
				Coherent: []scenario.Label{scenario.OpenHighScoring, scenario.TeamOnFireHome, scenario.TeamOnFireAway},
				Bonus:    1.2,
			},
			{
				Bet:      bet.Bet{Market: bet.MarketBTTS, Direction: bet.Yes},
				Coherent: []scenario.Label{scenario.BalancedRivalryClash, scenario.OpenHighScoring},
				Bonus:    1.5,
			},
			{
				Bet:      bet.Bet{Market: bet.MarketBTTS, Direction: bet.No},
				Coherent: []scenario.Label{scenario.GiantVsMinnow, scenario.HomeDominance, scenario.AwayDominance},
				Bonus:    1.5,
			},
		},
		Penalty: DefaultIncoherencePenalty,
		OverIncoherent: []scenario.Label{
			scenario.CageyTactical, scenario.TightLowScoring, scenario.LowScoringControlled, scenario.LowMotivation,
		},
		UnderIncoherent: []scenario.Label{
			scenario.OpenHighScoring, scenario.TeamOnFireHome, scenario.TeamOnFireAway,
		},
	}
}

// Modifier returns the coherence bonus, the incoherence penalty (negative)
// or 0. Rules match on market, direction, line and scope; the period is
// ignored so a first-half line shares its full-time rule.
func (c Coherence) Modifier(b bet.Bet, label scenario.Label) float64 {
	if label == "" {
		return 0
	}
	r, ok := c.rule(b)
	if !ok {
		return 0
	}
	if contains(r.Coherent, label) {
		return r.Bonus
	}
	switch {
	case b.Direction == bet.Over && contains(c.OverIncoherent, label):
		return -c.Penalty
	case b.Direction == bet.Under && contains(c.UnderIncoherent, label):
		return -c.Penalty
	}
	return 0
}

func (c Coherence) rule(b bet.Bet) (CoherenceRule, bool) {
	for _, r := range c.Rules {
		if r.Bet.Market == b.Market && r.Bet.Direction == b.Direction &&
			r.Bet.Line == b.Line && r.Bet.Scope == b.Scope {
			return r, true
		}
	}
	return CoherenceRule{}, false
}

func contains(labels []scenario.Label, l scenario.Label) bool {
	for _, x := range labels {
		if x == l {
			return true
		}
	}
	return false
}
