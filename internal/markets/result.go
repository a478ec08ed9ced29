package markets

import (
	"fmt"

	"football-betting-engine/internal/analysis"
	"football-betting-engine/internal/bet"
	"football-betting-engine/internal/scenario"
)

// PriorWeight is the share of the scenario baseline in the blended 1X2.
const PriorWeight = 0.5

// Result prices the 1X2 and double-chance markets.
type Result struct{}

func (Result) Market() bet.Market { return bet.MarketResult }

var resultStandard = []bet.Bet{
	{Market: bet.MarketResult, Direction: bet.Home},
	{Market: bet.MarketResult, Direction: bet.Draw},
	{Market: bet.MarketResult, Direction: bet.Away},
	{Market: bet.MarketResult, Direction: bet.HomeOrDraw},
	{Market: bet.MarketResult, Direction: bet.DrawOrAway},
	{Market: bet.MarketResult, Direction: bet.HomeOrAway},
}

// ExpectOutcome blends an independent-Poisson 1X2 with the scenario priors.
// Without priors the model stands alone.
func ExpectOutcome(in Input) (analysis.Outcome, bool) {
	h, a := in.Fixture.Home.Home, in.Fixture.Away.Away
	if allZero(h.GoalsScored, h.GoalsConceded, a.GoalsScored, a.GoalsConceded) {
		return analysis.Outcome{}, false
	}
	model := analysis.MatchOutcome(
		(h.GoalsScored+a.GoalsConceded)/2,
		(a.GoalsScored+h.GoalsConceded)/2,
	)
	return blend(model, in.Scenario.Priors), true
}

func blend(model analysis.Outcome, p scenario.Priors) analysis.Outcome {
	sum := p.Home + p.Draw + p.Away
	if sum <= 0 {
		return model
	}
	// Priors may not add up to exactly 100.
	scale := 100 / sum
	return analysis.Outcome{
		Home: model.Home*(1-PriorWeight) + p.Home*scale*PriorWeight,
		Draw: model.Draw*(1-PriorWeight) + p.Draw*scale*PriorWeight,
		Away: model.Away*(1-PriorWeight) + p.Away*scale*PriorWeight,
	}
}

func (Result) Analyze(in Input) []Prediction {
	o, ok := ExpectOutcome(in)
	if !ok {
		return nil
	}
	t := in.Settings.Thresholds

	price := func(b bet.Bet) (float64, float64, bool) {
		if b.Period != bet.FullTime {
			return 0, 0, false
		}
		switch b.Direction {
		case bet.Home:
			return o.Home, t.Result, true
		case bet.Draw:
			return o.Draw, t.Result, true
		case bet.Away:
			return o.Away, t.Result, true
		case bet.HomeOrDraw:
			return o.Home + o.Draw, t.DoubleChance, true
		case bet.DrawOrAway:
			return o.Draw + o.Away, t.DoubleChance, true
		case bet.HomeOrAway:
			return o.Home + o.Away, t.DoubleChance, true
		}
		return 0, 0, false
	}

	evidence := []string{
		fmt.Sprintf("home %.0f%% | draw %.0f%% | away %.0f%%", o.Home, o.Draw, o.Away),
	}
	if in.Scenario.Rationale != "" {
		evidence = append(evidence, in.Scenario.Rationale)
	}
	return evaluate(in, bet.MarketResult, resultStandard, price, evidence)
}
