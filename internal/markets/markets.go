// Package markets prices betting lines for one fixture. Each analyzer turns
// team averages into a statistical probability per line, runs it through the
// confidence calculator and keeps the lines that clear its threshold.
package markets

import (
	"sort"

	"football-betting-engine/internal/analysis"
	"football-betting-engine/internal/bet"
	"football-betting-engine/internal/confidence"
	"football-betting-engine/internal/match"
	"football-betting-engine/internal/scenario"
)

// DefaultMinOdd is the lowest quoted odd worth evaluating.
const DefaultMinOdd = 1.20

// HalfTimeShare is the fraction of a full-time expectation assigned to the
// first half.
const HalfTimeShare = 0.48

// Thresholds are the per-sub-market minimum final confidences.
type Thresholds struct {
	GoalsOverShort float64 `yaml:"goals_over_short" json:"goals_over_short"`
	GoalsOver      float64 `yaml:"goals_over" json:"goals_over"`
	GoalsUnder     float64 `yaml:"goals_under" json:"goals_under"`
	CornersOver    float64 `yaml:"corners_over" json:"corners_over"`
	CornersUnder   float64 `yaml:"corners_under" json:"corners_under"`
	Cards          float64 `yaml:"cards" json:"cards"`
	BTTSYes        float64 `yaml:"btts_yes" json:"btts_yes"`
	BTTSNo         float64 `yaml:"btts_no" json:"btts_no"`
	HandicapStrong float64 `yaml:"handicap_strong" json:"handicap_strong"`
	HandicapMedium float64 `yaml:"handicap_medium" json:"handicap_medium"`
	HandicapLow    float64 `yaml:"handicap_low" json:"handicap_low"`
	Shots          float64 `yaml:"shots" json:"shots"`
	Result         float64 `yaml:"result" json:"result"`
	DoubleChance   float64 `yaml:"double_chance" json:"double_chance"`
}

// DefaultThresholds returns the built-in thresholds. Under lines are held
// to a stricter bar than over lines.
func DefaultThresholds() Thresholds {
	return Thresholds{
		GoalsOverShort: 5.5,
		GoalsOver:      5.0,
		GoalsUnder:     5.0,
		CornersOver:    5.0,
		CornersUnder:   5.5,
		Cards:          5.0,
		BTTSYes:        5.5,
		BTTSNo:         6.0,
		HandicapStrong: 6.5,
		HandicapMedium: 6.2,
		HandicapLow:    5.5,
		Shots:          5.5,
		Result:         5.5,
		DoubleChance:   6.0,
	}
}

// Each returns the thresholds by name, for validation and display.
func (t Thresholds) Each() map[string]float64 {
	return map[string]float64{
		"goals_over_short": t.GoalsOverShort,
		"goals_over":       t.GoalsOver,
		"goals_under":      t.GoalsUnder,
		"corners_over":     t.CornersOver,
		"corners_under":    t.CornersUnder,
		"cards":            t.Cards,
		"btts_yes":         t.BTTSYes,
		"btts_no":          t.BTTSNo,
		"handicap_strong":  t.HandicapStrong,
		"handicap_medium":  t.HandicapMedium,
		"handicap_low":     t.HandicapLow,
		"shots":            t.Shots,
		"result":           t.Result,
		"double_chance":    t.DoubleChance,
	}
}

// Settings is the read-only market configuration of a run.
type Settings struct {
	Thresholds Thresholds `yaml:"thresholds" json:"thresholds"`
	MinOdd     float64    `yaml:"min_odd" json:"min_odd"`
}

// DefaultSettings returns the built-in market configuration.
func DefaultSettings() Settings {
	return Settings{Thresholds: DefaultThresholds(), MinOdd: DefaultMinOdd}
}

// Input is everything an analyzer reads.
type Input struct {
	Fixture    match.Fixture
	Scenario   scenario.Result
	Calculator confidence.Calculator
	Settings   Settings
}

// Prediction is one priced line that cleared its threshold.
type Prediction struct {
	Bet         bet.Bet              `json:"bet"`
	Label       string               `json:"label"`
	Confidence  float64              `json:"confidence"`
	Probability float64              `json:"probability"`
	Odd         float64              `json:"odd,omitempty"`
	Tactical    bool                 `json:"tactical"`
	Breakdown   confidence.Breakdown `json:"breakdown"`
	Evidence    []string             `json:"evidence,omitempty"`
}

// Analyzer prices the lines of one market.
type Analyzer interface {
	Market() bet.Market
	Analyze(in Input) []Prediction
}

// All returns every analyzer in display order.
func All() []Analyzer {
	return []Analyzer{
		Goals{}, Corners{}, Cards{}, BTTS{}, Handicaps{}, Shots{}, Result{},
	}
}

// Run executes the analyzers and merges their predictions, highest
// confidence first.
func Run(in Input, analyzers ...Analyzer) []Prediction {
	var out []Prediction
	for _, a := range analyzers {
		out = append(out, a.Analyze(in)...)
	}
	Sort(out)
	return out
}

// Sort orders predictions by descending confidence, then by bet key so the
// order is deterministic.
func Sort(preds []Prediction) {
	sort.SliceStable(preds, func(i, j int) bool {
		if preds[i].Confidence != preds[j].Confidence {
			return preds[i].Confidence > preds[j].Confidence
		}
		return preds[i].Bet.Key() < preds[j].Bet.Key()
	})
}

// pricer returns the statistical probability of a bet and the threshold it
// must clear. ok is false for bets the analyzer does not price.
type pricer func(b bet.Bet) (prob, threshold float64, ok bool)

// evaluate prices the quoted lines of a market, or the standard lines as
// unquoted tactical picks when nothing in the market is quoted.
func evaluate(in Input, market bet.Market, standard []bet.Bet, price pricer, evidence []string) []Prediction {
	bets := in.Fixture.Odds.Quoted(market)
	quoted := len(bets) > 0
	if !quoted {
		bets = standard
	}

	minOdd := in.Settings.MinOdd
	if minOdd <= 0 {
		minOdd = DefaultMinOdd
	}

	var preds []Prediction
	for _, b := range bets {
		prob, threshold, ok := price(b)
		if !ok {
			continue
		}
		var odd float64
		if quoted {
			odd, _ = in.Fixture.Odds.Lookup(b)
			if odd < minOdd {
				continue
			}
		}
		prob = analysis.ClampPercent(prob)
		bd := in.Calculator.Evaluate(prob, b, in.Scenario.Label, odd)
		if bd.FinalConfidence < threshold {
			continue
		}
		preds = append(preds, Prediction{
			Bet:         b,
			Label:       b.Label(),
			Confidence:  bd.FinalConfidence,
			Probability: prob,
			Odd:         odd,
			Tactical:    !quoted,
			Breakdown:   bd,
			Evidence:    evidence,
		})
	}
	Sort(preds)
	return preds
}

// overUnder prices an over/under line against a Poisson expectation.
func overUnder(b bet.Bet, expected float64) float64 {
	if b.Direction == bet.Over {
		return analysis.ProbabilityOver(expected, b.Line)
	}
	return analysis.ProbabilityUnder(expected, b.Line)
}

// scaled applies a multiplicative scenario adjustment, clamped to [0,100].
func scaled(prob, modifier float64) float64 {
	return analysis.ClampPercent(prob * modifier)
}

func lines(market bet.Market, d bet.Direction, period bet.Period, scope bet.Scope, values ...float64) []bet.Bet {
	out := make([]bet.Bet, 0, len(values))
	for _, v := range values {
		out = append(out, bet.Bet{Market: market, Direction: d, Line: v, Period: period, Scope: scope})
	}
	return out
}

func allZero(values ...float64) bool {
	for _, v := range values {
		if v != 0 {
			return false
		}
	}
	return true
}

func labelIn(l scenario.Label, labels ...scenario.Label) bool {
	for _, x := range labels {
		if x == l {
			return true
		}
	}
	return false
}
