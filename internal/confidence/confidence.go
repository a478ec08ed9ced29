// Package confidence turns a statistical probability into a 1-10
// confidence score, adjusted for coherence with the match scenario.
package confidence

import (
	"fmt"
	"strings"

	"football-betting-engine/internal/bet"
	"football-betting-engine/internal/mathutil"
	"football-betting-engine/internal/odds"
	"football-betting-engine/internal/scenario"
)

// Confidence bounds.
const (
	Min = 1.0
	Max = 10.0
)

// Mode selects which modifiers contribute to the final confidence.
type Mode string

const (
	// ModeStandard uses base confidence and the scenario modifier only.
	ModeStandard Mode = "standard"
	// ModeExtended adds value and odds-risk modifiers for quoted picks.
	ModeExtended Mode = "extended"
)

// ParseMode resolves a mode name; empty means standard.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeStandard:
		return ModeStandard, nil
	case ModeExtended:
		return ModeExtended, nil
	}
	return "", fmt.Errorf("unknown confidence mode %q", s)
}

// Breakdown explains how a final confidence was reached.
type Breakdown struct {
	StatisticalProbability float64 `json:"statistical_probability"`
	BaseConfidence         float64 `json:"base_confidence"`
	ScenarioModifier       float64 `json:"scenario_modifier"`
	ValueModifier          float64 `json:"value_modifier"`
	OddsModifier           float64 `json:"odds_modifier"`
	FinalConfidence        float64 `json:"final_confidence"`
	ValueScore             float64 `json:"value_score"`
}

// BaseConfidence maps a probability in percent onto the 1-10 scale.
// The curve is piecewise linear and non-decreasing.
func BaseConfidence(p float64) float64 {
	switch {
	case p >= 85:
		return Clamp(9.0 + (p-85)/15)
	case p >= 75:
		return 8.0 + (p-75)/10
	case p >= 65:
		return 7.0 + (p-65)/10
	case p >= 55:
		return 6.0 + (p-55)/10
	case p >= 45:
		return 5.0 + (p-45)/10
	case p >= 35:
		return 4.0 + (p-35)/10
	}
	return Clamp(p / 10)
}

// Clamp bounds a confidence to [1,10].
func Clamp(x float64) float64 {
	return mathutil.Clamp(x, Min, Max)
}

// Default extended-mode odds thresholds.
const (
	DefaultOddsPenaltyBelow = 1.40
	heavyFavoriteBelow      = 1.30
	sweetSpotLow            = 1.50
	sweetSpotHigh           = 2.20
	longshotAbove           = 3.50
)

// Calculator carries the settings shared by every market of one run.
type Calculator struct {
	Mode             Mode
	Coherence        Coherence
	OddsPenaltyBelow float64
}

// NewCalculator builds a calculator with the default odds penalty threshold.
func NewCalculator(mode Mode, coherence Coherence) Calculator {
	return Calculator{Mode: mode, Coherence: coherence, OddsPenaltyBelow: DefaultOddsPenaltyBelow}
}

// Evaluate computes the full breakdown for one bet. odd is the quoted
// decimal odd, 0 when the bet is not quoted.
func (c Calculator) Evaluate(prob float64, b bet.Bet, label scenario.Label, odd float64) Breakdown {
	bd := Breakdown{
		StatisticalProbability: prob,
		BaseConfidence:         BaseConfidence(prob),
		ScenarioModifier:       c.Coherence.Modifier(b, label),
	}
	if c.Mode == ModeExtended && odd > 0 {
		bd.ValueScore = odds.Edge(prob, odd)
		bd.ValueModifier = ValueModifier(bd.ValueScore)
		bd.OddsModifier = OddsModifier(odd, c.penaltyBelow())
	}
	bd.FinalConfidence = Clamp(bd.BaseConfidence + bd.ScenarioModifier + bd.ValueModifier + bd.OddsModifier)
	return bd
}

func (c Calculator) penaltyBelow() float64 {
	if c.OddsPenaltyBelow <= 0 {
		return DefaultOddsPenaltyBelow
	}
	return c.OddsPenaltyBelow
}

// ValueModifier rewards a positive edge and penalises a negative one.
func ValueModifier(score float64) float64 {
	switch {
	case score >= 0.15:
		return 1.0
	case score >= 0.10:
		return 0.7
	case score >= 0.05:
		return 0.4
	case score >= 0:
		return 0
	}
	return -0.5
}

// OddsModifier penalises very short and very long odds and rewards the
// 1.50-2.20 range. A missing odd gives 0.
func OddsModifier(odd, penaltyBelow float64) float64 {
	switch {
	case odd <= 0:
		return 0
	case odd < heavyFavoriteBelow:
		return -1.0
	case odd < penaltyBelow:
		return -0.5
	case odd >= sweetSpotLow && odd <= sweetSpotHigh:
		return 0.5
	case odd > longshotAbove:
		return -0.5
	}
	return 0
}

// ValueRating grades a value score for display.
func ValueRating(score float64) string {
	switch {
	case score >= 0.15:
		return "EXCELENTE"
	case score >= 0.10:
		return "MUITO BOM"
	case score >= 0.05:
		return "BOM"
	case score >= 0.02:
		return "RAZOÁVEL"
	case score >= 0:
		return "MARGINAL"
	}
	return "SEM VALOR"
}

// FormatValue renders a value score as a signed percentage, e.g. "+12.5%".
func FormatValue(score float64) string {
	return fmt.Sprintf("%+.1f%%", score*100)
}
