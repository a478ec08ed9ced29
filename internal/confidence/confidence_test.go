package confidence

import (
	"math"
	"testing"

	"football-betting-engine/internal/bet"
	"football-betting-engine/internal/scenario"
)

var (
	over25  = bet.Bet{Market: bet.MarketGoals, Direction: bet.Over, Line: 2.5}
	under25 = bet.Bet{Market: bet.MarketGoals, Direction: bet.Under, Line: 2.5}
)

func TestBaseConfidence(t *testing.T) {
	tests := []struct {
		prob     float64
		expected float64
	}{
		{100, 10},
		{85, 9},
		{80, 8.5},
		{70, 7.5},
		{60, 6.5},
		{50, 5.5},
		{40, 4.5},
		{20, 2},
		{5, 1},
		{0, 1},
	}

	for _, tt := range tests {
		result := BaseConfidence(tt.prob)
		if math.Abs(result-tt.expected) > 1e-9 {
			t.Errorf("BaseConfidence(%.0f) = %v, want %v", tt.prob, result, tt.expected)
		}
	}
}

func TestBaseConfidenceMonotonicAndBounded(t *testing.T) {
	prev := 0.0
	for p := 0.0; p <= 100; p += 0.5 {
		c := BaseConfidence(p)
		if c < Min || c > Max {
			t.Fatalf("BaseConfidence(%v) = %v out of [1,10]", p, c)
		}
		if c < prev {
			t.Fatalf("BaseConfidence decreased at %v: %v < %v", p, c, prev)
		}
		prev = c
	}
}

func TestClampIdempotent(t *testing.T) {
	for _, x := range []float64{-3, 0.5, 1, 5.5, 10, 14} {
		if Clamp(Clamp(x)) != Clamp(x) {
			t.Errorf("Clamp not idempotent for %v", x)
		}
	}
}

func TestCoherenceModifier(t *testing.T) {
	table := DefaultCoherence()

	tests := []struct {
		name     string
		bet      bet.Bet
		label    scenario.Label
		expected float64
	}{
		{"over 2.5 in open game", over25, scenario.OpenHighScoring, 1.5},
		{"over 2.5 in cagey game", over25, scenario.CageyTactical, -2.5},
		{"first-half line shares the rule", bet.Bet{Market: bet.MarketGoals, Direction: bet.Over, Line: 2.5, Period: bet.FirstHalf}, scenario.OpenHighScoring, 1.5},
		{"over 3.5 has no rule", bet.Bet{Market: bet.MarketGoals, Direction: bet.Over, Line: 3.5}, scenario.CageyTactical, 0},
		{"under 2.5 with home on fire", under25, scenario.TeamOnFireHome, -2.5},
		{"under 2.5 in cagey game", under25, scenario.CageyTactical, 1.5},
		{"over 1.5 controlled knockout", bet.Bet{Market: bet.MarketGoals, Direction: bet.Over, Line: 1.5}, scenario.LowScoringControlled, -2.5},
		{"over 1.5 on fire", bet.Bet{Market: bet.MarketGoals, Direction: bet.Over, Line: 1.5}, scenario.TeamOnFireAway, 1.2},
		{"btts no under dominance", bet.Bet{Market: bet.MarketBTTS, Direction: bet.No}, scenario.HomeDominance, 1.5},
		{"btts yes never penalised", bet.Bet{Market: bet.MarketBTTS, Direction: bet.Yes}, scenario.CageyTactical, 0},
		{"corners do not use goal rules", bet.Bet{Market: bet.MarketCorners, Direction: bet.Over, Line: 2.5}, scenario.CageyTactical, 0},
		{"team goal line is not the match line", bet.Bet{Market: bet.MarketGoals, Direction: bet.Over, Line: 2.5, Scope: bet.ScopeHome}, scenario.OpenHighScoring, 0},
		{"no scenario", over25, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Modifier(tt.bet, tt.label); got != tt.expected {
				t.Errorf("Modifier(%s, %s) = %v, want %v", tt.bet.Key(), tt.label, got, tt.expected)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	standard := NewCalculator(ModeStandard, DefaultCoherence())
	extended := NewCalculator(ModeExtended, DefaultCoherence())

	tests := []struct {
		name     string
		calc     Calculator
		prob     float64
		bet      bet.Bet
		label    scenario.Label
		odd      float64
		expected float64
	}{
		{"standard caps at ten", standard, 80, over25, scenario.OpenHighScoring, 1.90, 10},
		{"standard floors at one", standard, 30, over25, scenario.CageyTactical, 0, 1},
		{"standard ignores odds", standard, 60, over25, "", 1.10, 6.5},
		{"extended sweet spot with value", extended, 60, over25, "", 2.00, 7.7},
		{"extended short odd", extended, 85, over25, "", 1.25, 8.4},
		{"extended without quote", extended, 60, over25, "", 0, 6.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bd := tt.calc.Evaluate(tt.prob, tt.bet, tt.label, tt.odd)
			if math.Abs(bd.FinalConfidence-tt.expected) > 1e-9 {
				t.Errorf("Evaluate() final = %v, want %v (%+v)", bd.FinalConfidence, tt.expected, bd)
			}
			sum := Clamp(bd.BaseConfidence + bd.ScenarioModifier + bd.ValueModifier + bd.OddsModifier)
			if math.Abs(sum-bd.FinalConfidence) > 1e-9 {
				t.Errorf("breakdown does not add up: %+v", bd)
			}
		})
	}
}

func TestValueModifier(t *testing.T) {
	tests := []struct {
		score    float64
		expected float64
	}{
		{0.20, 1.0}, {0.12, 0.7}, {0.07, 0.4}, {0.01, 0}, {0, 0}, {-0.02, -0.5},
	}
	for _, tt := range tests {
		if got := ValueModifier(tt.score); got != tt.expected {
			t.Errorf("ValueModifier(%v) = %v, want %v", tt.score, got, tt.expected)
		}
	}
}

func TestOddsModifier(t *testing.T) {
	tests := []struct {
		odd      float64
		expected float64
	}{
		{0, 0},
		{1.20, -1.0},
		{1.35, -0.5},
		{1.45, 0},
		{1.50, 0.5},
		{2.20, 0.5},
		{3.00, 0},
		{4.00, -0.5},
	}
	for _, tt := range tests {
		if got := OddsModifier(tt.odd, DefaultOddsPenaltyBelow); got != tt.expected {
			t.Errorf("OddsModifier(%v) = %v, want %v", tt.odd, got, tt.expected)
		}
	}
}

func TestValueRating(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{0.16, "EXCELENTE"},
		{0.11, "MUITO BOM"},
		{0.06, "BOM"},
		{0.03, "RAZOÁVEL"},
		{0.01, "MARGINAL"},
		{-0.01, "SEM VALOR"},
	}
	for _, tt := range tests {
		if got := ValueRating(tt.score); got != tt.expected {
			t.Errorf("ValueRating(%v) = %q, want %q", tt.score, got, tt.expected)
		}
	}
	if got := FormatValue(0.125); got != "+12.5%" {
		t.Errorf("FormatValue(0.125) = %q, want +12.5%%", got)
	}
	if got := FormatValue(-0.03); got != "-3.0%" {
		t.Errorf("FormatValue(-0.03) = %q, want -3.0%%", got)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeStandard, "Extended": ModeExtended, "standard": ModeStandard} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMode("aggressive"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
