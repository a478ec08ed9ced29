package analysis

import (
	"math"
	"testing"
)

func TestKellyDecimal(t *testing.T) {
	tests := []struct {
		name        string
		prob        float64
		odd         float64
		fraction    float64
		expectedMin float64
		expectedMax float64
	}{
		{"positive edge - full Kelly", 0.55, 2.0, 1.0, 0.09, 0.11},
		{"positive edge - quarter Kelly", 0.55, 2.0, 0.25, 0.024, 0.026},
		{"no edge", 0.50, 2.0, 1.0, 0.0, 0.0001},
		{"negative edge", 0.45, 2.0, 1.0, 0.0, 0.0},
		{"big edge on outsider", 0.40, 4.0, 0.25, 0.049, 0.051},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := KellyDecimal(tt.prob, tt.odd, tt.fraction)
			if result < tt.expectedMin || result > tt.expectedMax {
				t.Errorf("KellyDecimal(%v, %v, %v) = %v, expected between %v and %v",
					tt.prob, tt.odd, tt.fraction, result, tt.expectedMin, tt.expectedMax)
			}
		})
	}
}

func TestKellyDecimalEdgeCases(t *testing.T) {
	cases := []struct {
		prob, odd float64
	}{
		{0.5, 1.0},
		{0.5, 0.8},
		{0, 2.0},
		{1, 2.0},
	}
	for _, c := range cases {
		if got := KellyDecimal(c.prob, c.odd, 0.25); got != 0 {
			t.Errorf("KellyDecimal(%v, %v) = %v, want 0", c.prob, c.odd, got)
		}
	}
}

func TestExpectedValue(t *testing.T) {
	tests := []struct {
		prob, odd, want float64
	}{
		{0.55, 2.0, 0.10},
		{0.50, 2.0, 0},
		{0.40, 2.0, -0.20},
		{0.60, 1.0, 0},
	}
	for _, tt := range tests {
		if got := ExpectedValue(tt.prob, tt.odd); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ExpectedValue(%v, %v) = %v, want %v", tt.prob, tt.odd, got, tt.want)
		}
	}
}
