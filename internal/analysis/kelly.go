package analysis

import "math"

// KellyDecimal computes the Kelly fraction for decimal odds.
// f* = (p * d - 1) / (d - 1)
// where p is the win probability (0-1) and d the decimal odd.
//
// fraction scales the result (e.g., 0.25 for quarter Kelly).
func KellyDecimal(prob, odd, fraction float64) float64 {
	if odd <= 1 || prob <= 0 || prob >= 1 {
		return 0
	}

	kelly := (prob*odd - 1) / (odd - 1)

	// Floor at 0, never more than the whole bankroll
	kelly = math.Max(0, kelly)
	kelly = math.Min(kelly, 1.0)

	return kelly * fraction
}

// ExpectedValue returns the expected profit per unit staked at a decimal odd.
func ExpectedValue(prob, odd float64) float64 {
	if odd <= 1 || prob <= 0 {
		return 0
	}
	return prob*(odd-1) - (1 - prob)
}
