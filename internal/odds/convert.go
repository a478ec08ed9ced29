package odds

import "github.com/shopspring/decimal"

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Implied converts a decimal odd to its implied probability in [0,1].
// Odds at or below 1.0 carry no information and return 0.
// Example: 2.00 → 0.5, 1.50 → 0.6667
func Implied(odd float64) float64 {
	if odd <= 1.0 {
		return 0
	}
	p, _ := one.Div(decimal.NewFromFloat(odd)).Float64()
	return p
}

// Edge is the value of a pick: model probability minus implied probability.
// prob is in percent. Odds at or below 1.0 give 0.
// Example: 60% at 2.00 → 0.10
func Edge(prob, odd float64) float64 {
	if odd <= 1.0 {
		return 0
	}
	p := decimal.NewFromFloat(prob).Div(hundred)
	implied := one.Div(decimal.NewFromFloat(odd))
	edge, _ := p.Sub(implied).Round(6).Float64()
	return edge
}

// FairOdd is the decimal odd that exactly prices a probability in percent.
// A probability of 0 has no fair price and returns 0.
func FairOdd(prob float64) float64 {
	if prob <= 0 {
		return 0
	}
	fair, _ := hundred.Div(decimal.NewFromFloat(prob)).Round(2).Float64()
	return fair
}
