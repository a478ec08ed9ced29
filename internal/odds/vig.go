package odds

import "math"

// RemoveVig removes the bookmaker margin from a two-way market
// Returns the true probabilities that sum to 1.0
//
// Method: multiplicative (proportional)
// trueProbA = impliedA / (impliedA + impliedB)
func RemoveVig(impliedA, impliedB float64) (float64, float64) {
	if impliedA <= 0 || impliedB <= 0 {
		return 0, 0
	}
	total := impliedA + impliedB
	return impliedA / total, impliedB / total
}

// RemoveVigPower removes the margin with the power method, which deflates
// longshots more than favourites.
// Finds k such that p1^k + p2^k = 1.
func RemoveVigPower(impliedA, impliedB float64) (float64, float64) {
	if impliedA <= 0 || impliedB <= 0 || impliedA >= 1 || impliedB >= 1 {
		return RemoveVig(impliedA, impliedB)
	}
	if math.Abs(impliedA+impliedB-1.0) < 1e-9 {
		return impliedA, impliedB
	}
	k := findPowerExponent(impliedA, impliedB)
	return math.Pow(impliedA, k), math.Pow(impliedB, k)
}

// findPowerExponent bisects for k in [0.01, 10].
func findPowerExponent(p1, p2 float64) float64 {
	const (
		tolerance = 1e-9
		maxIters  = 100
	)

	low, high := 0.01, 10.0
	for i := 0; i < maxIters; i++ {
		mid := (low + high) / 2
		sum := math.Pow(p1, mid) + math.Pow(p2, mid)
		if math.Abs(sum-1.0) < tolerance {
			return mid
		}
		// Higher k shrinks the sum.
		if sum > 1 {
			low = mid
		} else {
			high = mid
		}
	}
	return (low + high) / 2
}

// Overround is the bookmaker margin of a two-way market, e.g. 0.05 for 5%.
func Overround(oddA, oddB float64) float64 {
	if oddA <= 1 || oddB <= 1 {
		return 0
	}
	return Implied(oddA) + Implied(oddB) - 1
}

// FairPair returns the margin-free probabilities (in percent) of two
// complementary decimal quotes, e.g. over/under the same line.
func FairPair(oddA, oddB float64) (float64, float64) {
	a, b := RemoveVigPower(Implied(oddA), Implied(oddB))
	return a * 100, b * 100
}
