package analysis

import (
	"math"
)

// Probability models for match counts.
// Goals, corners and cards use Poisson; shots use a bucketed step
// function because their variance is too wide for Poisson.

// PoissonPMF calculates P(X = k) for Poisson distribution with mean λ
func PoissonPMF(k int, lambda float64) float64 {
	if k < 0 || lambda <= 0 {
		return 0
	}
	// P(X=k) = e^(-λ) * λ^k / k!
	// Use log to avoid overflow
	logProb := -lambda + float64(k)*math.Log(lambda) - logFactorial(k)
	return math.Exp(logProb)
}

func logFactorial(n int) float64 {
	if n <= 1 {
		return 0
	}
	result := 0.0
	for i := 2; i <= n; i++ {
		result += math.Log(float64(i))
	}
	return result
}

// PoissonCDF calculates P(X <= k)
func PoissonCDF(k int, lambda float64) float64 {
	if k < 0 {
		return 0
	}
	if lambda <= 0 {
		return 1
	}
	sum := 0.0
	for i := 0; i <= k; i++ {
		sum += PoissonPMF(i, lambda)
	}
	return math.Min(sum, 1)
}

// PoissonCDFOver calculates P(X >= k) for Poisson distribution
func PoissonCDFOver(k int, lambda float64) float64 {
	if lambda <= 0 {
		return 0
	}
	if k <= 0 {
		return 1
	}
	return 1 - PoissonCDF(k-1, lambda)
}

// ProbabilityOver returns P(X > line) in percent for a Poisson count with
// mean weightedAverage. Half lines settle on floor(line)+1 or more.
// A non-positive average means no expectation and yields 0.
func ProbabilityOver(weightedAverage, line float64) float64 {
	if weightedAverage <= 0 || line < 0 {
		return 0
	}
	k := int(math.Floor(line))
	p := PoissonCDFOver(k+1, weightedAverage) * 100
	return ClampPercent(p)
}

// ProbabilityUnder is the complement of ProbabilityOver.
func ProbabilityUnder(weightedAverage, line float64) float64 {
	if weightedAverage <= 0 {
		return 0
	}
	return ClampPercent(100 - ProbabilityOver(weightedAverage, line))
}

// ProbabilityBTTS treats each side scoring as an independent event with
// the given per-match rates in [0,1].
func ProbabilityBTTS(rateA, rateB float64) float64 {
	return ClampPercent(rateA * rateB * 100)
}

// Step buckets for shots, keyed on average minus line.
var shotBuckets = []struct {
	margin float64
	pct    float64
}{
	{3, 75},
	{1, 65},
	{0, 55},
	{-1, 45},
	{-3, 35},
}

const shotsFloorPct = 25.0

// ProbabilityShotsOver maps the gap between expected shots and the line to
// a bucketed probability. A missing average (<= 0) returns the neutral 50.
func ProbabilityShotsOver(weightedAverage, line float64) float64 {
	if weightedAverage <= 0 {
		return 50
	}
	diff := weightedAverage - line
	for _, b := range shotBuckets {
		if diff >= b.margin {
			return b.pct
		}
	}
	return shotsFloorPct
}

// ProbabilityShotsUnder is the complement of ProbabilityShotsOver.
func ProbabilityShotsUnder(weightedAverage, line float64) float64 {
	return 100 - ProbabilityShotsOver(weightedAverage, line)
}

// maxGoalsGrid bounds the scoreline grid used by MatchOutcome.
const maxGoalsGrid = 10

// Outcome holds 1X2 probabilities in percent.
type Outcome struct {
	Home float64
	Draw float64
	Away float64
}

// MatchOutcome builds a 1X2 distribution from two independent Poisson
// goal expectations, normalised over a 0..10 scoreline grid.
func MatchOutcome(lambdaHome, lambdaAway float64) Outcome {
	if lambdaHome <= 0 && lambdaAway <= 0 {
		return Outcome{}
	}
	var home, draw, away float64
	for h := 0; h <= maxGoalsGrid; h++ {
		ph := poissonOrZero(h, lambdaHome)
		for a := 0; a <= maxGoalsGrid; a++ {
			p := ph * poissonOrZero(a, lambdaAway)
			switch {
			case h > a:
				home += p
			case h == a:
				draw += p
			default:
				away += p
			}
		}
	}
	total := home + draw + away
	if total <= 0 {
		return Outcome{}
	}
	return Outcome{
		Home: home / total * 100,
		Draw: draw / total * 100,
		Away: away / total * 100,
	}
}

// poissonOrZero treats a zero mean as a certain zero count.
func poissonOrZero(k int, lambda float64) float64 {
	if lambda <= 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	return PoissonPMF(k, lambda)
}

// ClampPercent bounds a probability to [0,100].
func ClampPercent(p float64) float64 {
	return math.Max(0, math.Min(100, p))
}
