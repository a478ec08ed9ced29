package markets

import (
	"fmt"
	"math"

	"football-betting-engine/internal/analysis"
	"football-betting-engine/internal/bet"
)

// BTTS gates: a yes pick needs at least this probability, a no pick needs
// the probability below BTTSNoBelow.
const (
	BTTSYesFrom = 50.0
	BTTSNoBelow = 45.0

	maxScoringRate = 0.95
)

// BTTS prices both-teams-to-score.
type BTTS struct{}

func (BTTS) Market() bet.Market { return bet.MarketBTTS }

// ScoringRate turns a per-game scoring average into the chance of scoring
// at least once, capped at 0.95.
func ScoringRate(avg float64) float64 {
	return math.Min(avg/2.5, maxScoringRate)
}

var bttsStandard = []bet.Bet{
	{Market: bet.MarketBTTS, Direction: bet.Yes},
	{Market: bet.MarketBTTS, Direction: bet.No},
}

func (BTTS) Analyze(in Input) []Prediction {
	homeAvg, awayAvg := in.Fixture.Home.Home.GoalsScored, in.Fixture.Away.Away.GoalsScored
	if allZero(homeAvg, awayAvg) {
		return nil
	}
	rh, ra := ScoringRate(homeAvg), ScoringRate(awayAvg)
	yes := analysis.ProbabilityBTTS(rh, ra)
	t := in.Settings.Thresholds

	price := func(b bet.Bet) (float64, float64, bool) {
		if b.Period != bet.FullTime {
			return 0, 0, false
		}
		switch b.Direction {
		case bet.Yes:
			if yes < BTTSYesFrom {
				return 0, 0, false
			}
			return yes, t.BTTSYes, true
		case bet.No:
			if yes >= BTTSNoBelow {
				return 0, 0, false
			}
			return 100 - yes, t.BTTSNo, true
		}
		return 0, 0, false
	}

	evidence := []string{
		fmt.Sprintf("both teams score %.1f%% (home %.0f%%, away %.0f%%)", yes, rh*100, ra*100),
	}
	return evaluate(in, bet.MarketBTTS, bttsStandard, price, evidence)
}
