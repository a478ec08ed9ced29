package markets

import (
	"fmt"

	"football-betting-engine/internal/bet"
	"football-betting-engine/internal/match"
	"football-betting-engine/internal/mathutil"
)

// MaxSuperiority bounds the superiority score on both sides.
const MaxSuperiority = 10.0

// Handicaps prices Asian and European handicap lines.
type Handicaps struct{}

func (Handicaps) Market() bet.Market { return bet.MarketHandicap }

// Superiority scores the home side's advantage in [-10,10]; negative means
// the visitors are stronger. Four factors contribute: goal balance (up to
// 4), table gap (up to 3), attack against a leaky defence (1.5 each way)
// and corner volume (0.5).
func Superiority(home, away match.TeamStats, table match.Table) float64 {
	h, a := home.Home, away.Away
	score := 0.0

	diff := (h.GoalsScored - h.GoalsConceded) - (a.GoalsScored - a.GoalsConceded)
	score += banded(diff, []band{{2.5, 4}, {1.5, 3}, {0.8, 2}, {0.3, 1}})

	rh, ra := table.Rank(home.ID), table.Rank(away.ID)
	if rh > 0 && ra > 0 {
		score += banded(float64(ra-rh), []band{{10, 3}, {6, 2}, {3, 1}})
	}

	if h.GoalsScored >= 2.0 && a.GoalsConceded >= 1.5 {
		score += 1.5
	}
	if a.GoalsScored >= 2.0 && h.GoalsConceded >= 1.5 {
		score -= 1.5
	}

	score += banded(h.CornersFor-a.CornersFor, []band{{3, 0.5}})
	return mathutil.Clamp(score, -MaxSuperiority, MaxSuperiority)
}

type band struct {
	from   float64
	points float64
}

// banded awards the points of the first band the value reaches, and the
// negated points for the mirror image.
func banded(v float64, bands []band) float64 {
	for _, b := range bands {
		if v >= b.from {
			return b.points
		}
		if v <= -b.from {
			return -b.points
		}
	}
	return 0
}

// HandicapProbability maps superiority and the handicap given away to the
// chance of covering. Higher superiority and smaller handicaps give more.
func HandicapProbability(superiority, line float64) float64 {
	switch {
	case superiority >= 6.0:
		switch {
		case line >= 2.0:
			return 70
		case line >= 1.0:
			return 75
		}
		return 80
	case superiority >= 3.5:
		switch {
		case line >= 2.0:
			return 55
		case line >= 1.0:
			return 65
		}
		return 70
	case superiority >= 1.5:
		if line >= 1.0 {
			return 50
		}
		return 60
	}
	return 45
}

// handicapStandard lists the lines worth a tactical look at a given
// superiority.
func handicapStandard(sup float64) []bet.Bet {
	hc := func(d bet.Direction, line float64, style bet.HandicapStyle) bet.Bet {
		return bet.Bet{Market: bet.MarketHandicap, Direction: d, Line: line, Handicap: style}
	}
	var out []bet.Bet
	if sup >= 6.0 {
		out = append(out, hc(bet.Home, 2.5, bet.Asian), hc(bet.Home, 2.0, bet.Asian), hc(bet.Home, 2, bet.European))
	}
	if sup >= 3.5 {
		out = append(out, hc(bet.Home, 1.5, bet.Asian), hc(bet.Home, 1.0, bet.Asian), hc(bet.Home, 1, bet.European))
	}
	if sup >= 1.5 {
		out = append(out, hc(bet.Home, 0.5, bet.Asian), hc(bet.Home, 0, bet.Asian))
	}
	if sup <= -1.5 {
		out = append(out, hc(bet.Away, 0.5, bet.Asian), hc(bet.Away, 1.0, bet.Asian))
	}
	return out
}

func (Handicaps) Analyze(in Input) []Prediction {
	f := in.Fixture
	h, a := f.Home.Home, f.Away.Away
	if allZero(h.GoalsScored, h.GoalsConceded, a.GoalsScored, a.GoalsConceded) {
		return nil
	}
	sup := Superiority(f.Home, f.Away, f.Table)
	t := in.Settings.Thresholds

	price := func(b bet.Bet) (float64, float64, bool) {
		var side float64
		switch b.Direction {
		case bet.Home:
			side = sup
		case bet.Away:
			side = -sup
		default:
			return 0, 0, false
		}
		threshold := t.HandicapLow
		switch {
		case b.Line >= 1.5:
			threshold = t.HandicapStrong
		case b.Line >= 1.0:
			threshold = t.HandicapMedium
		}
		return HandicapProbability(side, b.Line), threshold, true
	}

	evidence := []string{fmt.Sprintf("home superiority %+.1f/10", sup)}
	return evaluate(in, bet.MarketHandicap, handicapStandard(sup), price, evidence)
}
