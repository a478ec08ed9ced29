// Package ranking orders the predictions of a fixture into main picks and
// alternatives, and sorts picks across fixtures.
package ranking

import (
	"sort"

	"football-betting-engine/internal/analysis"
	"football-betting-engine/internal/bet"
	"football-betting-engine/internal/confidence"
	"football-betting-engine/internal/markets"
	"football-betting-engine/internal/match"
	"football-betting-engine/internal/odds"
	"football-betting-engine/internal/quality"
	"football-betting-engine/internal/scenario"
)

// Board sizes and the tactical priority divisor.
const (
	MainPicks        = 3
	AlternativePicks = 5
	TacticalDivisor  = 20.0

	// KellyFraction scales the suggested stake (quarter Kelly).
	KellyFraction = 0.25
)

// Pick is a ranked prediction.
type Pick struct {
	markets.Prediction

	// Value is the edge over the quote, or confidence/20 for tactical picks.
	Value  float64 `json:"value"`
	Rating string  `json:"rating,omitempty"`

	// FairProbability is the margin-free market probability when the
	// opposite side is also quoted.
	FairProbability float64 `json:"fair_probability,omitempty"`
	Overround       float64 `json:"overround,omitempty"`

	ContextualValue bool `json:"contextual_value,omitempty"`

	// FairOdd is the odd the model probability implies.
	FairOdd       float64 `json:"fair_odd,omitempty"`
	ExpectedValue float64 `json:"expected_value,omitempty"`

	// Stake is the suggested bankroll fraction. Advisory only.
	Stake float64 `json:"stake,omitempty"`
}

// Board is the ranked output for one fixture.
type Board struct {
	Main         []Pick   `json:"main"`
	Alternatives []Pick   `json:"alternatives"`
	Vetoed       []string `json:"vetoed,omitempty"`
}

// Best returns the main pick, if any.
func (b Board) Best() (Pick, bool) {
	if len(b.Main) == 0 {
		return Pick{}, false
	}
	return b.Main[0], true
}

// Context carries what ranking needs besides the predictions.
type Context struct {
	Book     match.Book
	Label    scenario.Label
	Vetoes   scenario.Vetoes
	ValueCtx quality.ValueContext
}

// Rank drops vetoed bets, scores the rest by value and splits them into
// main picks and alternatives. Main picks never contradict each other and
// alternatives never contradict the first main pick.
func Rank(preds []markets.Prediction, ctx Context) Board {
	var board Board
	picks := make([]Pick, 0, len(preds))
	for _, p := range preds {
		if ctx.Vetoes.Vetoed(ctx.Label, p.Bet) {
			board.Vetoed = append(board.Vetoed, p.Bet.Key())
			continue
		}
		picks = append(picks, score(p, ctx))
	}
	Sort(picks)

	var rest []Pick
	for _, p := range picks {
		if len(board.Main) < MainPicks && !conflictsAny(p, board.Main) {
			board.Main = append(board.Main, p)
			continue
		}
		rest = append(rest, p)
	}
	if len(board.Main) == 0 {
		return board
	}
	lead := board.Main[0]
	for _, p := range rest {
		if len(board.Alternatives) == AlternativePicks {
			break
		}
		if p.Value < 0 && !p.ContextualValue {
			continue
		}
		if bet.Conflicts(lead.Bet, p.Bet) {
			continue
		}
		board.Alternatives = append(board.Alternatives, p)
	}
	return board
}

func score(p markets.Prediction, ctx Context) Pick {
	pick := Pick{Prediction: p}
	if p.Odd <= 1 {
		pick.Value = p.Confidence / TacticalDivisor
		return pick
	}
	pick.Value = odds.Edge(p.Probability, p.Odd)
	pick.Rating = confidence.ValueRating(pick.Value)
	pick.ContextualValue = ctx.ValueCtx.AllowsLowOdd(p.Odd, p.Bet.Market)
	pick.FairOdd = odds.FairOdd(p.Probability)
	pick.ExpectedValue = analysis.ExpectedValue(p.Probability/100, p.Odd)
	pick.Stake = analysis.KellyDecimal(p.Probability/100, p.Odd, KellyFraction)

	if opp, ok := opposite(p.Bet); ok {
		if oppOdd, ok := ctx.Book.Lookup(opp); ok && oppOdd > 1 {
			pick.FairProbability, _ = odds.FairPair(p.Odd, oppOdd)
			pick.Overround = odds.Overround(p.Odd, oppOdd)
		}
	}
	return pick
}

// opposite returns the other side of a two-way market.
func opposite(b bet.Bet) (bet.Bet, bool) {
	switch b.Market {
	case bet.MarketResult, bet.MarketHandicap:
		return bet.Bet{}, false
	}
	d := b.Direction.Opposite()
	if d == bet.DirectionUnknown {
		return bet.Bet{}, false
	}
	b.Direction = d
	return b, true
}

func conflictsAny(p Pick, chosen []Pick) bool {
	for _, c := range chosen {
		if bet.Conflicts(c.Bet, p.Bet) || c.Bet.Key() == p.Bet.Key() {
			return true
		}
	}
	return false
}

// Sort orders picks by value, then confidence, then bet key.
func Sort(picks []Pick) {
	sort.SliceStable(picks, func(i, j int) bool {
		a, b := picks[i], picks[j]
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		return a.Bet.Key() < b.Bet.Key()
	})
}
