package scenario

import "football-betting-engine/internal/bet"

// Priors are baseline probabilities (percent) attached to a scenario. They
// are a starting estimate; analyzers compute per-line probabilities on their own.
type Priors struct {
	Home    float64 `json:"home"`
	Draw    float64 `json:"draw"`
	Away    float64 `json:"away"`
	Over25  float64 `json:"over_2_5"`
	Under25 float64 `json:"under_2_5"`
	BTTSYes float64 `json:"btts_yes"`
	BTTSNo  float64 `json:"btts_no"`
}

var defaultPriors = Priors{Home: 33, Draw: 33, Away: 33, Over25: 50, Under25: 50, BTTSYes: 50, BTTSNo: 50}

var priorTable = map[Label]Priors{
	HostDomination:       {Home: 60, Draw: 25, Away: 15, Over25: 68, Under25: 32, BTTSYes: 45, BTTSNo: 55},
	GiantVsMinnow:        {Home: 70, Draw: 20, Away: 10, Over25: 65, Under25: 35, BTTSYes: 35, BTTSNo: 65},
	BalancedRivalryClash: {Home: 35, Draw: 35, Away: 30, Over25: 55, Under25: 45, BTTSYes: 58, BTTSNo: 42},
	RelegationBattle:     {Home: 30, Draw: 45, Away: 25, Over25: 35, Under25: 65, BTTSYes: 40, BTTSNo: 60},
	CageyTactical:        {Home: 38, Draw: 40, Away: 22, Over25: 38, Under25: 62, BTTSYes: 42, BTTSNo: 58},
	OpenHighScoring:      {Home: 40, Draw: 25, Away: 35, Over25: 72, Under25: 28, BTTSYes: 68, BTTSNo: 32},
}

// PriorsFor returns the baseline table for a label. powerDiff (home minus
// away power) picks the favourite side of an unstable-favourite script.
func PriorsFor(label Label, powerDiff int) Priors {
	if label == UnstableFavorite {
		p := Priors{Over25: 52, Under25: 48, BTTSYes: 52, BTTSNo: 48}
		if powerDiff > 0 {
			p.Home, p.Draw, p.Away = 50, 28, 22
		} else {
			p.Home, p.Draw, p.Away = 25, 30, 45
		}
		return p
	}
	if p, ok := priorTable[label]; ok {
		return p
	}
	return defaultPriors
}

// Veto lists the bets that make no sense under a scenario.
type Veto struct {
	Bets   []bet.Bet `yaml:"bets" json:"bets"`
	Reason string    `yaml:"reason" json:"reason"`
}

// Vetoes maps scenarios to their vetoed bets.
type Vetoes map[Label]Veto

// Vetoed reports whether b is vetoed under label. Matching is on the
// canonical key, so a full-time veto leaves first-half lines alone.
func (v Vetoes) Vetoed(label Label, b bet.Bet) bool {
	key := b.Key()
	for _, x := range v[label].Bets {
		if x.Key() == key {
			return true
		}
	}
	return false
}

var (
	goalsUnder25 = bet.Bet{Market: bet.MarketGoals, Direction: bet.Under, Line: 2.5}
	goalsUnder15 = bet.Bet{Market: bet.MarketGoals, Direction: bet.Under, Line: 1.5}
	goalsOver35  = bet.Bet{Market: bet.MarketGoals, Direction: bet.Over, Line: 3.5}
	goalsOver45  = bet.Bet{Market: bet.MarketGoals, Direction: bet.Over, Line: 4.5}
	bttsNo       = bet.Bet{Market: bet.MarketBTTS, Direction: bet.No}
	homeWin      = bet.Bet{Market: bet.MarketResult, Direction: bet.Home}
	draw         = bet.Bet{Market: bet.MarketResult, Direction: bet.Draw}
	awayWin      = bet.Bet{Market: bet.MarketResult, Direction: bet.Away}
)

// DefaultVetoes returns the built-in veto table.
func DefaultVetoes() Vetoes {
	return Vetoes{
		HostDomination: {
			Bets:   []bet.Bet{goalsUnder25, goalsUnder15, bttsNo},
			Reason: "hosts dominate at altitude, goals expected",
		},
		HomeDominance: {
			Bets:   []bet.Bet{goalsUnder25, goalsUnder15, awayWin, bttsNo},
			Reason: "hosts clearly superior, should attack and score",
		},
		AwayDominance: {
			Bets:   []bet.Bet{goalsUnder25, goalsUnder15, homeWin, bttsNo},
			Reason: "dominant visitors, open game with goals",
		},
		TeamOnFireHome: {
			Bets:   []bet.Bet{goalsUnder25, goalsUnder15, draw, awayWin},
			Reason: "hosts on a winning run, win and goals likely",
		},
		TeamOnFireAway: {
			Bets:   []bet.Bet{goalsUnder25, goalsUnder15, draw, homeWin},
			Reason: "visitors on a winning run, win and goals likely",
		},
		KnockoutFirstLeg: {
			Bets:   []bet.Bet{bttsNo},
			Reason: "first leg, both sides chase a goal",
		},
		KnockoutSecondLeg: {Reason: "return leg dynamics depend on the first leg"},
		OpenHighScoring: {
			Bets:   []bet.Bet{goalsUnder25, goalsUnder15, bttsNo},
			Reason: "open game, many goals and both sides scoring",
		},
		CageyTactical: {
			Bets:   []bet.Bet{goalsOver35, goalsOver45},
			Reason: "tactically locked game, few goals",
		},
		RelegationBattle: {
			Bets:   []bet.Bet{goalsOver35, goalsOver45},
			Reason: "six-pointer, cautious and tense",
		},
		LowMotivation: {
			Bets:   []bet.Bet{goalsOver35, goalsOver45},
			Reason: "nothing at stake, slow tempo",
		},
		BalancedRivalryClash: {Reason: "balanced derby, every market possible"},
		GiantVsMinnow: {
			Bets:   []bet.Bet{goalsUnder25, draw, awayWin},
			Reason: "giant hosts a minnow, home win and goals",
		},
		UnstableFavorite: {Reason: "unstable favourite, open market"},
	}
}
