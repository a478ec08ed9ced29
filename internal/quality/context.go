package quality

import (
	"fmt"

	"football-betting-engine/internal/bet"
	"football-betting-engine/internal/match"
	"football-betting-engine/internal/textutil"
)

// Insight is a matchup observation with the multiplier it suggests for the
// markets it concerns.
type Insight struct {
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Factor      float64 `json:"factor"`
}

// Insight kinds produced by Compatibility.
const (
	HomeAttackEdge  = "home_attack_edge"
	AwayAttackEdge  = "away_attack_edge"
	GoalFestival    = "goal_festival"
	TightGame       = "tight_game"
	HomeCornersEdge = "home_corners_edge"
)

// Compatibility checks how each attack lines up against the other defence,
// using the home side's home averages and the away side's away averages.
func Compatibility(home, away match.TeamStats) []Insight {
	h, a := home.Home, away.Away
	var out []Insight

	if h.GoalsScored >= 1.8 && a.GoalsConceded >= 1.5 {
		out = append(out, Insight{HomeAttackEdge,
			fmt.Sprintf("home scores %.1f per game, visitors concede %.1f away", h.GoalsScored, a.GoalsConceded), 1.3})
	}
	if a.GoalsScored >= 1.3 && h.GoalsConceded >= 1.3 {
		out = append(out, Insight{AwayAttackEdge,
			fmt.Sprintf("visitors score %.1f away, hosts concede %.1f at home", a.GoalsScored, h.GoalsConceded), 1.25})
	}
	if h.GoalsScored >= 1.5 && a.GoalsScored >= 1.2 && h.GoalsConceded >= 1.2 && a.GoalsConceded >= 1.2 {
		out = append(out, Insight{GoalFestival,
			fmt.Sprintf("both attack well (%.1f / %.1f) and both defend poorly", h.GoalsScored, a.GoalsScored), 1.4})
	}
	if h.GoalsConceded <= 0.8 && a.GoalsConceded <= 0.8 {
		out = append(out, Insight{TightGame,
			fmt.Sprintf("both defences are solid (%.1f / %.1f conceded)", h.GoalsConceded, a.GoalsConceded), 0.7})
	}
	if h.CornersFor >= 5.5 && a.CornersAgainst >= 5.0 {
		out = append(out, Insight{HomeCornersEdge,
			fmt.Sprintf("hosts force %.1f corners, visitors concede %.1f", h.CornersFor, a.CornersAgainst), 1.25})
	}
	return out
}

// HasInsight reports whether an insight of the given kind is present.
func HasInsight(insights []Insight, kind string) bool {
	for _, in := range insights {
		if in.Kind == kind {
			return true
		}
	}
	return false
}

// Importance describes what is at stake in a league fixture.
type Importance struct {
	Kind        string `json:"kind"`
	Intensity   string `json:"intensity"`
	Description string `json:"description"`
}

// Importance kinds produced by GameImportance.
const (
	TopClash          = "top_clash"
	SurvivalBattle    = "survival_battle"
	RelegationWorry   = "relegation_worry"
	ClearHomeFavorite = "clear_home_favorite"
	PossibleUpset     = "possible_upset"
	LowStakes         = "low_stakes"
)

// SeasonRounds is the season length assumed by GameImportance.
const SeasonRounds = 38

// GameImportance reads the league table context. It returns nil when either
// team is missing from the table.
func GameImportance(table match.Table, homeID, awayID, round int) []Importance {
	posH, posA := table.Rank(homeID), table.Rank(awayID)
	if len(table) == 0 || posH == 0 || posA == 0 {
		return nil
	}

	teams := len(table)
	lateSeason := float64(round)/SeasonRounds >= 0.75
	gap := posH - posA
	if gap < 0 {
		gap = -gap
	}

	var out []Importance
	if gap <= 3 && posH <= 6 && posA <= 6 {
		out = append(out, Importance{TopClash, "high",
			fmt.Sprintf("direct clash at the top: %d vs %d", posH, posA)})
	}

	zone := teams - 3
	if posH >= zone || posA >= zone {
		if lateSeason {
			out = append(out, Importance{SurvivalBattle, "extreme",
				"late season with a side in the relegation zone"})
		} else {
			out = append(out, Importance{RelegationWorry, "medium-high",
				"a side sits near the relegation zone"})
		}
	}

	if gap >= 10 {
		if posH < posA {
			out = append(out, Importance{ClearHomeFavorite, "medium",
				fmt.Sprintf("hosts are %d places higher", gap)})
		} else {
			out = append(out, Importance{PossibleUpset, "medium",
				"smaller side hosts a much stronger visitor"})
		}
	}

	if posH >= 8 && posH <= teams-5 && posA >= 8 && posA <= teams-5 && !lateSeason {
		out = append(out, Importance{LowStakes, "low",
			"both sides are mid-table with nothing obvious to play for"})
	}
	return out
}

// PlayStyle is a notable tendency of one side.
type PlayStyle struct {
	Side        string `json:"side"`
	Style       string `json:"style"`
	Description string `json:"description"`
}

// PlayStyles flags slow starters, cautious visitors and similar tendencies.
func PlayStyles(home, away match.TeamStats) []PlayStyle {
	h, a := home.Home, away.Away
	var out []PlayStyle

	if h.GoalsScored <= 1.0 {
		out = append(out, PlayStyle{"home", "slow_starter",
			fmt.Sprintf("hosts score only %.1f per game", h.GoalsScored)})
	}
	if a.GoalsScored <= 0.8 {
		out = append(out, PlayStyle{"away", "cautious_away",
			fmt.Sprintf("visitors score %.1f away and tend to sit deep", a.GoalsScored)})
	}
	if h.GoalsScored >= 2.0 && h.CornersFor >= 6.0 {
		out = append(out, PlayStyle{"home", "ultra_offensive",
			fmt.Sprintf("hosts average %.1f goals and %.1f corners", h.GoalsScored, h.CornersFor)})
	}
	if h.GoalsScored >= 1.3 && h.GoalsScored <= 1.8 && h.GoalsConceded <= 1.0 {
		out = append(out, PlayStyle{"home", "balanced",
			fmt.Sprintf("hosts score %.1f and concede %.1f", h.GoalsScored, h.GoalsConceded)})
	}
	return out
}

// ValueContext marks situations where shorter odds still carry value.
type ValueContext struct {
	StrongFavorite bool `json:"strong_favorite"`
	Derby          bool `json:"derby"`
	Decisive       bool `json:"decisive"`
	NeedsResult    bool `json:"needs_result"`
	Tense          bool `json:"tense"`
}

// Derbies and BigClubs are matched against folded team names.
var (
	Derbies = [][2]string{
		{"palmeiras", "corinthians"},
		{"flamengo", "vasco"},
		{"flamengo", "fluminense"},
		{"sao paulo", "corinthians"},
		{"gremio", "internacional"},
		{"atletico", "cruzeiro"},
	}
	BigClubs = []string{
		"palmeiras", "flamengo", "corinthians", "sao paulo", "santos",
		"gremio", "internacional", "atletico", "cruzeiro", "botafogo",
	}
)

// DetectValueContext inspects strength gap, rivalry and table stakes.
func DetectValueContext(f match.Fixture) ValueContext {
	var vc ValueContext

	hs := f.Home.Home.GoalsScored - f.Home.Home.GoalsConceded
	as := f.Away.Away.GoalsScored - f.Away.Away.GoalsConceded
	diff := hs - as
	if diff < 0 {
		diff = -diff
	}
	vc.StrongFavorite = diff >= 2.0

	home, away := textutil.Fold(f.Home.Name), textutil.Fold(f.Away.Name)
	for _, d := range Derbies {
		if (textutil.ContainsFold(home, d[0]) && textutil.ContainsFold(away, d[1])) ||
			(textutil.ContainsFold(home, d[1]) && textutil.ContainsFold(away, d[0])) {
			vc.Derby = true
			vc.Tense = true
			break
		}
	}
	if textutil.ContainsAnyFold(home, BigClubs) && textutil.ContainsAnyFold(away, BigClubs) {
		vc.Tense = true
	}

	posH, posA := f.Table.Rank(f.Home.ID), f.Table.Rank(f.Away.ID)
	if posH > 0 && posA > 0 {
		if (posH <= 4 && posA <= 4) || (posH >= 16 && posA >= 16) {
			vc.Decisive = true
			vc.NeedsResult = true
		}
	}
	return vc
}

// AllowsLowOdd reports whether the context justifies accepting a short odd
// in the given market.
func (vc ValueContext) AllowsLowOdd(odd float64, market bet.Market) bool {
	switch {
	case vc.StrongFavorite && odd >= 1.50 &&
		(market == bet.MarketResult || market == bet.MarketGoals || market == bet.MarketHandicap):
		return true
	case vc.Derby && market == bet.MarketCards && odd >= 1.70:
		return true
	case vc.Tense && odd >= 1.75 && (market == bet.MarketGoals || market == bet.MarketCards):
		return true
	case vc.NeedsResult && market == bet.MarketCorners && odd >= 1.80:
		return true
	case vc.Decisive && odd >= 1.85:
		return true
	}
	return false
}
