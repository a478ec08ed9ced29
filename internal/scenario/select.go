package scenario

import (
	"fmt"
	"math"
	"strings"

	"football-betting-engine/internal/match"
	"football-betting-engine/internal/quality"
	"football-betting-engine/internal/textutil"
)

// Selection thresholds.
const (
	OnFireMomentum      = 90
	DominanceAdvantage  = 20.0
	BalancedAdvantage   = 15.0
	UnstableMomentumGap = 25
	UnstablePowerGap    = 15
	LowMomentum         = 50
)

// Side is what the selector knows about one team.
type Side struct {
	QSC      int                     `json:"qsc"`
	Momentum int                     `json:"momentum"`
	Power    int                     `json:"power"`
	Profile  quality.TacticalProfile `json:"profile"`
}

// Inputs is the full selector input for one fixture.
type Inputs struct {
	Round      string
	Relegation bool
	Venue      VenueFactors
	Knockout   *Knockout
	Home       Side
	Away       Side
}

// NewInputs assembles selector inputs from a fixture and the per-side scores.
func NewInputs(f match.Fixture, home, away Side) Inputs {
	return Inputs{
		Round:      f.Round,
		Relegation: f.Relegation,
		Venue:      AnalyzeVenue(f.Venue),
		Knockout:   KnockoutContext(f, home.QSC, away.QSC),
		Home:       home,
		Away:       away,
	}
}

// CrossAnalysis compares each attack against the opposing defence.
type CrossAnalysis struct {
	HomeOffense   float64 `json:"home_offense"`
	HomeDefense   float64 `json:"home_defense"`
	AwayOffense   float64 `json:"away_offense"`
	AwayDefense   float64 `json:"away_defense"`
	HomeAdvantage float64 `json:"home_advantage"`
	AwayAdvantage float64 `json:"away_advantage"`
}

// Cross blends momentum and power into offence and defence indices.
// Momentum drives attack; season power drives defence.
func Cross(home, away Side) CrossAnalysis {
	c := CrossAnalysis{
		HomeOffense: float64(home.Momentum)*0.6 + float64(home.Power)*0.4,
		HomeDefense: float64(home.Momentum)*0.4 + float64(home.Power)*0.6,
		AwayOffense: float64(away.Momentum)*0.6 + float64(away.Power)*0.4,
		AwayDefense: float64(away.Momentum)*0.4 + float64(away.Power)*0.6,
	}
	c.HomeAdvantage = c.HomeOffense - c.AwayDefense
	c.AwayAdvantage = c.AwayOffense - c.HomeDefense
	return c
}

// HomeDominates reports a decisive home attacking edge.
func (c CrossAnalysis) HomeDominates() bool { return c.HomeAdvantage > DominanceAdvantage }

// AwayDominates reports a decisive away attacking edge.
func (c CrossAnalysis) AwayDominates() bool { return c.AwayAdvantage > DominanceAdvantage }

// Balanced reports that neither attack has a clear edge.
func (c CrossAnalysis) Balanced() bool {
	return math.Abs(c.HomeAdvantage) < BalancedAdvantage && math.Abs(c.AwayAdvantage) < BalancedAdvantage
}

// Result is the selected scenario with its explanation.
type Result struct {
	Label     Label         `json:"label"`
	Rule      string        `json:"rule"`
	Rationale string        `json:"rationale"`
	Priors    Priors        `json:"priors"`
	Cross     CrossAnalysis `json:"cross"`
	Venue     VenueFactors  `json:"venue"`
	Knockout  *Knockout     `json:"knockout,omitempty"`
}

type state struct {
	in    Inputs
	cross CrossAnalysis
}

type rule struct {
	name  string
	match func(s state) bool
	build func(s state) (Label, string)
}

// rules is evaluated top-down; the first match wins.
var rules = []rule{
	{
		name: "knockout_override",
		match: func(s state) bool {
			return s.in.Knockout != nil && s.in.Knockout.Modifier != ""
		},
		build: func(s state) (Label, string) {
			k := s.in.Knockout
			text := "knockout: " + k.Description
			if k.FirstLeg != "" {
				text += fmt.Sprintf("; first leg %s; %s", k.FirstLeg, k.Aggregate)
			}
			return k.Modifier, text
		},
	},
	{
		name:  "high_altitude",
		match: func(s state) bool { return s.in.Venue.HighAltitude },
		build: func(s state) (Label, string) {
			return HostDomination, fmt.Sprintf(
				"extreme altitude in %s: hosts hold a brutal physical edge, expect sustained home pressure", s.in.Venue.City)
		},
	},
	{
		name:  "home_on_fire",
		match: func(s state) bool { return s.in.Home.Momentum >= OnFireMomentum },
		build: func(s state) (Label, string) {
			return TeamOnFireHome, fmt.Sprintf(
				"hosts on fire (momentum %d/100): confidence high, expect them to impose the game", s.in.Home.Momentum)
		},
	},
	{
		name:  "away_on_fire",
		match: func(s state) bool { return s.in.Away.Momentum >= OnFireMomentum },
		build: func(s state) (Label, string) {
			return TeamOnFireAway, fmt.Sprintf(
				"visitors on fire (momentum %d/100): they will not respect home advantage", s.in.Away.Momentum)
		},
	},
	{
		name:  "two_leg_first",
		match: func(s state) bool { return isTwoLegRound(s.in.Round) && isLeg(s.in.Round, "Leg 1", "1st Leg") },
		build: func(state) (Label, string) {
			return KnockoutFirstLeg, "first leg: hosts need to build a lead, intense opening hour expected"
		},
	},
	{
		name:  "two_leg_second",
		match: func(s state) bool { return isTwoLegRound(s.in.Round) && isLeg(s.in.Round, "Leg 2", "2nd Leg") },
		build: func(state) (Label, string) {
			return KnockoutSecondLeg, "second leg: the side behind goes all in, open game with chances at both ends"
		},
	},
	{
		name:  "home_dominance",
		match: func(s state) bool { return s.cross.HomeDominates() },
		build: func(s state) (Label, string) {
			return HomeDominance, fmt.Sprintf(
				"home attack (%.0f) well above away defence (%.0f): heavy home volume expected",
				s.cross.HomeOffense, s.cross.AwayDefense)
		},
	},
	{
		name:  "away_dominance",
		match: func(s state) bool { return s.cross.AwayDominates() },
		build: func(s state) (Label, string) {
			return AwayDominance, fmt.Sprintf(
				"away attack (%.0f) well above home defence (%.0f): visitors should control the game",
				s.cross.AwayOffense, s.cross.HomeDefense)
		},
	},
	{
		name: "relegation",
		match: func(s state) bool {
			return s.in.Relegation || textutil.ContainsFold(s.in.Round, "relegation")
		},
		build: func(state) (Label, string) {
			return RelegationBattle, "relegation battle: both sides prioritise not losing, tight and physical"
		},
	},
	{
		name: "balanced_final",
		match: func(s state) bool {
			return s.cross.Balanced() && isLeg(s.in.Round, "Final", "Semi")
		},
		build: func(state) (Label, string) {
			return BalancedRivalryClash, "balanced sides in a final stage: rivalry clash"
		},
	},
	{
		name: "balanced_open",
		match: func(s state) bool {
			return s.cross.Balanced() &&
				s.in.Home.Profile.Style == quality.Offensive && s.in.Away.Profile.Style == quality.Offensive
		},
		build: func(state) (Label, string) {
			return OpenHighScoring, "two attacking sides of similar strength: open game, chances at both ends"
		},
	},
	{
		name:  "balanced_cagey",
		match: func(s state) bool { return s.cross.Balanced() },
		build: func(state) (Label, string) {
			return CageyTactical, "similar strength, closed game decided by details"
		},
	},
	{
		name: "unstable_favorite",
		match: func(s state) bool {
			return absInt(s.in.Home.Momentum-s.in.Away.Momentum) >= UnstableMomentumGap ||
				absInt(s.in.Home.Power-s.in.Away.Power) >= UnstablePowerGap
		},
		build: func(s state) (Label, string) {
			return UnstableFavorite, fmt.Sprintf(
				"a favourite exists but the picture is unstable (momentum gap %d)",
				absInt(s.in.Home.Momentum-s.in.Away.Momentum))
		},
	},
	{
		name: "low_motivation",
		match: func(s state) bool {
			return s.in.Home.Momentum < LowMomentum && s.in.Away.Momentum < LowMomentum
		},
		build: func(state) (Label, string) {
			return LowMotivation, "both sides in poor form: slow tempo, few goals, low intensity"
		},
	},
	{
		name:  "default",
		match: func(state) bool { return true },
		build: func(s state) (Label, string) {
			return CageyTactical, fmt.Sprintf(
				"mixed picture: home attack %.0f vs away attack %.0f", s.cross.HomeOffense, s.cross.AwayOffense)
		},
	},
}

// Select evaluates the decision table and returns exactly one scenario.
func Select(in Inputs) Result {
	s := state{in: in, cross: Cross(in.Home, in.Away)}
	for _, r := range rules {
		if !r.match(s) {
			continue
		}
		label, rationale := r.build(s)
		return Result{
			Label:     label,
			Rule:      r.name,
			Rationale: rationale,
			Priors:    PriorsFor(label, in.Home.Power-in.Away.Power),
			Cross:     s.cross,
			Venue:     in.Venue,
			Knockout:  in.Knockout,
		}
	}
	// Unreachable: the last rule always matches.
	return Result{Label: CageyTactical, Rule: "default", Priors: PriorsFor(CageyTactical, 0)}
}

func isTwoLegRound(round string) bool {
	return strings.Contains(round, "Round of 16") || strings.Contains(round, "Eighth")
}

// isLeg matches round markers case-sensitively; "Quarter-finals" is not a final.
func isLeg(round string, markers ...string) bool {
	for _, m := range markers {
		if strings.Contains(round, m) {
			return true
		}
	}
	return false
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
