package scenario

import (
	"fmt"

	"football-betting-engine/internal/match"
	"football-betting-engine/internal/textutil"
)

// KnockoutCompetitions are cup and continental competitions by league ID.
var KnockoutCompetitions = map[int]string{
	1:   "World Cup",
	2:   "Champions League",
	3:   "Europa League",
	4:   "Euro Championship",
	9:   "Copa America",
	11:  "Copa Sudamericana",
	13:  "Copa Libertadores",
	15:  "Club World Cup",
	16:  "AFC Champions League",
	18:  "CONCACAF Champions League",
	12:  "CAF Champions League",
	848: "Conference League",
	45:  "FA Cup",
	48:  "EFL Cup",
	73:  "Copa do Brasil",
	81:  "DFB Pokal",
	96:  "Taca de Portugal",
	137: "Coppa Italia",
	143: "Copa del Rey",
	213: "Copa Argentina",
}

var (
	knockoutStageKeywords = []string{
		"Final", "Semi-finals", "Quarter-finals", "Round of 16", "Round of 32",
		"8th Finals", "Oitavas", "Quartas", "Semifinal", "Eliminatórias", "Play-offs",
	}
	secondLegKeywords = []string{"2nd Leg", "volta", "Vuelta", "Return"}
)

// IsKnockout reports whether a fixture is a knockout tie of a cup competition.
func IsKnockout(leagueID int, round string) bool {
	if _, ok := KnockoutCompetitions[leagueID]; !ok || round == "" {
		return false
	}
	return textutil.ContainsAnyFold(round, knockoutStageKeywords)
}

// IsSecondLeg reports whether the round name marks a return leg.
func IsSecondLeg(round string) bool {
	return textutil.ContainsAnyFold(round, secondLegKeywords)
}

// Situation is the aggregate state of a two-legged tie before leg 2.
type Situation string

const (
	FirstLeg               Situation = "FIRST_LEG"
	GiantNeedsMiracle      Situation = "GIANT_NEEDS_MIRACLE"
	ManagingTheLead        Situation = "MANAGING_THE_LEAD"
	NarrowLeadDefense      Situation = "NARROW_LEAD_DEFENSE"
	BalancedTieDecider     Situation = "BALANCED_TIE_DECIDER"
	UnderdogMiracleAttempt Situation = "UNDERDOG_MIRACLE_ATTEMPT"
)

// Knockout is the analysed tie context. Modifier is empty when the tie
// gives no reason to override the regular selection.
type Knockout struct {
	Situation   Situation `json:"situation"`
	SecondLeg   bool      `json:"second_leg"`
	Advantage   int       `json:"advantage"`
	FirstLeg    string    `json:"first_leg,omitempty"`
	Aggregate   string    `json:"aggregate,omitempty"`
	Description string    `json:"description"`
	Modifier    Label     `json:"modifier,omitempty"`
}

// Knockout thresholds.
const (
	MiracleDeficit = -2
	MiracleQSCGap  = 15
	BalancedQSCGap = 10
)

// AnalyzeKnockout classifies a second leg from the first-leg score and the
// quality of both sides. awayID is the team visiting in leg 2; the score is
// flipped only when that team hosted leg 1.
func AnalyzeKnockout(leg match.FirstLeg, awayID, qscHome, qscAway int) Knockout {
	// Advantage is seen from the current host.
	adv := leg.HomeGoals - leg.AwayGoals
	if awayID != 0 && leg.HomeTeamID == awayID {
		adv = -adv
	}
	gap := qscHome - qscAway
	if gap < 0 {
		gap = -gap
	}
	deficit := -adv

	k := Knockout{
		SecondLeg: true,
		Advantage: adv,
		FirstLeg:  fmt.Sprintf("%d x %d", leg.HomeGoals, leg.AwayGoals),
	}

	switch {
	case adv <= MiracleDeficit && qscHome > qscAway && gap >= MiracleQSCGap:
		k.Situation = GiantNeedsMiracle
		k.Modifier = HomeAttackPressure
		k.Description = fmt.Sprintf("favourite must overturn a %d-goal deficit at home", deficit)
		k.Aggregate = fmt.Sprintf("needs %d+ goals to go through", deficit+1)
	case adv >= 2:
		k.Situation = ManagingTheLead
		k.Modifier = LowScoringControlled
		k.Description = fmt.Sprintf("hosts manage a %d-goal lead", adv)
		k.Aggregate = "comfortable lead to protect"
	case adv == 1:
		k.Situation = NarrowLeadDefense
		k.Modifier = BalancedTacticalBattle
		k.Description = "hosts defend a one-goal lead"
		k.Aggregate = "fragile lead, any goal levels the tie"
	case adv >= -1 && adv <= 0, gap < BalancedQSCGap:
		k.Situation = BalancedTieDecider
		k.Modifier = TightLowScoring
		k.Description = "balanced tie, tense decider"
		k.Aggregate = "tie is open"
	case adv <= MiracleDeficit && qscHome < qscAway && gap >= MiracleQSCGap:
		k.Situation = UnderdogMiracleAttempt
		k.Modifier = ChaoticOpenGame
		k.Description = fmt.Sprintf("underdog chases a %d-goal deficit at home", deficit)
		k.Aggregate = fmt.Sprintf("needs %d+ goals, unlikely", deficit+1)
	default:
		k.Situation = BalancedTieDecider
		k.Modifier = BalancedTacticalBattle
		k.Description = "balanced knockout scenario"
		k.Aggregate = "open game"
	}
	return k
}

// KnockoutContext builds the tie context of a fixture. It returns nil for
// league games. A second leg without a first-leg score carries no modifier.
func KnockoutContext(f match.Fixture, qscHome, qscAway int) *Knockout {
	if !IsKnockout(f.LeagueID, f.Round) {
		return nil
	}
	if !IsSecondLeg(f.Round) {
		return &Knockout{
			Situation:   FirstLeg,
			Description: "first leg of a knockout tie",
			Modifier:    KnockoutFirstLeg,
		}
	}
	if f.FirstLeg == nil {
		return &Knockout{
			Situation:   BalancedTieDecider,
			SecondLeg:   true,
			Description: "second leg, first-leg result unknown",
		}
	}
	k := AnalyzeKnockout(*f.FirstLeg, f.Away.ID, qscHome, qscAway)
	return &k
}
