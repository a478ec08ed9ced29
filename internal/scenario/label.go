// Package scenario picks the single match script that frames every market
// analysis of a fixture.
package scenario

import (
	"fmt"
	"strings"
)

// Label names a match script. The set is closed.
type Label string

const (
	HostDomination       Label = "HOST_DOMINATION"
	TeamOnFireHome       Label = "TIME_EM_CHAMAS_CASA"
	TeamOnFireAway       Label = "TIME_EM_CHAMAS_FORA"
	KnockoutFirstLeg     Label = "MATA_MATA_IDA"
	KnockoutSecondLeg    Label = "MATA_MATA_VOLTA"
	HomeDominance        Label = "DOMINIO_CASA"
	AwayDominance        Label = "DOMINIO_VISITANTE"
	RelegationBattle     Label = "RELEGATION_BATTLE"
	BalancedRivalryClash Label = "BALANCED_RIVALRY_CLASH"
	OpenHighScoring      Label = "OPEN_HIGH_SCORING_GAME"
	CageyTactical        Label = "CAGEY_TACTICAL_AFFAIR"
	UnstableFavorite     Label = "UNSTABLE_FAVORITE"
	LowMotivation        Label = "JOGO_DE_COMPADRES"
	GiantVsMinnow        Label = "GIANT_VS_MINNOW"

	// Knockout second-leg modifiers.
	HomeAttackPressure     Label = "HOME_DOMINANT_ATTACK_PRESSURE"
	LowScoringControlled   Label = "LOW_SCORING_CONTROLLED"
	BalancedTacticalBattle Label = "BALANCED_TACTICAL_BATTLE"
	TightLowScoring        Label = "TIGHT_LOW_SCORING"
	ChaoticOpenGame        Label = "CHAOTIC_OPEN_GAME"
)

// Labels returns every known label.
func Labels() []Label {
	return []Label{
		HostDomination, TeamOnFireHome, TeamOnFireAway, KnockoutFirstLeg,
		KnockoutSecondLeg, HomeDominance, AwayDominance, RelegationBattle,
		BalancedRivalryClash, OpenHighScoring, CageyTactical, UnstableFavorite,
		LowMotivation, GiantVsMinnow, HomeAttackPressure, LowScoringControlled,
		BalancedTacticalBattle, TightLowScoring, ChaoticOpenGame,
	}
}

// ParseLabel accepts a label with or without the legacy "SCRIPT_" prefix.
func ParseLabel(s string) (Label, error) {
	s = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "SCRIPT_")
	for _, l := range Labels() {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown scenario %q", s)
}

// UnmarshalText validates labels read from YAML or JSON.
func (l *Label) UnmarshalText(text []byte) error {
	parsed, err := ParseLabel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
