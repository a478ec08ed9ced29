package scenario

import (
	"football-betting-engine/internal/match"
	"football-betting-engine/internal/textutil"
)

// HighAltitudeCities are venues where visitors suffer physically.
var HighAltitudeCities = []string{"La Paz", "Quito", "Bogotá", "Cusco", "Sucre", "Cochabamba"}

// VenueFactors are environmental conditions of the match venue.
type VenueFactors struct {
	City           string `json:"city,omitempty"`
	HighAltitude   bool   `json:"high_altitude"`
	SyntheticPitch bool   `json:"synthetic_pitch"`
	Dominant       string `json:"dominant,omitempty"`
}

// AnalyzeVenue flags altitude and artificial turf. City matching ignores
// case and accents.
func AnalyzeVenue(v match.Venue) VenueFactors {
	f := VenueFactors{City: v.City}
	city := textutil.Fold(v.City)
	if city != "" {
		for _, c := range HighAltitudeCities {
			if city == textutil.Fold(c) {
				f.HighAltitude = true
				f.Dominant = "high altitude"
				break
			}
		}
	}
	if textutil.ContainsAnyFold(v.Surface, []string{"synthetic", "artificial"}) {
		f.SyntheticPitch = true
		if f.Dominant == "" {
			f.Dominant = "synthetic pitch"
		}
	}
	return f
}
