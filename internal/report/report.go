// Package report defines the output of one fixture analysis as it is
// stored, published and served.
package report

import (
	"time"

	"football-betting-engine/internal/confidence"
	"football-betting-engine/internal/markets"
	"football-betting-engine/internal/quality"
	"football-betting-engine/internal/ranking"
	"football-betting-engine/internal/scenario"
)

// Team is the per-side context of a report.
type Team struct {
	ID       int                     `json:"id"`
	Name     string                  `json:"name"`
	Quality  quality.Components      `json:"quality"`
	Momentum int                     `json:"momentum"`
	Power    int                     `json:"power"`
	Profile  quality.TacticalProfile `json:"profile"`
	Schedule quality.Schedule        `json:"schedule"`
}

// Report is the full result of analysing one fixture.
type Report struct {
	ID        string          `json:"id"`
	FixtureID int64           `json:"fixture_id"`
	LeagueID  int             `json:"league_id"`
	Round     string          `json:"round"`
	Mode      confidence.Mode `json:"mode"`
	CreatedAt time.Time       `json:"created_at"`

	Home Team `json:"home"`
	Away Team `json:"away"`

	Scenario     scenario.Result      `json:"scenario"`
	Importance   []quality.Importance `json:"importance,omitempty"`
	Insights     []quality.Insight    `json:"insights,omitempty"`
	PlayStyles   []quality.PlayStyle  `json:"play_styles,omitempty"`
	ValueContext quality.ValueContext `json:"value_context"`

	Predictions []markets.Prediction `json:"predictions"`
	Board       ranking.Board        `json:"board"`
}

// Best returns the report's main pick as a cross-fixture entry.
func (r Report) Best() (ranking.Entry, bool) {
	p, ok := r.Board.Best()
	if !ok {
		return ranking.Entry{}, false
	}
	return ranking.Entry{FixtureID: r.FixtureID, Home: r.Home.Name, Away: r.Away.Name, Pick: p}, true
}

// BestOfDay collects the main pick of each report and ranks them.
func BestOfDay(reports []Report, n int) []ranking.Entry {
	entries := make([]ranking.Entry, 0, len(reports))
	for _, r := range reports {
		if e, ok := r.Best(); ok {
			entries = append(entries, e)
		}
	}
	return ranking.BestOfDay(entries, n)
}
