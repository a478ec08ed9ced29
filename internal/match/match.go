package match

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"football-betting-engine/internal/bet"
)

// Validation errors returned by Validate.
var (
	ErrMissingTeams = errors.New("fixture needs both teams")
	ErrNegativeStat = errors.New("negative statistic")
	ErrInvalidOdd   = errors.New("decimal odd below 1.0")
	ErrFirstLegHost = errors.New("first-leg host is neither team")
)

// VenueStats holds per-game averages for one venue side (home or away games).
type VenueStats struct {
	GoalsScored    float64 `json:"goals_scored"`
	GoalsConceded  float64 `json:"goals_conceded"`
	CornersFor     float64 `json:"corners_for"`
	CornersAgainst float64 `json:"corners_against"`
	YellowCards    float64 `json:"yellow_cards"`
	RedCards       float64 `json:"red_cards"`
	Shots          float64 `json:"shots"`
	ShotsOnTarget  float64 `json:"shots_on_target"`
}

// TeamStats is the read-only statistics snapshot for one team.
type TeamStats struct {
	ID   int    `json:"id"`
	Name string `json:"name"`

	Home VenueStats `json:"home"`
	Away VenueStats `json:"away"`

	// Form lists recent results oldest first, e.g. "WWDLW".
	Form string `json:"form"`

	GamesPlayed  int `json:"games_played"`
	Wins         int `json:"wins"`
	Draws        int `json:"draws"`
	Losses       int `json:"losses"`
	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`

	// Recent holds per-match detail for the last games, newest last.
	Recent []RecentMatch `json:"recent,omitempty"`
}

// RecentMatch is one past game with the opponent's quality score at the time.
// OpponentQSC of 0 means unknown.
type RecentMatch struct {
	OpponentID     int     `json:"opponent_id"`
	OpponentQSC    int     `json:"opponent_qsc"`
	CornersFor     float64 `json:"corners_for"`
	CornersAgainst float64 `json:"corners_against"`
	ShotsFor       float64 `json:"shots_for"`
	ShotsAgainst   float64 `json:"shots_against"`
}

// GoalDifference is the season goal difference.
func (t TeamStats) GoalDifference() int {
	return t.GoalsFor - t.GoalsAgainst
}

// ScoringAverage is season goals for per game, 0 when no games were played.
func (t TeamStats) ScoringAverage() float64 {
	if t.GamesPlayed <= 0 {
		return 0
	}
	return float64(t.GoalsFor) / float64(t.GamesPlayed)
}

// ConcedingAverage is season goals against per game, 0 when no games were played.
func (t TeamStats) ConcedingAverage() float64 {
	if t.GamesPlayed <= 0 {
		return 0
	}
	return float64(t.GoalsAgainst) / float64(t.GamesPlayed)
}

// TableEntry is one row of a league table.
type TableEntry struct {
	TeamID         int    `json:"team_id"`
	Name           string `json:"name"`
	Rank           int    `json:"rank"`
	Points         int    `json:"points"`
	GoalDifference int    `json:"goal_difference"`
}

// Table is a league table ordered by rank.
type Table []TableEntry

// Rank returns a team's table position, or 0 if the team is not listed.
func (t Table) Rank(teamID int) int {
	for _, e := range t {
		if e.TeamID == teamID {
			return e.Rank
		}
	}
	return 0
}

// FirstLeg is the result of the first match of a two-legged tie.
// HomeTeamID identifies who hosted leg 1.
type FirstLeg struct {
	HomeTeamID int `json:"home_team_id"`
	HomeGoals  int `json:"home_goals"`
	AwayGoals  int `json:"away_goals"`
}

// Venue describes where the match is played.
type Venue struct {
	City    string `json:"city"`
	Surface string `json:"surface"`
}

// Fixture is the full input of one analysis run.
type Fixture struct {
	ID       int64     `json:"id"`
	LeagueID int       `json:"league_id"`
	Round    string    `json:"round"`
	Venue    Venue     `json:"venue"`
	Home     TeamStats `json:"home"`
	Away     TeamStats `json:"away"`
	Table    Table     `json:"table"`
	FirstLeg *FirstLeg `json:"first_leg,omitempty"`
	Odds     Book      `json:"odds"`

	// Relegation marks a fixture flagged by the caller as a relegation six-pointer.
	Relegation bool `json:"relegation"`
}

// Book maps canonical bet keys to decimal odds.
type Book map[string]float64

// Lookup returns the quoted odd for a bet.
func (b Book) Lookup(x bet.Bet) (float64, bool) {
	if b == nil {
		return 0, false
	}
	odd, ok := b[x.Key()]
	return odd, ok
}

// Quoted returns the parseable quoted bets of one market, ordered by key.
func (b Book) Quoted(m bet.Market) []bet.Bet {
	var out []bet.Bet
	for key := range b {
		x, err := bet.Parse(key)
		if err != nil || x.Market != m {
			continue
		}
		out = append(out, x)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// Validate performs the caller-side checks: both teams present, no
// negative averages and no odds below 1.0.
func Validate(f Fixture) error {
	if f.Home.ID == 0 || f.Away.ID == 0 {
		return ErrMissingTeams
	}
	for _, team := range []TeamStats{f.Home, f.Away} {
		for side, v := range map[string]VenueStats{"home": team.Home, "away": team.Away} {
			if err := validateVenue(v); err != nil {
				return fmt.Errorf("team %d %s stats: %w", team.ID, side, err)
			}
		}
		if team.GoalsFor < 0 || team.GoalsAgainst < 0 || team.GamesPlayed < 0 {
			return fmt.Errorf("team %d season totals: %w", team.ID, ErrNegativeStat)
		}
		for i, m := range team.Recent {
			if m.CornersFor < 0 || m.CornersAgainst < 0 || m.ShotsFor < 0 || m.ShotsAgainst < 0 || m.OpponentQSC < 0 {
				return fmt.Errorf("team %d recent match %d: %w", team.ID, i, ErrNegativeStat)
			}
		}
	}
	if leg := f.FirstLeg; leg != nil {
		if leg.HomeTeamID != f.Home.ID && leg.HomeTeamID != f.Away.ID {
			return fmt.Errorf("first leg host %d: %w", leg.HomeTeamID, ErrFirstLegHost)
		}
		if leg.HomeGoals < 0 || leg.AwayGoals < 0 {
			return fmt.Errorf("first leg score: %w", ErrNegativeStat)
		}
	}
	for key, odd := range f.Odds {
		if _, err := bet.Parse(key); err != nil {
			return fmt.Errorf("odds: %w", err)
		}
		if odd < 1.0 {
			return fmt.Errorf("odds %s=%.2f: %w", key, odd, ErrInvalidOdd)
		}
	}
	return nil
}

func validateVenue(v VenueStats) error {
	values := []float64{
		v.GoalsScored, v.GoalsConceded, v.CornersFor, v.CornersAgainst,
		v.YellowCards, v.RedCards, v.Shots, v.ShotsOnTarget,
	}
	for _, x := range values {
		if x < 0 {
			return ErrNegativeStat
		}
	}
	return nil
}

var roundNumber = regexp.MustCompile(`-\s*(\d+)\s*$`)

// RoundNumber extracts the trailing round number from names like
// "Regular Season - 4". It returns 0 when the round is not numbered.
func RoundNumber(round string) int {
	m := roundNumber.FindStringSubmatch(strings.TrimSpace(round))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// Recent returns the last n results of a form string, uppercased.
func Recent(form string, n int) string {
	form = strings.ToUpper(strings.TrimSpace(form))
	if len(form) > n {
		return form[len(form)-n:]
	}
	return form
}

// FormCounts counts wins, draws and losses in a form string.
func FormCounts(form string) (wins, draws, losses int) {
	for _, r := range strings.ToUpper(form) {
		switch r {
		case 'W':
			wins++
		case 'D':
			draws++
		case 'L':
			losses++
		}
	}
	return wins, draws, losses
}
