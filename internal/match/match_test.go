package match

import (
	"errors"
	"testing"

	"football-betting-engine/internal/bet"
)

func validFixture() Fixture {
	return Fixture{
		ID:       1001,
		LeagueID: 39,
		Round:    "Regular Season - 12",
		Home: TeamStats{
			ID:   33,
			Name: "Manchester United",
			Home: VenueStats{GoalsScored: 1.8, GoalsConceded: 0.9, CornersFor: 6.1},
		},
		Away: TeamStats{
			ID:   40,
			Name: "Liverpool",
			Away: VenueStats{GoalsScored: 1.6, GoalsConceded: 1.1},
		},
		Odds: Book{"goals:over:2.5": 1.85, "btts:yes": 1.70},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Fixture)
		wantErr error
	}{
		{"valid", func(*Fixture) {}, nil},
		{"missing away", func(f *Fixture) { f.Away.ID = 0 }, ErrMissingTeams},
		{"negative average", func(f *Fixture) { f.Home.Home.CornersFor = -1 }, ErrNegativeStat},
		{"negative season total", func(f *Fixture) { f.Away.GoalsFor = -3 }, ErrNegativeStat},
		{"negative recent match", func(f *Fixture) { f.Home.Recent = []RecentMatch{{ShotsFor: -2}} }, ErrNegativeStat},
		{"odd below one", func(f *Fixture) { f.Odds["btts:yes"] = 0.95 }, ErrInvalidOdd},
		{"first leg hosted by the visitors", func(f *Fixture) { f.FirstLeg = &FirstLeg{HomeTeamID: 40, HomeGoals: 2} }, nil},
		{"first leg host unknown", func(f *Fixture) { f.FirstLeg = &FirstLeg{HomeTeamID: 99, HomeGoals: 2} }, ErrFirstLegHost},
		{"first leg host missing", func(f *Fixture) { f.FirstLeg = &FirstLeg{HomeGoals: 2} }, ErrFirstLegHost},
		{"negative first leg score", func(f *Fixture) { f.FirstLeg = &FirstLeg{HomeTeamID: 33, AwayGoals: -1} }, ErrNegativeStat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFixture()
			tt.mutate(&f)
			err := Validate(f)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRejectsUnknownOddsKey(t *testing.T) {
	f := validFixture()
	f.Odds["darts:over:180"] = 2.0
	if err := Validate(f); err == nil {
		t.Error("expected error for unparseable odds key")
	}
}

func TestBookLookup(t *testing.T) {
	book := Book{"goals:over:2.5": 1.85}
	odd, ok := book.Lookup(bet.Bet{Market: bet.MarketGoals, Direction: bet.Over, Line: 2.5})
	if !ok || odd != 1.85 {
		t.Errorf("Lookup = (%v, %v), want (1.85, true)", odd, ok)
	}
	var empty Book
	if _, ok := empty.Lookup(bet.Bet{Market: bet.MarketBTTS, Direction: bet.Yes}); ok {
		t.Error("nil book should not find anything")
	}
}

func TestBookQuoted(t *testing.T) {
	book := Book{
		"goals:under:2.5":          2.10,
		"goals:over:2.5":           1.80,
		"shots_on_target:over:9.5": 2.40,
		"shots:over:21.5":          1.95,
		"nonsense":                 3.00,
	}

	goals := book.Quoted(bet.MarketGoals)
	if len(goals) != 2 || goals[0].Key() != "goals:over:2.5" || goals[1].Key() != "goals:under:2.5" {
		t.Errorf("Quoted(goals) = %v", goals)
	}
	shots := book.Quoted(bet.MarketShots)
	if len(shots) != 1 || shots[0].Key() != "shots:over:21.5" {
		t.Errorf("Quoted(shots) = %v", shots)
	}
	if got := book.Quoted(bet.MarketCards); len(got) != 0 {
		t.Errorf("Quoted(cards) = %v, want none", got)
	}
}

func TestRoundNumber(t *testing.T) {
	tests := []struct {
		round string
		want  int
	}{
		{"Regular Season - 4", 4},
		{"Regular Season - 27", 27},
		{"Round of 16", 0},
		{"Round of 16 - Leg 1", 0},
		{"Quarter-finals", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := RoundNumber(tt.round); got != tt.want {
			t.Errorf("RoundNumber(%q) = %d, want %d", tt.round, got, tt.want)
		}
	}
}

func TestFormHelpers(t *testing.T) {
	if got := Recent("lwwdwlw", 5); got != "WDWLW" {
		t.Errorf("Recent = %q, want WDWLW", got)
	}
	if got := Recent("WD", 5); got != "WD" {
		t.Errorf("Recent short = %q, want WD", got)
	}
	w, d, l := FormCounts("WDWLW")
	if w != 3 || d != 1 || l != 1 {
		t.Errorf("FormCounts = %d/%d/%d, want 3/1/1", w, d, l)
	}
}

func TestTableRank(t *testing.T) {
	table := Table{{TeamID: 1, Rank: 1}, {TeamID: 2, Rank: 2}}
	if table.Rank(2) != 2 {
		t.Error("Rank(2) should be 2")
	}
	if table.Rank(99) != 0 {
		t.Error("unknown team should rank 0")
	}
}
