package bet

import "testing"

func TestKeyAndParse(t *testing.T) {
	tests := []struct {
		name string
		bet  Bet
		key  string
	}{
		{"goals over", Bet{Market: MarketGoals, Direction: Over, Line: 2.5}, "goals:over:2.5"},
		{"goals over HT", Bet{Market: MarketGoals, Direction: Over, Line: 0.5, Period: FirstHalf}, "goals:over:0.5:ht"},
		{"home corners", Bet{Market: MarketCorners, Direction: Over, Line: 5.5, Scope: ScopeHome}, "corners:over:5.5:home"},
		{"btts", Bet{Market: MarketBTTS, Direction: No}, "btts:no"},
		{"double chance", Bet{Market: MarketResult, Direction: HomeOrDraw}, "result:1x"},
		{"asian handicap", Bet{Market: MarketHandicap, Direction: Home, Line: 1.5, Handicap: Asian}, "handicap:home:1.5:asian"},
		{"european handicap", Bet{Market: MarketHandicap, Direction: Home, Line: 2, Handicap: European}, "handicap:home:2:european"},
		{"on target", Bet{Market: MarketShotsOnTarget, Direction: Under, Line: 7.5}, "shots_on_target:under:7.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bet.Key(); got != tt.key {
				t.Errorf("Key() = %q, want %q", got, tt.key)
			}
			parsed, err := Parse(tt.key)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.key, err)
			}
			if parsed != tt.bet {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.key, parsed, tt.bet)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, key := range []string{"", "goals", "tennis:over:2.5", "goals:sideways:2.5", "goals:over:-1", "goals:over:abc"} {
		if _, err := Parse(key); err == nil {
			t.Errorf("Parse(%q) expected error", key)
		}
	}
}

func TestParseDefaultsHandicapStyle(t *testing.T) {
	b, err := Parse("handicap:away:0.5")
	if err != nil {
		t.Fatal(err)
	}
	if b.Handicap != Asian {
		t.Errorf("Handicap = %v, want asian", b.Handicap)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		bet  Bet
		want string
	}{
		{Bet{Market: MarketGoals, Direction: Over, Line: 2.5}, "Over 2.5 Goals"},
		{Bet{Market: MarketCorners, Direction: Under, Line: 4.5, Period: FirstHalf}, "Under 4.5 Corners HT"},
		{Bet{Market: MarketCorners, Direction: Over, Line: 3.5, Scope: ScopeAway}, "Away Over 3.5 Corners"},
		{Bet{Market: MarketBTTS, Direction: Yes}, "BTTS Yes"},
		{Bet{Market: MarketResult, Direction: Draw}, "Draw"},
		{Bet{Market: MarketResult, Direction: DrawOrAway}, "Double Chance X2"},
		{Bet{Market: MarketHandicap, Direction: Home, Line: 1.5, Handicap: Asian}, "Home -1.5 (AH)"},
		{Bet{Market: MarketHandicap, Direction: Home, Line: 0, Handicap: Asian}, "Home 0 (AH)"},
	}

	for _, tt := range tests {
		if got := tt.bet.Label(); got != tt.want {
			t.Errorf("Label(%s) = %q, want %q", tt.bet.Key(), got, tt.want)
		}
	}
}

func TestConflicts(t *testing.T) {
	over25 := Bet{Market: MarketGoals, Direction: Over, Line: 2.5}
	under25 := Bet{Market: MarketGoals, Direction: Under, Line: 2.5}
	under35 := Bet{Market: MarketGoals, Direction: Under, Line: 3.5}
	overHT := Bet{Market: MarketGoals, Direction: Over, Line: 1.5, Period: FirstHalf}
	cornersOver := Bet{Market: MarketCorners, Direction: Over, Line: 9.5}

	tests := []struct {
		name string
		a, b Bet
		want bool
	}{
		{"over vs under same market", over25, under25, true},
		{"over vs under different lines", over25, under35, true},
		{"different markets", over25, Bet{Market: MarketCorners, Direction: Under, Line: 9.5}, false},
		{"HT over vs low FT under", overHT, under25, true},
		{"HT over vs high FT under", overHT, Bet{Market: MarketGoals, Direction: Under, Line: 4.5}, false},
		{"home vs draw", Bet{Market: MarketResult, Direction: Home}, Bet{Market: MarketResult, Direction: Draw}, true},
		{"home vs 1X", Bet{Market: MarketResult, Direction: Home}, Bet{Market: MarketResult, Direction: HomeOrDraw}, false},
		{"home vs X2", Bet{Market: MarketResult, Direction: Home}, Bet{Market: MarketResult, Direction: DrawOrAway}, true},
		{"btts yes vs no", Bet{Market: MarketBTTS, Direction: Yes}, Bet{Market: MarketBTTS, Direction: No}, true},
		{"same bet", cornersOver, cornersOver, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Conflicts(tt.a, tt.b); got != tt.want {
				t.Errorf("Conflicts(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestOpposite(t *testing.T) {
	pairs := map[Direction]Direction{Over: Under, Yes: No, Home: Away}
	for a, b := range pairs {
		if a.Opposite() != b || b.Opposite() != a {
			t.Errorf("Opposite(%s) mismatch", a)
		}
	}
	if Draw.Opposite() != DirectionUnknown {
		t.Error("Draw has no opposite")
	}
}
