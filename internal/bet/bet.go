package bet

import (
	"fmt"
	"strconv"
	"strings"
)

// Market is a betting market family.
type Market int

const (
	MarketUnknown Market = iota
	MarketGoals
	MarketCorners
	MarketCards
	MarketBTTS
	MarketResult
	MarketHandicap
	MarketShots
	MarketShotsOnTarget
)

var marketNames = map[Market]string{
	MarketGoals:         "goals",
	MarketCorners:       "corners",
	MarketCards:         "cards",
	MarketBTTS:          "btts",
	MarketResult:        "result",
	MarketHandicap:      "handicap",
	MarketShots:         "shots",
	MarketShotsOnTarget: "shots_on_target",
}

func (m Market) String() string {
	if s, ok := marketNames[m]; ok {
		return s
	}
	return "unknown"
}

// Markets lists every known market in display order.
func Markets() []Market {
	return []Market{
		MarketGoals, MarketCorners, MarketCards, MarketBTTS,
		MarketResult, MarketHandicap, MarketShots, MarketShotsOnTarget,
	}
}

// ParseMarket resolves a market name such as "goals" or "btts".
func ParseMarket(s string) (Market, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range marketNames {
		if name == s {
			return m, nil
		}
	}
	return MarketUnknown, fmt.Errorf("unknown market %q", s)
}

// Direction is the side of a bet inside its market.
type Direction int

const (
	DirectionUnknown Direction = iota
	Over
	Under
	Yes
	No
	Home
	Draw
	Away
	HomeOrDraw
	DrawOrAway
	HomeOrAway
)

var directionNames = map[Direction]string{
	Over:       "over",
	Under:      "under",
	Yes:        "yes",
	No:         "no",
	Home:       "home",
	Draw:       "draw",
	Away:       "away",
	HomeOrDraw: "1x",
	DrawOrAway: "x2",
	HomeOrAway: "12",
}

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return "unknown"
}

// Opposite returns the complementary direction of a two-way market.
func (d Direction) Opposite() Direction {
	switch d {
	case Over:
		return Under
	case Under:
		return Over
	case Yes:
		return No
	case No:
		return Yes
	case Home:
		return Away
	case Away:
		return Home
	}
	return DirectionUnknown
}

// Period is the part of the match a bet settles on.
type Period int

const (
	FullTime Period = iota
	FirstHalf
)

func (p Period) String() string {
	if p == FirstHalf {
		return "HT"
	}
	return "FT"
}

// Scope restricts a line to one team's count.
type Scope int

const (
	ScopeMatch Scope = iota
	ScopeHome
	ScopeAway
)

func (s Scope) String() string {
	switch s {
	case ScopeHome:
		return "home"
	case ScopeAway:
		return "away"
	}
	return "match"
}

// HandicapStyle distinguishes Asian lines (push possible) from European ones.
type HandicapStyle int

const (
	NoHandicap HandicapStyle = iota
	Asian
	European
)

func (h HandicapStyle) String() string {
	switch h {
	case Asian:
		return "asian"
	case European:
		return "european"
	}
	return ""
}

// Bet identifies one selection. Line is always non-negative: for handicaps
// it is the number of goals the Direction team gives away.
type Bet struct {
	Market    Market
	Direction Direction
	Line      float64
	Period    Period
	Scope     Scope
	Handicap  HandicapStyle
}

func (b Bet) hasLine() bool {
	switch b.Market {
	case MarketGoals, MarketCorners, MarketCards, MarketHandicap, MarketShots, MarketShotsOnTarget:
		return true
	}
	return false
}

// Key is the canonical identifier, e.g. "goals:over:2.5" or
// "corners:over:4.5:ht:home". It is the form used by odds books and
// veto tables.
func (b Bet) Key() string {
	parts := []string{b.Market.String(), b.Direction.String()}
	if b.hasLine() {
		parts = append(parts, strconv.FormatFloat(b.Line, 'f', -1, 64))
	}
	if b.Period == FirstHalf {
		parts = append(parts, "ht")
	}
	if b.Scope != ScopeMatch {
		parts = append(parts, b.Scope.String())
	}
	if b.Handicap != NoHandicap {
		parts = append(parts, b.Handicap.String())
	}
	return strings.Join(parts, ":")
}

func (b Bet) String() string { return b.Key() }

// Label renders a short human-readable name.
func (b Bet) Label() string {
	var s string
	switch b.Market {
	case MarketBTTS:
		if b.Direction == Yes {
			s = "BTTS Yes"
		} else {
			s = "BTTS No"
		}
	case MarketResult:
		switch b.Direction {
		case Home:
			s = "Home Win"
		case Draw:
			s = "Draw"
		case Away:
			s = "Away Win"
		default:
			s = "Double Chance " + strings.ToUpper(b.Direction.String())
		}
	case MarketHandicap:
		team := "Home"
		if b.Direction == Away {
			team = "Away"
		}
		line := strconv.FormatFloat(b.Line, 'f', -1, 64)
		if b.Line > 0 {
			line = "-" + line
		}
		style := "AH"
		if b.Handicap == European {
			style = "EH"
		}
		s = fmt.Sprintf("%s %s (%s)", team, line, style)
	default:
		dir := "Over"
		if b.Direction == Under {
			dir = "Under"
		}
		noun := map[Market]string{
			MarketGoals:         "Goals",
			MarketCorners:       "Corners",
			MarketCards:         "Cards",
			MarketShots:         "Shots",
			MarketShotsOnTarget: "Shots on Target",
		}[b.Market]
		s = fmt.Sprintf("%s %s %s", dir, strconv.FormatFloat(b.Line, 'f', 1, 64), noun)
		switch b.Scope {
		case ScopeHome:
			s = "Home " + s
		case ScopeAway:
			s = "Away " + s
		}
	}
	if b.Period == FirstHalf {
		s += " HT"
	}
	return s
}

// Parse reads a canonical key produced by Key.
func Parse(key string) (Bet, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(key)), ":")
	if len(parts) < 2 {
		return Bet{}, fmt.Errorf("parsing bet %q: want market:direction[...]", key)
	}

	m, err := ParseMarket(parts[0])
	if err != nil {
		return Bet{}, fmt.Errorf("parsing bet %q: %w", key, err)
	}
	b := Bet{Market: m}

	for d, name := range directionNames {
		if name == parts[1] {
			b.Direction = d
			break
		}
	}
	if b.Direction == DirectionUnknown {
		return Bet{}, fmt.Errorf("parsing bet %q: unknown direction %q", key, parts[1])
	}

	for _, p := range parts[2:] {
		switch p {
		case "ht":
			b.Period = FirstHalf
		case "ft":
			b.Period = FullTime
		case "home":
			b.Scope = ScopeHome
		case "away":
			b.Scope = ScopeAway
		case "asian":
			b.Handicap = Asian
		case "european":
			b.Handicap = European
		default:
			line, err := strconv.ParseFloat(p, 64)
			if err != nil || line < 0 {
				return Bet{}, fmt.Errorf("parsing bet %q: bad token %q", key, p)
			}
			b.Line = line
		}
	}
	if b.Market == MarketHandicap && b.Handicap == NoHandicap {
		b.Handicap = Asian
	}
	return b, nil
}

// MarshalText implements encoding.TextMarshaler so bets travel as keys.
func (b Bet) MarshalText() ([]byte, error) {
	return []byte(b.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bet) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Conflicts reports whether two bets cannot both win (or are redundant
// opposites) in the same match.
func Conflicts(a, b Bet) bool {
	if a.Market == MarketResult && b.Market == MarketResult {
		return !resultCompatible(a.Direction, b.Direction)
	}
	if a.Market == MarketBTTS && b.Market == MarketBTTS {
		return a.Direction != b.Direction
	}
	if a.Market == b.Market && a.Period == b.Period && a.Scope == b.Scope {
		if (a.Direction == Over && b.Direction == Under) || (a.Direction == Under && b.Direction == Over) {
			return true
		}
	}
	// Over X HT leaves no room for Under X+1 FT or lower.
	if a.Market == MarketGoals && b.Market == MarketGoals && a.Direction == Over && a.Period == FirstHalf &&
		b.Direction == Under && b.Period == FullTime && b.Line <= a.Line+1.0 {
		return true
	}
	return false
}

func resultCompatible(a, b Direction) bool {
	outcomes := func(d Direction) map[Direction]bool {
		switch d {
		case Home, Draw, Away:
			return map[Direction]bool{d: true}
		case HomeOrDraw:
			return map[Direction]bool{Home: true, Draw: true}
		case DrawOrAway:
			return map[Direction]bool{Draw: true, Away: true}
		case HomeOrAway:
			return map[Direction]bool{Home: true, Away: true}
		}
		return nil
	}
	oa, ob := outcomes(a), outcomes(b)
	for d := range oa {
		if ob[d] {
			return true
		}
	}
	return false
}
