package quality

import "football-betting-engine/internal/match"

// Style is a team's attacking disposition.
type Style string

const (
	Offensive Style = "offensive"
	Neutral   Style = "neutral"
	Defensive Style = "defensive"
)

// Intensity is how busy a team's games tend to be.
type Intensity string

const (
	IntensityHigh   Intensity = "high"
	IntensityMedium Intensity = "medium"
	IntensityLow    Intensity = "low"
)

// TacticalProfile is a team's derived tactical tendency, with estimated
// per-game corner and shot volumes.
type TacticalProfile struct {
	ForAvg         float64   `json:"for_avg"`
	AgainstAvg     float64   `json:"against_avg"`
	Style          Style     `json:"style"`
	Intensity      Intensity `json:"intensity"`
	CornersFor     float64   `json:"corners_for"`
	CornersAgainst float64   `json:"corners_against"`
	ShotsFor       float64   `json:"shots_for"`
	ShotsAgainst   float64   `json:"shots_against"`
}

// Profile derives a tactical profile from season goal averages.
func Profile(team match.TeamStats) TacticalProfile {
	p := TacticalProfile{
		ForAvg:     team.ScoringAverage(),
		AgainstAvg: team.ConcedingAverage(),
	}

	switch {
	case p.ForAvg > 1.8:
		p.Style, p.CornersFor, p.ShotsFor = Offensive, 6.5, 15
	case p.ForAvg > 1.2:
		p.Style, p.CornersFor, p.ShotsFor = Neutral, 5.0, 12
	default:
		p.Style, p.CornersFor, p.ShotsFor = Defensive, 3.5, 9
	}

	switch {
	case p.AgainstAvg > 1.5:
		p.CornersAgainst, p.ShotsAgainst = 6.0, 14
	case p.AgainstAvg > 1.0:
		p.CornersAgainst, p.ShotsAgainst = 4.5, 11
	default:
		p.CornersAgainst, p.ShotsAgainst = 3.0, 8
	}

	p.Intensity = intensityOf(p)
	return p
}

func intensityOf(p TacticalProfile) Intensity {
	volume := p.CornersFor + p.ShotsFor
	switch {
	case volume > 20:
		return IntensityHigh
	case volume > 15:
		return IntensityMedium
	}
	return IntensityLow
}

// Opponent strength bands for AdjustForOpponent.
const (
	WeakOpponentBelow   = 40
	StrongOpponentAbove = 70
)

// OpponentStrength averages momentum and quality score.
func OpponentStrength(momentum, qsc int) float64 {
	return float64(momentum+qsc) / 2
}

// AdjustForOpponent scales a profile against the strength of the other side.
// A weak opponent concedes more volume; a strong one suppresses it.
func AdjustForOpponent(p TacticalProfile, opponentStrength float64) TacticalProfile {
	switch {
	case opponentStrength < WeakOpponentBelow:
		p.CornersFor *= 1.35
		p.ShotsFor *= 1.30
		p.CornersAgainst *= 0.60
		p.ShotsAgainst *= 0.65
	case opponentStrength > StrongOpponentAbove:
		p.CornersFor *= 0.65
		p.ShotsFor *= 0.70
		p.CornersAgainst *= 1.40
		p.ShotsAgainst *= 1.35
	default:
		return p
	}
	p.Intensity = intensityOf(p)
	return p
}

// Difficulty grades a strength of schedule.
type Difficulty string

const (
	VeryHard Difficulty = "very_hard"
	Hard     Difficulty = "hard"
	Medium   Difficulty = "medium"
	Easy     Difficulty = "easy"
)

// Schedule summarises the quality of recent opponents.
type Schedule struct {
	Score        float64    `json:"score"`
	OpponentsQSC []int      `json:"opponents_qsc"`
	Difficulty   Difficulty `json:"difficulty"`
}

const scheduleWindow = 5

// StrengthOfSchedule averages the quality of the last five opponents with a
// known score. No data grades as medium with score 50.
func StrengthOfSchedule(recent []match.RecentMatch) Schedule {
	if len(recent) > scheduleWindow {
		recent = recent[len(recent)-scheduleWindow:]
	}

	var qscs []int
	sum := 0
	for _, m := range recent {
		if m.OpponentQSC <= 0 {
			continue
		}
		qscs = append(qscs, m.OpponentQSC)
		sum += m.OpponentQSC
	}
	if len(qscs) == 0 {
		return Schedule{Score: neutralScore, Difficulty: Medium}
	}

	score := float64(sum) / float64(len(qscs))
	s := Schedule{Score: score, OpponentsQSC: qscs}
	switch {
	case score >= 75:
		s.Difficulty = VeryHard
	case score >= 60:
		s.Difficulty = Hard
	case score >= 45:
		s.Difficulty = Medium
	default:
		s.Difficulty = Easy
	}
	return s
}

// Weighted holds recent volumes weighted by opponent quality.
type Weighted struct {
	CornersFor     float64 `json:"corners_for"`
	CornersAgainst float64 `json:"corners_against"`
	ShotsFor       float64 `json:"shots_for"`
	ShotsAgainst   float64 `json:"shots_against"`
}

// IsZero reports whether no weighted data is available.
func (w Weighted) IsZero() bool {
	return w == Weighted{}
}

// WeightedMetrics weights each of the last five games by opponentQSC/50,
// so a game against an average side counts once. Unknown opponents count
// as 50.
func WeightedMetrics(recent []match.RecentMatch) Weighted {
	if len(recent) > scheduleWindow {
		recent = recent[len(recent)-scheduleWindow:]
	}

	var w Weighted
	total := 0.0
	for _, m := range recent {
		qsc := float64(m.OpponentQSC)
		if qsc <= 0 {
			qsc = neutralScore
		}
		weight := qsc / neutralScore
		w.CornersFor += m.CornersFor * weight
		w.CornersAgainst += m.CornersAgainst * weight
		w.ShotsFor += m.ShotsFor * weight
		w.ShotsAgainst += m.ShotsAgainst * weight
		total += weight
	}
	if total == 0 {
		total = 1
	}
	w.CornersFor /= total
	w.CornersAgainst /= total
	w.ShotsFor /= total
	w.ShotsAgainst /= total
	return w
}
