package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"football-betting-engine/internal/confidence"
	"football-betting-engine/internal/markets"
	"football-betting-engine/internal/quality"
	"football-betting-engine/internal/scenario"
)

// Tables holds the read-only model tables shared by every analysis.
type Tables struct {
	Markets          markets.Settings      `yaml:"markets"`
	OddsPenaltyBelow float64               `yaml:"odds_penalty_below"`
	Reputations      quality.Reputations   `yaml:"reputations"`
	LeagueWeights    quality.LeagueWeights `yaml:"league_weights"`
	Coherence        confidence.Coherence  `yaml:"coherence"`
	Vetoes           scenario.Vetoes       `yaml:"vetoes"`
}

// DefaultTables returns the built-in model tables.
func DefaultTables() Tables {
	return Tables{
		Markets:          markets.DefaultSettings(),
		OddsPenaltyBelow: confidence.DefaultOddsPenaltyBelow,
		Reputations:      quality.DefaultReputations(),
		LeagueWeights:    quality.DefaultLeagueWeights(),
		Coherence:        confidence.DefaultCoherence(),
		Vetoes:           scenario.DefaultVetoes(),
	}
}

// LoadTables reads a YAML file over the defaults. Map entries are merged
// into the built-in tables; lists and scalars present in the file replace
// the defaults. An empty path returns the defaults.
func LoadTables(path string) (Tables, error) {
	t := DefaultTables()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("reading tables: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("parsing tables %s: %w", path, err)
	}
	if err := ValidateTables(t); err != nil {
		return Tables{}, fmt.Errorf("tables %s: %w", path, err)
	}
	return t, nil
}

// ValidateTables checks that table values are within acceptable ranges.
func ValidateTables(t Tables) error {
	thresholds := t.Markets.Thresholds.Each()
	names := make([]string, 0, len(thresholds))
	for name := range thresholds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if v := thresholds[name]; v < confidence.Min || v > confidence.Max {
			return fmt.Errorf("threshold %s must be between 1 and 10, got %.2f", name, v)
		}
	}

	if t.Markets.MinOdd < 1 {
		return fmt.Errorf("min_odd must be at least 1.0, got %.2f", t.Markets.MinOdd)
	}
	if t.OddsPenaltyBelow < 1 {
		return fmt.Errorf("odds_penalty_below must be at least 1.0, got %.2f", t.OddsPenaltyBelow)
	}
	for id, rep := range t.Reputations {
		if rep < 0 || rep > 100 {
			return fmt.Errorf("reputation of team %d must be between 0 and 100, got %d", id, rep)
		}
	}
	for id, w := range t.LeagueWeights {
		if w <= 0 || w > 1.5 {
			return fmt.Errorf("weight of league %d must be in (0, 1.5], got %.2f", id, w)
		}
	}
	if t.Coherence.Penalty < 0 {
		return fmt.Errorf("coherence penalty must be non-negative, got %.2f", t.Coherence.Penalty)
	}
	for _, r := range t.Coherence.Rules {
		if r.Bonus < 0 {
			return fmt.Errorf("coherence bonus for %s must be non-negative, got %.2f", r.Bet.Key(), r.Bonus)
		}
	}
	return nil
}

// Calculator builds the confidence calculator for a mode from the tables.
func (t Tables) Calculator(mode confidence.Mode) confidence.Calculator {
	c := confidence.NewCalculator(mode, t.Coherence)
	c.OddsPenaltyBelow = t.OddsPenaltyBelow
	return c
}
