package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"football-betting-engine/internal/config"
	"football-betting-engine/internal/confidence"
	"football-betting-engine/internal/engine"
	"football-betting-engine/internal/match"
	"football-betting-engine/internal/ranking"
)

func main() {
	mode := flag.String("mode", "", "confidence mode: standard or extended (default from CONFIDENCE_MODE)")
	tablesPath := flag.String("tables", "", "YAML model tables (default from TABLES_PATH)")
	asJSON := flag.Bool("json", false, "print full reports as JSON")
	best := flag.Int("best", config.DefaultBestOfDay, "number of best picks across fixtures")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: analyze [flags] fixture.json...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	cfg.LogFormat = "text"
	slog.SetDefault(config.Logger(cfg, os.Stderr))
	if *mode != "" {
		cfg.ConfidenceMode = confidence.Mode(*mode)
	}
	if *tablesPath != "" {
		cfg.TablesPath = *tablesPath
	}
	if err := run(cfg, flag.Args(), *asJSON, *best, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, paths []string, asJSON bool, best int, out io.Writer) error {
	mode, err := confidence.ParseMode(string(cfg.ConfidenceMode))
	if err != nil {
		return err
	}
	cfg.ConfidenceMode = mode
	tables, err := config.LoadTables(cfg.TablesPath)
	if err != nil {
		return err
	}

	var fixtures []match.Fixture
	for _, p := range paths {
		fs, err := readFixtures(p)
		if err != nil {
			return err
		}
		fixtures = append(fixtures, fs...)
	}

	eng := engine.New(cfg, tables, nil, nil, nil, nil)
	results := eng.AnalyzeBatch(context.Background(), fixtures)

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(out, "fixture %d: %v\n\n", res.FixtureID, res.Err)
			continue
		}
		printReport(out, res)
	}
	printBest(out, engine.BestOfDay(results, best))
	return nil
}

// readFixtures accepts a single fixture object or an array of fixtures.
func readFixtures(path string) ([]match.Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var fs []match.Fixture
		if err := json.Unmarshal(data, &fs); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return fs, nil
	}
	var f match.Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return []match.Fixture{f}, nil
}

func printReport(out io.Writer, res engine.BatchResult) {
	r := res.Report
	fmt.Fprintf(out, "%s x %s (fixture %d, %s)\n", r.Home.Name, r.Away.Name, r.FixtureID, r.Round)
	fmt.Fprintf(out, "  quality %d x %d | momentum %d x %d\n",
		r.Home.Quality.Score, r.Away.Quality.Score, r.Home.Momentum, r.Away.Momentum)
	fmt.Fprintf(out, "  scenario %s: %s\n", r.Scenario.Label, r.Scenario.Rationale)

	if len(r.Board.Main) == 0 {
		fmt.Fprintf(out, "  no pick cleared its threshold\n\n")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  \tBET\tCONF\tPROB\tODD\tVALUE")
	for _, p := range r.Board.Main {
		printPick(w, "main", p)
	}
	for _, p := range r.Board.Alternatives {
		printPick(w, "alt", p)
	}
	w.Flush()
	if len(r.Board.Vetoed) > 0 {
		fmt.Fprintf(out, "  vetoed: %v\n", r.Board.Vetoed)
	}
	fmt.Fprintln(out)
}

func printPick(w io.Writer, group string, p ranking.Pick) {
	odd := "tactical"
	value := fmt.Sprintf("%.2f", p.Value)
	if !p.Tactical {
		odd = fmt.Sprintf("%.2f", p.Odd)
		value = confidence.FormatValue(p.Value)
	}
	fmt.Fprintf(w, "  %s\t%s\t%.1f\t%.1f%%\t%s\t%s\n", group, p.Label, p.Confidence, p.Probability, odd, value)
}

func printBest(out io.Writer, entries []ranking.Entry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintln(out, "Best of the day")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, e := range entries {
		fmt.Fprintf(w, "  %d.\t%s x %s\t%s\t%.1f\n", i+1, e.Home, e.Away, e.Pick.Label, e.Pick.Confidence)
	}
	w.Flush()
}
