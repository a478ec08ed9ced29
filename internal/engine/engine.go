package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"football-betting-engine/internal/alerts"
	"football-betting-engine/internal/config"
	"football-betting-engine/internal/confidence"
	"football-betting-engine/internal/markets"
	"football-betting-engine/internal/match"
	"football-betting-engine/internal/metrics"
	"football-betting-engine/internal/quality"
	"football-betting-engine/internal/ranking"
	"football-betting-engine/internal/report"
	"football-betting-engine/internal/scenario"
)

// ErrInvalidFixture wraps every caller-side validation failure.
var ErrInvalidFixture = errors.New("invalid fixture")

// Store persists finished reports.
type Store interface {
	SaveReport(ctx context.Context, r report.Report) error
}

// Publisher forwards finished reports downstream.
type Publisher interface {
	Publish(ctx context.Context, r report.Report) error
}

// Engine is the orchestrator that turns a fixture into a ranked report,
// then records, stores, publishes and alerts it.
type Engine struct {
	tables    config.Tables
	calc      confidence.Calculator
	analyzers []markets.Analyzer
	workers   int

	notifier *alerts.Notifier
	store    Store
	pub      Publisher
	metrics  *metrics.EngineMetrics

	now   func() time.Time
	newID func() string
}

// New creates a new Engine. notifier, store and pub may be nil.
func New(
	cfg config.Config,
	tables config.Tables,
	notifier *alerts.Notifier,
	store Store,
	pub Publisher,
	m *metrics.EngineMetrics,
) *Engine {
	if m == nil {
		m = metrics.NewEngineMetrics()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = config.DefaultWorkers
	}
	mode, err := confidence.ParseMode(string(cfg.ConfidenceMode))
	if err != nil {
		mode = confidence.ModeStandard
	}
	return &Engine{
		tables:    tables,
		calc:      tables.Calculator(mode),
		analyzers: markets.All(),
		workers:   workers,
		notifier:  notifier,
		store:     store,
		pub:       pub,
		metrics:   m,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
}

// Mode returns the confidence mode the engine runs with.
func (e *Engine) Mode() confidence.Mode { return e.calc.Mode }

// Analyze runs the full pipeline for one fixture. Storage and publishing
// failures are logged and counted but do not fail the analysis.
func (e *Engine) Analyze(ctx context.Context, f match.Fixture) (report.Report, error) {
	start := time.Now()

	if err := match.Validate(f); err != nil {
		e.metrics.RecordAnalysis(metrics.OutcomeInvalid, 0)
		return report.Report{}, fmt.Errorf("%w %d: %w", ErrInvalidFixture, f.ID, err)
	}
	if err := ctx.Err(); err != nil {
		return report.Report{}, err
	}

	r := e.Build(f)
	r.ID = e.newID()
	r.CreatedAt = e.now().UTC()

	outcome := metrics.OutcomeOK
	if len(r.Predictions) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	e.metrics.RecordAnalysis(outcome, time.Since(start).Seconds())
	e.metrics.RecordScenario(string(r.Scenario.Label))
	e.metrics.RecordPredictions(r.Predictions)

	slog.Debug("Fixture analysed",
		"fixture", f.ID, "scenario", r.Scenario.Label,
		"predictions", len(r.Predictions), "main", len(r.Board.Main))

	if e.store != nil {
		if err := e.store.SaveReport(ctx, r); err != nil {
			e.metrics.RecordStoreError()
			slog.Error("Saving report failed", "fixture", f.ID, "report", r.ID, "err", err)
		}
	}
	if e.pub != nil {
		if err := e.pub.Publish(ctx, r); err != nil {
			e.metrics.RecordPublishError()
			slog.Error("Publishing report failed", "fixture", f.ID, "report", r.ID, "err", err)
		}
	}
	e.alert(r)
	return r, nil
}

// Build computes the report for a validated fixture without side effects.
// ID and CreatedAt are left for the caller.
func (e *Engine) Build(f match.Fixture) report.Report {
	round := match.RoundNumber(f.Round)
	weight := e.tables.LeagueWeights.Of(f.LeagueID)

	importance := quality.GameImportance(f.Table, f.Home.ID, f.Away.ID, round)
	for _, imp := range importance {
		if imp.Kind == quality.SurvivalBattle {
			f.Relegation = true
		}
	}

	home := e.team(f.Home, f.Table, weight, round)
	away := e.team(f.Away, f.Table, weight, round)
	home.Profile = quality.AdjustForOpponent(home.Profile, quality.OpponentStrength(away.Momentum, away.Quality.Score))
	away.Profile = quality.AdjustForOpponent(away.Profile, quality.OpponentStrength(home.Momentum, home.Quality.Score))

	res := scenario.Select(scenario.NewInputs(f, side(home), side(away)))

	in := markets.Input{Fixture: f, Scenario: res, Calculator: e.calc, Settings: e.tables.Markets}
	preds := markets.Run(in, e.analyzers...)

	vc := quality.DetectValueContext(f)
	board := ranking.Rank(preds, ranking.Context{
		Book:     f.Odds,
		Label:    res.Label,
		Vetoes:   e.tables.Vetoes,
		ValueCtx: vc,
	})

	return report.Report{
		FixtureID:    f.ID,
		LeagueID:     f.LeagueID,
		Round:        f.Round,
		Mode:         e.calc.Mode,
		Home:         home,
		Away:         away,
		Scenario:     res,
		Importance:   importance,
		Insights:     quality.Compatibility(f.Home, f.Away),
		PlayStyles:   quality.PlayStyles(f.Home, f.Away),
		ValueContext: vc,
		Predictions:  preds,
		Board:        board,
	}
}

func (e *Engine) team(t match.TeamStats, table match.Table, weight float64, round int) report.Team {
	return report.Team{
		ID:       t.ID,
		Name:     t.Name,
		Quality:  quality.Compute(t, e.tables.Reputations, quality.PositionIn(table, t.ID), weight, round),
		Momentum: quality.Momentum(t),
		Power:    quality.PowerScore(t),
		Profile:  quality.Profile(t),
		Schedule: quality.StrengthOfSchedule(t.Recent),
	}
}

func side(t report.Team) scenario.Side {
	return scenario.Side{QSC: t.Quality.Score, Momentum: t.Momentum, Power: t.Power, Profile: t.Profile}
}

func (e *Engine) alert(r report.Report) {
	if e.notifier == nil {
		return
	}
	for _, p := range r.Board.Main {
		entry := ranking.Entry{FixtureID: r.FixtureID, Home: r.Home.Name, Away: r.Away.Name, Pick: p}
		if e.notifier.AlertPick(entry) {
			e.metrics.RecordAlert()
		}
	}
}

// BatchResult is the outcome of one fixture in a batch.
type BatchResult struct {
	FixtureID int64          `json:"fixture_id"`
	Report    *report.Report `json:"report,omitempty"`
	Err       error          `json:"-"`
	Error     string         `json:"error,omitempty"`
}

// AnalyzeBatch analyses fixtures on a bounded worker pool. Results are in
// input order. Once ctx is cancelled the remaining fixtures are skipped
// with the context error.
func (e *Engine) AnalyzeBatch(ctx context.Context, fixtures []match.Fixture) []BatchResult {
	results := make([]BatchResult, len(fixtures))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < e.workers && w < len(fixtures); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				f := fixtures[i]
				res := BatchResult{FixtureID: f.ID}
				if err := ctx.Err(); err != nil {
					res.Err = err
				} else if r, err := e.Analyze(ctx, f); err != nil {
					res.Err = err
				} else {
					res.Report = &r
				}
				if res.Err != nil {
					res.Error = res.Err.Error()
				}
				results[i] = res
			}
		}()
	}

	for i := range fixtures {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

// BestOfDay ranks the main picks of the successful results.
func BestOfDay(results []BatchResult, n int) []ranking.Entry {
	reports := make([]report.Report, 0, len(results))
	for _, res := range results {
		if res.Report != nil {
			reports = append(reports, *res.Report)
		}
	}
	return report.BestOfDay(reports, n)
}

// RunMaintenance periodically clears stale alert records. It blocks until
// ctx is cancelled.
func (e *Engine) RunMaintenance(ctx context.Context) {
	if e.notifier == nil {
		return
	}
	cleanupTicker := time.NewTicker(config.DefaultCleanupInterval)
	defer cleanupTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cleanupTicker.C:
			e.notifier.CleanupOldAlerts()
		}
	}
}
