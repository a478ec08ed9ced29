// Package store keeps the history of analysis reports in SQLite or Postgres.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"football-betting-engine/internal/report"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Pick groups a stored prediction belongs to.
const (
	GroupMain        = "main"
	GroupAlternative = "alternative"
	GroupOther       = "other"
)

// Prediction is one stored prediction row.
type Prediction struct {
	ReportID    string    `json:"report_id"`
	FixtureID   int64     `json:"fixture_id"`
	BetKey      string    `json:"bet"`
	Market      string    `json:"market"`
	Label       string    `json:"label"`
	Confidence  float64   `json:"confidence"`
	Probability float64   `json:"probability"`
	Odd         float64   `json:"odd,omitempty"`
	Tactical    bool      `json:"tactical"`
	Value       float64   `json:"value"`
	Group       string    `json:"group"`
	CreatedAt   time.Time `json:"created_at"`
}

// DB handles report storage
type DB struct {
	db     *sql.DB
	driver string
}

// Open connects to the database and creates the schema if needed.
func Open(driver, dsn string) (*DB, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if driver == DriverSQLite {
		// One connection keeps in-memory databases shared and writes serialised.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	d := &DB{db: db, driver: driver}
	if err := d.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) createTables() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			fixture_id BIGINT NOT NULL,
			league_id INTEGER NOT NULL,
			home_team TEXT NOT NULL,
			away_team TEXT NOT NULL,
			scenario TEXT NOT NULL,
			payload TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_fixture ON reports(fixture_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_created ON reports(created_at)`,
		`CREATE TABLE IF NOT EXISTS predictions (
			report_id TEXT NOT NULL,
			fixture_id BIGINT NOT NULL,
			bet_key TEXT NOT NULL,
			market TEXT NOT NULL,
			label TEXT NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			probability DOUBLE PRECISION NOT NULL,
			odd DOUBLE PRECISION NOT NULL,
			tactical BOOLEAN NOT NULL,
			value DOUBLE PRECISION NOT NULL,
			pick_group TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (report_id, bet_key)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_predictions_fixture ON predictions(fixture_id)`,
	}
	for _, s := range statements {
		if _, err := d.db.Exec(s); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}
	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// rebind rewrites ? placeholders as $n for Postgres.
func (d *DB) rebind(query string) string {
	if d.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SaveReport stores a report and its predictions in one transaction.
func (d *DB) SaveReport(ctx context.Context, r report.Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	created := r.CreatedAt.UTC()

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, d.rebind(`
		INSERT INTO reports (id, fixture_id, league_id, home_team, away_team, scenario, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), r.ID, r.FixtureID, r.LeagueID, r.Home.Name, r.Away.Name, string(r.Scenario.Label), string(payload), created)
	if err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}

	insert := d.rebind(`
		INSERT INTO predictions (report_id, fixture_id, bet_key, market, label, confidence,
			probability, odd, tactical, value, pick_group, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	for _, p := range rows(r) {
		if _, err := tx.ExecContext(ctx, insert, p.ReportID, p.FixtureID, p.BetKey, p.Market, p.Label,
			p.Confidence, p.Probability, p.Odd, p.Tactical, p.Value, p.Group, created); err != nil {
			return fmt.Errorf("inserting prediction %s: %w", p.BetKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing report: %w", err)
	}
	return nil
}

// rows flattens a report into prediction rows, tagging ranked picks with
// their group and value.
func rows(r report.Report) []Prediction {
	type ranked struct {
		group string
		value float64
	}
	byKey := make(map[string]ranked)
	for _, p := range r.Board.Main {
		byKey[p.Bet.Key()] = ranked{GroupMain, p.Value}
	}
	for _, p := range r.Board.Alternatives {
		byKey[p.Bet.Key()] = ranked{GroupAlternative, p.Value}
	}

	out := make([]Prediction, 0, len(r.Predictions))
	seen := make(map[string]bool, len(r.Predictions))
	for _, p := range r.Predictions {
		key := p.Bet.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		rk, ok := byKey[key]
		if !ok {
			rk.group = GroupOther
		}
		out = append(out, Prediction{
			ReportID:    r.ID,
			FixtureID:   r.FixtureID,
			BetKey:      key,
			Market:      p.Bet.Market.String(),
			Label:       p.Label,
			Confidence:  p.Confidence,
			Probability: p.Probability,
			Odd:         p.Odd,
			Tactical:    p.Tactical,
			Value:       rk.value,
			Group:       rk.group,
		})
	}
	return out
}

// PredictionsByFixture returns the predictions of the latest report for a
// fixture, main picks first, then by confidence.
func (d *DB) PredictionsByFixture(ctx context.Context, fixtureID int64) ([]Prediction, error) {
	rs, err := d.db.QueryContext(ctx, d.rebind(`
		SELECT report_id, fixture_id, bet_key, market, label, confidence, probability,
			odd, tactical, value, pick_group, created_at
		FROM predictions
		WHERE report_id = (
			SELECT id FROM reports WHERE fixture_id = ? ORDER BY created_at DESC, id DESC LIMIT 1
		)
		ORDER BY CASE pick_group WHEN 'main' THEN 0 WHEN 'alternative' THEN 1 ELSE 2 END,
			confidence DESC, bet_key
	`), fixtureID)
	if err != nil {
		return nil, fmt.Errorf("querying predictions by fixture: %w", err)
	}
	defer rs.Close()

	var preds []Prediction
	for rs.Next() {
		var p Prediction
		if err := rs.Scan(&p.ReportID, &p.FixtureID, &p.BetKey, &p.Market, &p.Label, &p.Confidence,
			&p.Probability, &p.Odd, &p.Tactical, &p.Value, &p.Group, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning prediction row: %w", err)
		}
		preds = append(preds, p)
	}
	return preds, rs.Err()
}

// RecentReports returns the latest reports, newest first.
func (d *DB) RecentReports(ctx context.Context, limit int) ([]report.Report, error) {
	rs, err := d.db.QueryContext(ctx, d.rebind(`
		SELECT payload FROM reports ORDER BY created_at DESC, id DESC LIMIT ?
	`), limit)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rs.Close()

	var reports []report.Report
	for rs.Next() {
		var payload string
		if err := rs.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		var r report.Report
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			return nil, fmt.Errorf("decoding report: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rs.Err()
}

// ReportsSince returns reports created at or after since, newest first.
func (d *DB) ReportsSince(ctx context.Context, since time.Time) ([]report.Report, error) {
	rs, err := d.db.QueryContext(ctx, d.rebind(`
		SELECT payload FROM reports WHERE created_at >= ? ORDER BY created_at DESC, id DESC
	`), since.UTC())
	if err != nil {
		return nil, fmt.Errorf("querying reports since %s: %w", since.Format(time.RFC3339), err)
	}
	defer rs.Close()

	var reports []report.Report
	for rs.Next() {
		var payload string
		if err := rs.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		var r report.Report
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			return nil, fmt.Errorf("decoding report: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rs.Err()
}
