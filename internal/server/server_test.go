package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"football-betting-engine/internal/bet"
	"football-betting-engine/internal/config"
	"football-betting-engine/internal/confidence"
	"football-betting-engine/internal/engine"
	"football-betting-engine/internal/markets"
	"football-betting-engine/internal/match"
	"football-betting-engine/internal/metrics"
	"football-betting-engine/internal/ranking"
	"football-betting-engine/internal/report"
	"football-betting-engine/internal/store"
)

type fakeHistory struct {
	preds   map[int64][]store.Prediction
	reports []report.Report
	since   time.Time
	limit   int
	err     error
}

func (h *fakeHistory) PredictionsByFixture(ctx context.Context, id int64) ([]store.Prediction, error) {
	return h.preds[id], h.err
}

func (h *fakeHistory) ReportsSince(ctx context.Context, since time.Time) ([]report.Report, error) {
	h.since = since
	return h.reports, h.err
}

func (h *fakeHistory) RecentReports(ctx context.Context, limit int) ([]report.Report, error) {
	h.limit = limit
	if limit < len(h.reports) {
		return h.reports[:limit], h.err
	}
	return h.reports, h.err
}

func newTestServer(t *testing.T, history History) (*Server, http.Handler) {
	t.Helper()
	m := metrics.NewEngineMetrics()
	cfg := config.Config{Workers: 2, ConfidenceMode: confidence.ModeStandard}
	eng := engine.New(cfg, config.DefaultTables(), nil, nil, nil, m)
	s := New(eng, history, m.Registry(), []string{"*"})
	s.now = func() time.Time { return time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC) }
	return s, s.Router()
}

func fixtureJSON(id int64) match.Fixture {
	return match.Fixture{
		ID:       id,
		LeagueID: 39,
		Round:    "Regular Season - 12",
		Home: match.TeamStats{
			ID: 40, Name: "Hosts", GamesPlayed: 11, GoalsFor: 24, GoalsAgainst: 9, Form: "WWDWW",
			Home: match.VenueStats{GoalsScored: 2.1, GoalsConceded: 0.7, CornersFor: 6.2, CornersAgainst: 3.9},
		},
		Away: match.TeamStats{
			ID: 48, Name: "Visitors", GamesPlayed: 11, GoalsFor: 12, GoalsAgainst: 17, Form: "LLDWL",
			Away: match.VenueStats{GoalsScored: 1.0, GoalsConceded: 1.8, CornersFor: 4.0, CornersAgainst: 5.8},
		},
	}
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "standard", body["mode"])
	assert.Equal(t, false, body["history"])
}

func TestMetricsEndpoint(t *testing.T) {
	_, h := newTestServer(t, nil)

	do(t, h, http.MethodPost, "/api/v1/analyze", fixtureJSON(1))
	rec := do(t, h, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "football_analyses_total")
}

func TestAnalyzeEndpoint(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/v1/analyze", fixtureJSON(5))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rep report.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rep))
	assert.Equal(t, int64(5), rep.FixtureID)
	assert.NotEmpty(t, rep.ID)
	assert.NotEmpty(t, rep.Scenario.Label)
	assert.NotEmpty(t, rep.Predictions)
}

func TestAnalyzeEndpointRejectsInvalidInput(t *testing.T) {
	_, h := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"id": `},
		{"unknown field", `{"id": 1, "weather": "rain"}`},
		{"missing teams", `{"id": 1}`},
		{"odd below one", `{"id": 1, "home": {"id": 1}, "away": {"id": 2}, "odds": {"goals:over:2.5": 0.5}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var e ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&e))
			assert.Equal(t, http.StatusBadRequest, e.Code)
		})
	}
}

func TestAnalyzeBatchEndpoint(t *testing.T) {
	_, h := newTestServer(t, nil)

	bad := fixtureJSON(2)
	bad.Away.ID = 0
	rec := do(t, h, http.MethodPost, "/api/v1/analyze/batch", []match.Fixture{fixtureJSON(1), bad, fixtureJSON(3)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Results []engine.BatchResult `json:"results"`
		Count   int                  `json:"count"`
		Failed  int                  `json:"failed"`
		Best    []ranking.Entry      `json:"best"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 3, body.Count)
	assert.Equal(t, 1, body.Failed)
	require.Len(t, body.Results, 3)
	assert.Equal(t, int64(2), body.Results[1].FixtureID)
	assert.Contains(t, body.Results[1].Error, "invalid fixture")
	assert.NotNil(t, body.Results[2].Report)
	assert.Len(t, body.Best, 2)
}

func TestAnalyzeBatchEndpointLimits(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/v1/analyze/batch", []match.Fixture{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	big := make([]match.Fixture, MaxBatchSize+1)
	rec = do(t, h, http.MethodPost, "/api/v1/analyze/batch", big)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFixturePredictionsEndpoint(t *testing.T) {
	history := &fakeHistory{preds: map[int64][]store.Prediction{
		7: {{ReportID: "r1", FixtureID: 7, BetKey: "goals:over:2.5", Confidence: 7.9, Group: store.GroupMain}},
	}}
	_, h := newTestServer(t, history)

	rec := do(t, h, http.MethodGet, "/api/v1/fixtures/7/predictions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		FixtureID   int64              `json:"fixture_id"`
		Predictions []store.Prediction `json:"predictions"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(7), body.FixtureID)
	require.Len(t, body.Predictions, 1)
	assert.Equal(t, "goals:over:2.5", body.Predictions[0].BetKey)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/fixtures/8/predictions", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/v1/fixtures/abc/predictions", nil).Code)

	history.err = errors.New("db gone")
	assert.Equal(t, http.StatusInternalServerError, do(t, h, http.MethodGet, "/api/v1/fixtures/7/predictions", nil).Code)
}

func TestHistoryDisabled(t *testing.T) {
	_, h := newTestServer(t, nil)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, h, http.MethodGet, "/api/v1/fixtures/1/predictions", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, h, http.MethodGet, "/api/v1/best", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, h, http.MethodGet, "/api/v1/reports", nil).Code)
}

func TestRecentReportsEndpoint(t *testing.T) {
	history := &fakeHistory{reports: []report.Report{{FixtureID: 3}, {FixtureID: 2}, {FixtureID: 1}}}
	_, h := newTestServer(t, history)

	rec := do(t, h, http.MethodGet, "/api/v1/reports?limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Reports []struct {
			FixtureID int64 `json:"fixture_id"`
		} `json:"reports"`
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, int64(3), body.Reports[0].FixtureID)
	assert.Equal(t, 2, history.limit)

	do(t, h, http.MethodGet, "/api/v1/reports?limit=5000", nil)
	assert.Equal(t, DefaultReports, history.limit)

	history.err = errors.New("db gone")
	assert.Equal(t, http.StatusInternalServerError, do(t, h, http.MethodGet, "/api/v1/reports", nil).Code)
}

func TestBestEndpoint(t *testing.T) {
	mk := func(id int64, value, conf float64) report.Report {
		p := markets.Prediction{Bet: bet.Bet{Market: bet.MarketBTTS, Direction: bet.Yes}, Confidence: conf}
		return report.Report{
			FixtureID: id,
			Home:      report.Team{Name: "H"},
			Away:      report.Team{Name: "A"},
			Board:     ranking.Board{Main: []ranking.Pick{{Prediction: p, Value: value}}},
		}
	}
	history := &fakeHistory{reports: []report.Report{mk(1, 0.1, 6), mk(2, 0.3, 6), mk(3, 0.2, 7), {FixtureID: 4}}}
	_, h := newTestServer(t, history)

	rec := do(t, h, http.MethodGet, "/api/v1/best?n=2&hours=6", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Picks []ranking.Entry `json:"picks"`
		Count int             `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, 2, body.Count)
	assert.Equal(t, int64(2), body.Picks[0].FixtureID)
	assert.Equal(t, int64(3), body.Picks[1].FixtureID)
	assert.Equal(t, time.Date(2026, 5, 10, 6, 0, 0, 0, time.UTC), history.since.UTC())
}

func TestCORSPreflight(t *testing.T) {
	_, h := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/analyze", nil)
	req.Header.Set("Origin", "https://dashboard.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
