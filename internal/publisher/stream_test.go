package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"football-betting-engine/internal/bet"
	"football-betting-engine/internal/markets"
	"football-betting-engine/internal/ranking"
	"football-betting-engine/internal/report"
	"football-betting-engine/internal/scenario"
)

type fakeStream struct {
	mu   sync.Mutex
	adds []*redis.XAddArgs
	err  error
}

func (f *fakeStream) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adds = append(f.adds, a)
	return redis.NewStringResult("1-0", f.err)
}

func sampleReport() report.Report {
	over := markets.Prediction{Bet: bet.Bet{Market: bet.MarketGoals, Direction: bet.Over, Line: 2.5}, Confidence: 7.8}
	return report.Report{
		ID:        "abc",
		FixtureID: 77,
		LeagueID:  71,
		Scenario:  scenario.Result{Label: scenario.OpenHighScoring},
		Board:     ranking.Board{Main: []ranking.Pick{{Prediction: over, Value: 0.39}}},
	}
}

func TestPublishWritesBothStreams(t *testing.T) {
	fake := &fakeStream{}
	p := NewStreamPublisher(fake, "predictions.generated", 100)

	require.NoError(t, p.Publish(context.Background(), sampleReport()))
	require.Len(t, fake.adds, 2)

	assert.Equal(t, "predictions.generated", fake.adds[0].Stream)
	assert.Equal(t, "predictions.generated.71", fake.adds[1].Stream)

	values, ok := fake.adds[0].Values.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "abc", values["report_id"])
	assert.Equal(t, "goals:over:2.5", values["best_bet"])
	assert.Equal(t, string(scenario.OpenHighScoring), values["scenario"])

	var decoded report.Report
	require.NoError(t, json.Unmarshal([]byte(values["data"].(string)), &decoded))
	assert.Equal(t, int64(77), decoded.FixtureID)
}

func TestPublishWithoutPicks(t *testing.T) {
	fake := &fakeStream{}
	p := NewStreamPublisher(fake, "s", 100)

	r := sampleReport()
	r.Board = ranking.Board{}
	require.NoError(t, p.Publish(context.Background(), r))

	values := fake.adds[0].Values.(map[string]interface{})
	_, has := values["best_bet"]
	assert.False(t, has)
}

func TestPublishError(t *testing.T) {
	fake := &fakeStream{err: errors.New("connection refused")}
	p := NewStreamPublisher(fake, "s", 100)

	err := p.Publish(context.Background(), sampleReport())
	assert.ErrorContains(t, err, "publishing to s")
	assert.Len(t, fake.adds, 1, "a failed write stops before the league stream")
}

func TestPublishHonoursCancelledContext(t *testing.T) {
	fake := &fakeStream{}
	p := NewStreamPublisher(fake, "s", 0.001)

	// Drain the single burst token.
	require.NoError(t, p.Publish(context.Background(), sampleReport()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, p.Publish(ctx, sampleReport()))
	assert.Len(t, fake.adds, 2)
}
