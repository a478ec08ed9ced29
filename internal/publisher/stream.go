// Package publisher pushes analysis reports to Redis streams.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"football-betting-engine/internal/report"
)

// StreamClient is the subset of the Redis client the publisher uses.
type StreamClient interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// StreamPublisher publishes reports to Redis streams
type StreamPublisher struct {
	client  StreamClient
	stream  string
	limiter *rate.Limiter
}

// NewStreamPublisher creates a publisher writing to stream at most
// ratePerSec reports per second.
func NewStreamPublisher(client StreamClient, stream string, ratePerSec float64) *StreamPublisher {
	burst := int(ratePerSec)
	if burst < 1 {
		burst = 1
	}
	return &StreamPublisher{
		client:  client,
		stream:  stream,
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), burst),
	}
}

// LeagueStream is the per-league stream key.
func (p *StreamPublisher) LeagueStream(leagueID int) string {
	return fmt.Sprintf("%s.%d", p.stream, leagueID)
}

// Publish writes a report to the main stream and its league stream.
func (p *StreamPublisher) Publish(ctx context.Context, r report.Report) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for publish slot: %w", err)
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	values := map[string]interface{}{
		"data":       string(data),
		"report_id":  r.ID,
		"fixture_id": r.FixtureID,
		"scenario":   string(r.Scenario.Label),
	}
	if best, ok := r.Board.Best(); ok {
		values["best_bet"] = best.Bet.Key()
		values["best_confidence"] = best.Confidence
	}

	for _, stream := range []string{p.stream, p.LeagueStream(r.LeagueID)} {
		if err := p.client.XAdd(ctx, &redis.XAddArgs{Stream: stream, Values: values}).Err(); err != nil {
			return fmt.Errorf("publishing to %s: %w", stream, err)
		}
	}
	return nil
}
