package alerts

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"football-betting-engine/internal/ranking"
)

// staleAfter is the minimum time an alert record is kept before cleanup.
// Records inside the cooldown are always kept.
const staleAfter = time.Hour

// Notifier handles alert notifications
type Notifier struct {
	mu         sync.Mutex
	lastAlerts map[string]time.Time // Dedupe alerts
	cooldown   time.Duration        // Minimum time between same alerts
	minConf    float64
	logger     *slog.Logger
}

// NewNotifier creates a notifier that alerts picks at or above minConfidence.
func NewNotifier(minConfidence float64, cooldown time.Duration) *Notifier {
	return &Notifier{
		lastAlerts: make(map[string]time.Time),
		cooldown:   cooldown,
		minConf:    minConfidence,
		logger:     slog.Default(),
	}
}

// checkCooldown reports whether key was alerted within the cooldown, and
// records the alert otherwise.
func (n *Notifier) checkCooldown(key string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if lastTime, ok := n.lastAlerts[key]; ok && time.Since(lastTime) < n.cooldown {
		return true
	}
	n.lastAlerts[key] = time.Now()
	return false
}

// AlertPick logs a high-confidence pick once per cooldown. It returns true
// when an alert was emitted.
func (n *Notifier) AlertPick(e ranking.Entry) bool {
	if e.Pick.Confidence < n.minConf {
		return false
	}
	key := fmt.Sprintf("%d-%s", e.FixtureID, e.Pick.Bet.Key())
	if n.checkCooldown(key) {
		return false
	}

	attrs := []any{
		"fixture", e.FixtureID,
		"match", fmt.Sprintf("%s x %s", e.Home, e.Away),
		"bet", e.Pick.Bet.Key(),
		"label", e.Pick.Label,
		"confidence", e.Pick.Confidence,
		"probability", e.Pick.Probability,
	}
	if e.Pick.Tactical {
		attrs = append(attrs, "tactical", true)
	} else {
		attrs = append(attrs, "odd", e.Pick.Odd, "value", e.Pick.Value, "rating", e.Pick.Rating)
	}
	n.logger.Info("High confidence pick", attrs...)
	return true
}

// CleanupOldAlerts removes stale alert records
func (n *Notifier) CleanupOldAlerts() {
	n.mu.Lock()
	defer n.mu.Unlock()
	cutoff := time.Now().Add(-max(staleAfter, n.cooldown))
	for key, t := range n.lastAlerts {
		if t.Before(cutoff) {
			delete(n.lastAlerts, key)
		}
	}
}
