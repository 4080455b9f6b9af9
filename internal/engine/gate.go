package engine

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// DefaultMinInterval is the spacing between Data API calls when none is configured.
const DefaultMinInterval = time.Second

// Gate spaces outbound calls so that at least Interval passes between two of them.
// One Gate is shared by every pipeline in the process; it only serializes call timing.
type Gate struct {
	interval time.Duration
	lim      *rate.Limiter
}

// NewGate returns a gate enforcing interval between calls.
// A zero or negative interval disables spacing.
func NewGate(interval time.Duration) *Gate {
	if interval <= 0 {
		return &Gate{lim: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Gate{interval: interval, lim: rate.NewLimiter(rate.Every(interval), 1)}
}

// Interval reports the configured minimum spacing.
func (g *Gate) Interval() time.Duration { return g.interval }

// WaitIfNeeded blocks until the minimum interval since the previous call has elapsed,
// then records this call. It returns early only if ctx is done.
func (g *Gate) WaitIfNeeded(ctx context.Context) error {
	r := g.lim.Reserve()
	if !r.OK() {
		return Fail(KindUpstreamUnavailable, "gate", rate.ErrLimitExceeded)
	}
	delay := r.Delay()
	if delay <= 0 {
		return nil
	}
	reg.gateWaits.Add(1)
	slog.Debug("gate: waiting before upstream call", slog.Duration("delay", delay))

	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	}
}
