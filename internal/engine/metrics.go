package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// reg tracks operational counters across the engine.
var reg struct {
	upstreamCalls      atomic.Int64
	upstreamErrors     atomic.Int64
	gateWaits          atomic.Int64
	estimations        atomic.Int64
	estimationFailures atomic.Int64
	videosDropped      atomic.Int64
}

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"upstream_calls":      reg.upstreamCalls.Load(),
		"upstream_errors":     reg.upstreamErrors.Load(),
		"gate_waits":          reg.gateWaits.Load(),
		"estimations":         reg.estimations.Load(),
		"estimation_failures": reg.estimationFailures.Load(),
		"videos_dropped":      reg.videosDropped.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"upstream_calls", "upstream_errors", "gate_waits",
		"estimations", "estimation_failures",
		"videos_dropped",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for youtube/ and earnings/ sub-packages.
func IncrUpstreamCall()      { reg.upstreamCalls.Add(1) }
func IncrUpstreamError()     { reg.upstreamErrors.Add(1) }
func IncrEstimation()        { reg.estimations.Add(1) }
func IncrEstimationFailure() { reg.estimationFailures.Add(1) }
func AddVideosDropped(n int) { reg.videosDropped.Add(int64(n)) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
