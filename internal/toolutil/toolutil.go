// Package toolutil provides shared helper functions for go_ytearn MCP tools:
// defaulting of optional tool inputs from engine config.
package toolutil

import (
	"strings"

	"github.com/anatolykoptev/go_ytearn/internal/engine"
	"github.com/anatolykoptev/go_ytearn/internal/engine/earnings"
)

// Fallbacks used when engine config leaves a default unset.
const (
	DefaultMonetizedPct = 80.0
	DefaultTopVideos    = 5
)

// NormModel normalises a model field: empty string → configured default.
func NormModel(model string) string {
	model = strings.TrimSpace(model)
	if model == "" {
		return engine.Cfg.DefaultModel
	}
	return model
}

// MonetizedPct returns *p, or the configured default when p is nil.
// Out-of-range values pass through; the pipeline rejects them.
func MonetizedPct(p *float64) float64 {
	if p != nil {
		return *p
	}
	if d := engine.Cfg.DefaultMonetizedPct; d != nil {
		return *d
	}
	return DefaultMonetizedPct
}

// TopVideos returns *n clamped to >= 0, or the configured default when n is nil.
func TopVideos(n *int) int {
	if n != nil {
		return max(*n, 0)
	}
	if engine.Cfg.TopVideos > 0 {
		return engine.Cfg.TopVideos
	}
	return DefaultTopVideos
}

// EarningsRequest maps tool input onto a pipeline request.
func EarningsRequest(in engine.ChannelEarningsInput) earnings.Request {
	return earnings.Request{
		ChannelURL:       in.ChannelURL,
		CPM:              in.CPM,
		Category:         in.Category,
		MonetizedPercent: MonetizedPct(in.MonetizedPercent),
		Model:            NormModel(in.Model),
		TopVideos:        TopVideos(in.TopVideos),
	}
}
