// Package estimate converts lifetime channel statistics into a rough monthly ad-revenue range.
//
// The numbers are heuristics, not a forecast: both average models are crude proxies
// for "monthly views" and are kept side by side so callers can compare them.
package estimate

import (
	"fmt"
	"math"
	"strings"

	"github.com/anatolykoptev/go_ytearn/internal/engine"
)

// Model selects how lifetime statistics are turned into monthly views.
type Model string

const (
	// SubscriberRatio: avg views per subscriber times subscribers. With subscribers > 0 this
	// is just total views; with none it is 0. Has no daily unit.
	SubscriberRatio Model = "subscriber_ratio"

	// PerVideoAverage: avg views per video times 30. Treating one video as one day's output
	// is a known approximation, not a claim about upload cadence.
	PerVideoAverage Model = "per_video_average"
)

// DefaultModel is used when the caller names none.
const DefaultModel = SubscriberRatio

const daysPerMonth = 30

// ParseModel accepts the model names case-insensitively; blank means DefaultModel.
func ParseModel(s string) (Model, error) {
	switch Model(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultModel, nil
	case SubscriberRatio:
		return SubscriberRatio, nil
	case PerVideoAverage:
		return PerVideoAverage, nil
	}
	return "", engine.Fail(engine.KindInvalidModel, "model",
		fmt.Errorf("unknown model %q (want %s or %s)", s, SubscriberRatio, PerVideoAverage))
}

// Range is a low/high monetary pair; Low == High when a single CPM was used.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Mid is the midpoint of the range.
func (r Range) Mid() float64 { return (r.Low + r.High) / 2 }

// Result is an earnings estimate at full precision. Use Rounded for display.
type Result struct {
	Model            Model    `json:"model"`
	AvgViews         float64  `json:"avg_views"` // per subscriber or per video, by model
	MonthlyViews     float64  `json:"monthly_views"`
	DailyViews       *float64 `json:"daily_views,omitempty"` // per-video model only
	MonetizedPercent float64  `json:"monetized_percent"`
	MonetizedViews   float64  `json:"monetized_views"`
	CPM              CPM      `json:"cpm"`
	Single           bool     `json:"single"`
	Monthly          Range    `json:"monthly"`
	DailyEarnings    *Range   `json:"daily_earnings,omitempty"`
	Yearly           float64  `json:"yearly"`
}

// MonthlyViews applies model to stats. Zero subscribers (or zero videos) yield 0.
func MonthlyViews(stats engine.ChannelStats, model Model) (avg, monthly float64) {
	views := float64(stats.ViewCount)
	switch model {
	case PerVideoAverage:
		if stats.VideoCount <= 0 {
			return 0, 0
		}
		avg = views / float64(stats.VideoCount)
		return avg, avg * daysPerMonth
	default:
		if stats.SubscriberCount <= 0 {
			return 0, 0
		}
		subs := float64(stats.SubscriberCount)
		avg = views / subs
		return avg, subs * avg
	}
}

// ValidatePercent checks monetizedPercent is a number in [0,100].
func ValidatePercent(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 100 {
		return engine.Fail(engine.KindInvalidMonetizationPercent, "monetized_percent",
			fmt.Errorf("must be between 0 and 100, got %v", p))
	}
	return nil
}

// Estimate computes monthly, daily (per-video model) and yearly earnings.
// Yearly is the monthly midpoint (or single value) times 12, at full precision.
func Estimate(stats engine.ChannelStats, cpm CPM, monetizedPercent float64, model Model) (Result, error) {
	if err := ValidatePercent(monetizedPercent); err != nil {
		return Result{}, err
	}
	if err := cpm.Validate(); err != nil {
		return Result{}, err
	}
	if model != SubscriberRatio && model != PerVideoAverage {
		return Result{}, engine.Fail(engine.KindInvalidModel, "model", fmt.Errorf("unknown model %q", model))
	}

	avg, monthlyViews := MonthlyViews(stats, model)
	monetized := monthlyViews * (monetizedPercent / 100)
	at := func(rate float64) float64 { return monetized / 1000 * rate }

	res := Result{
		Model:            model,
		AvgViews:         avg,
		MonthlyViews:     monthlyViews,
		MonetizedPercent: monetizedPercent,
		MonetizedViews:   monetized,
		CPM:              cpm,
		Single:           cpm.Single(),
		Monthly:          Range{Low: at(cpm.Low), High: at(cpm.High)},
	}
	res.Yearly = res.Monthly.Mid() * 12
	if res.Single {
		res.Yearly = res.Monthly.Low * 12
	}

	if model == PerVideoAverage {
		daily := monthlyViews / daysPerMonth
		res.DailyViews = &daily
		res.DailyEarnings = &Range{Low: res.Monthly.Low / daysPerMonth, High: res.Monthly.High / daysPerMonth}
	}
	return res, nil
}

// Rounded returns a copy with every monetary and view figure rounded to 2 decimals.
func (r Result) Rounded() Result {
	out := r
	out.AvgViews = engine.Round2(r.AvgViews)
	out.MonthlyViews = engine.Round2(r.MonthlyViews)
	out.MonetizedViews = engine.Round2(r.MonetizedViews)
	out.Monthly = Range{Low: engine.Round2(r.Monthly.Low), High: engine.Round2(r.Monthly.High)}
	out.Yearly = engine.Round2(r.Yearly)
	if r.DailyViews != nil {
		d := engine.Round2(*r.DailyViews)
		out.DailyViews = &d
	}
	if r.DailyEarnings != nil {
		out.DailyEarnings = &Range{Low: engine.Round2(r.DailyEarnings.Low), High: engine.Round2(r.DailyEarnings.High)}
	}
	return out
}
