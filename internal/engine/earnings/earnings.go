// Package earnings runs the channel earnings pipeline:
// resolve → canonical ID → statistics → estimate → (optional) top videos.
package earnings

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_ytearn/internal/engine"
	"github.com/anatolykoptev/go_ytearn/internal/engine/estimate"
	"github.com/anatolykoptev/go_ytearn/internal/engine/youtube"
)

// Request is one estimation. CPM is the raw override text ("" = use Category).
type Request struct {
	ChannelURL       string
	CPM              string
	Category         string
	MonetizedPercent float64
	Model            string
	TopVideos        int // 0 skips ranking
}

// Result is what callers get back; exactly one of Error and Data is set.
type Result struct {
	OK    bool              `json:"ok"`
	Error *engine.ErrorInfo `json:"error,omitempty"`
	Data  *Data             `json:"data,omitempty"`
}

// Data is a successful estimation.
type Data struct {
	Input      string                  `json:"input"`
	Identifier youtube.Identifier      `json:"identifier"`
	Channel    engine.ChannelStats     `json:"channel"`
	Estimate   estimate.Result         `json:"estimate"`
	Display    Display                 `json:"display"`
	TopVideos  []engine.VideoRankEntry `json:"top_videos,omitempty"`
}

// Display holds human-formatted figures ("1,234.50").
type Display struct {
	Subscribers string `json:"subscribers"`
	TotalViews  string `json:"total_views"`
	Videos      string `json:"videos"`
	MonthlyLow  string `json:"monthly_low"`
	MonthlyHigh string `json:"monthly_high"`
	Yearly      string `json:"yearly"`
	CPMNote     string `json:"cpm_note"`
}

// Run executes the pipeline. Input, CPM, percent and model are all validated before the
// first upstream call. Any failure ends the run; there are no retries.
func Run(ctx context.Context, c *youtube.Client, req Request) Result {
	var data *Data
	err := engine.TrackOperation(ctx, "earnings:"+req.ChannelURL, func(ctx context.Context) error {
		var err error
		data, err = run(ctx, c, req)
		return err
	})
	if err != nil {
		engine.IncrEstimationFailure()
		slog.Info("earnings: estimation failed",
			slog.String("input", req.ChannelURL), slog.String("kind", string(engine.KindOf(err))), slog.Any("error", err))
		return Failure(err)
	}
	engine.IncrEstimation()
	return Result{OK: true, Data: data}
}

// Failure converts err into a failed Result.
func Failure(err error) Result {
	info := &engine.ErrorInfo{Kind: engine.KindOf(err), Message: err.Error()}
	var e *engine.Error
	if errors.As(err, &e) {
		info.Message = message(e)
	}
	return Result{OK: false, Error: info}
}

func run(ctx context.Context, c *youtube.Client, req Request) (*Data, error) {
	id, err := youtube.Resolve(req.ChannelURL)
	if err != nil {
		return nil, err
	}
	cpm, err := estimate.Choose(req.CPM, req.Category)
	if err != nil {
		return nil, err
	}
	if err := estimate.ValidatePercent(req.MonetizedPercent); err != nil {
		return nil, err
	}
	model, err := estimate.ParseModel(req.Model)
	if err != nil {
		return nil, err
	}

	channelID, err := c.CanonicalID(ctx, id)
	if err != nil {
		return nil, err
	}
	stats, err := c.FetchStats(ctx, channelID)
	if err != nil {
		return nil, err
	}
	est, err := estimate.Estimate(stats, cpm, req.MonetizedPercent, model)
	if err != nil {
		return nil, err
	}

	var top []engine.VideoRankEntry
	if req.TopVideos > 0 {
		top, err = c.TopVideos(ctx, stats, req.TopVideos)
		if err != nil {
			return nil, err
		}
	}

	if n := engine.Cfg.DescriptionMaxChars; n > 0 {
		stats.Description = engine.TruncateAtWord(stats.Description, n)
	}

	slog.Debug("earnings: estimated",
		slog.String("channel", stats.ID), slog.String("model", string(model)),
		slog.Float64("monthly_low", est.Monthly.Low), slog.Float64("monthly_high", est.Monthly.High))

	return &Data{
		Input:      req.ChannelURL,
		Identifier: id,
		Channel:    stats,
		Estimate:   est.Rounded(),
		Display:    display(stats, est),
		TopVideos:  top,
	}, nil
}

func display(stats engine.ChannelStats, est estimate.Result) Display {
	return Display{
		Subscribers: engine.FormatCount(stats.SubscriberCount),
		TotalViews:  engine.FormatCount(stats.ViewCount),
		Videos:      engine.FormatCount(stats.VideoCount),
		MonthlyLow:  engine.FormatMoney(est.Monthly.Low),
		MonthlyHigh: engine.FormatMoney(est.Monthly.High),
		Yearly:      engine.FormatMoney(est.Yearly),
		CPMNote:     est.CPM.Note,
	}
}

var messages = map[engine.ErrorKind]string{
	engine.KindEmptyInput:                 "Enter a YouTube channel URL or @handle.",
	engine.KindUnrecognizedFormat:         "Invalid YouTube URL.",
	engine.KindChannelNotFound:            "Channel not found.",
	engine.KindUpstreamUnavailable:        "YouTube Data API is unavailable, try again later.",
	engine.KindInvalidCPM:                 "CPM must be a positive number.",
	engine.KindInvalidMonetizationPercent: "Monetized percentage must be between 0 and 100.",
	engine.KindInvalidModel:               "Unknown average model.",
}

// detailed kinds come from caller input only, so their cause is safe to show.
var detailed = map[engine.ErrorKind]bool{
	engine.KindUnrecognizedFormat:         true,
	engine.KindInvalidCPM:                 true,
	engine.KindInvalidMonetizationPercent: true,
	engine.KindInvalidModel:               true,
}

func message(e *engine.Error) string {
	m, ok := messages[e.Kind]
	if !ok {
		return e.Error()
	}
	if detailed[e.Kind] && e.Err != nil {
		m = strings.TrimSuffix(m, ".") + ": " + e.Err.Error()
	}
	return m
}
