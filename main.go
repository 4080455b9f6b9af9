// go_ytearn: YouTube channel earnings estimator MCP server.
//
// Exposes three MCP tools: channel_earnings, channel_resolve, cpm_categories.
// Runs as HTTP MCP server or stdio transport.
//
// Every YouTube Data API call goes through one process-wide gate (YOUTUBE_MIN_INTERVAL).
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_ytearn/internal/earnserver"
	"github.com/anatolykoptev/go_ytearn/internal/engine"
	"github.com/anatolykoptev/go_ytearn/internal/engine/estimate"
	"github.com/anatolykoptev/go_ytearn/internal/engine/youtube"
	"github.com/anatolykoptev/go_ytearn/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	yt := initEngine()

	slog.Info("starting go_ytearn",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_ytearn",
		Version: version,
	}, nil)

	earnserver.RegisterTools(server, yt)
	slog.Info("tools registered", slog.Int("count", earnserver.ToolCount))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_ytearn",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() *youtube.Client {
	c := engine.Config{
		YouTubeAPIKey:       env.Str("YOUTUBE_API_KEY", ""),
		YouTubeAPIBase:      env.Str("YOUTUBE_API_BASE", youtube.DefaultAPIBase),
		MinCallInterval:     env.Duration("YOUTUBE_MIN_INTERVAL", engine.DefaultMinInterval),
		PlaylistPageSize:    env.Int("PLAYLIST_PAGE_SIZE", 50),
		TopVideos:           env.Int("TOP_VIDEOS", 5),
		DefaultModel:        env.Str("DEFAULT_MODEL", string(estimate.DefaultModel)),
		DescriptionMaxChars: env.Int("DESCRIPTION_MAX_CHARS", 300),
		HTTPClient:          engine.NewAPIClient(env.Duration("YOUTUBE_TIMEOUT", engine.DefaultTimeout)),
	}
	monetizedPct := env.Float("DEFAULT_MONETIZED_PCT", toolutil.DefaultMonetizedPct)
	if err := estimate.ValidatePercent(monetizedPct); err != nil {
		slog.Warn("invalid DEFAULT_MONETIZED_PCT, using default", slog.Float64("pct", monetizedPct), slog.Any("error", err))
		monetizedPct = toolutil.DefaultMonetizedPct
	}
	c.DefaultMonetizedPct = &monetizedPct

	if c.YouTubeAPIKey == "" {
		slog.Error("YOUTUBE_API_KEY is required")
		os.Exit(1)
	}
	if _, err := estimate.ParseModel(c.DefaultModel); err != nil {
		slog.Warn("invalid DEFAULT_MODEL, using default", slog.String("model", c.DefaultModel), slog.Any("error", err))
		c.DefaultModel = string(estimate.DefaultModel)
	}

	engine.Init(c)

	gate := engine.NewGate(c.MinCallInterval)
	api := youtube.NewDataAPI(c.YouTubeAPIBase, c.YouTubeAPIKey, c.HTTPClient, gate)
	slog.Info("youtube data API client initialized",
		slog.String("base", api.BaseURL),
		slog.Duration("min_interval", gate.Interval()),
	)
	return youtube.NewClient(api, c.PlaylistPageSize)
}
