package earnserver

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_ytearn/internal/engine"
	"github.com/anatolykoptev/go_ytearn/internal/engine/earnings"
	"github.com/anatolykoptev/go_ytearn/internal/engine/estimate"
	"github.com/anatolykoptev/go_ytearn/internal/engine/youtube"
	"github.com/anatolykoptev/go_ytearn/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers the channel tools on the given MCP server:
// channel_earnings, channel_resolve, cpm_categories.
func RegisterTools(server *mcp.Server, yt *youtube.Client) {
	registerChannelEarnings(server, yt)
	registerChannelResolve(server, yt)
	registerCPMCategories(server)
}

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 3

func registerChannelEarnings(server *mcp.Server, yt *youtube.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "channel_earnings",
		Description: "Estimate monthly and yearly ad revenue of a YouTube channel from its public statistics. Accepts a channel URL (/channel/, /@handle, /c/, /user/), a bare @handle, or a video link. CPM comes from a custom value or a content category (Gaming, Education, Finance, Entertainment, Tech). Two average models: subscriber_ratio (default) and per_video_average. Also returns the channel's top videos by views. Figures are rough heuristics, not real revenue.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.ChannelEarningsInput) (*mcp.CallToolResult, earnings.Result, error) {
		req := toolutil.EarningsRequest(input)
		slog.Info("channel_earnings", slog.String("input", req.ChannelURL), slog.String("model", req.Model))
		return nil, earnings.Run(ctx, yt, req), nil
	})
}

func registerChannelResolve(server *mcp.Server, yt *youtube.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "channel_resolve",
		Description: "Resolve a YouTube channel URL, @handle, legacy username, /c/ vanity URL or video link to the canonical channel ID (UC...). Uses at most one YouTube Data API call.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.ChannelResolveInput) (*mcp.CallToolResult, engine.ChannelResolveOutput, error) {
		out := engine.ChannelResolveOutput{Input: input.ChannelURL}
		id, channelID, err := earnings.ResolveChannel(ctx, yt, input.ChannelURL)
		out.Kind = string(id.Kind)
		out.Value = id.Value
		if err != nil {
			out.Error = earnings.Failure(err).Error
			return nil, out, nil
		}
		out.ChannelID = channelID
		return nil, out, nil
	})
}

type cpmCategoriesInput struct{}

func registerCPMCategories(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "cpm_categories",
		Description: "List the content categories and their assumed CPM ranges (USD per 1000 monetized views) used by channel_earnings when no custom CPM is given.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ cpmCategoriesInput) (*mcp.CallToolResult, engine.CPMCategoriesOutput, error) {
		return nil, engine.CPMCategoriesOutput{
			Categories: estimate.Categories(),
			Default:    estimate.DefaultCategory,
		}, nil
	})
}
