package youtube

import (
	"context"
	"fmt"
	"net/url"

	"github.com/anatolykoptev/go_ytearn/internal/engine"
)

// Client runs the identity, statistics and ranking stages against a Provider.
// It holds no per-request state and is safe for concurrent use.
type Client struct {
	P        Provider
	PageSize int // playlistItems maxResults; <= 0 means 50
}

// NewClient wraps p.
func NewClient(p Provider, pageSize int) *Client {
	return &Client{P: p, PageSize: pageSize}
}

// CanonicalID turns a resolved identifier into a canonical channel ID.
// A channel ID already in canonical shape is returned without any call; every other
// form costs exactly one lookup. An empty result is channel_not_found.
func (c *Client) CanonicalID(ctx context.Context, id Identifier) (string, error) {
	if id.Kind == KindChannelID && IsCanonicalID(id.Value) {
		return id.Value, nil
	}

	params := url.Values{}
	switch id.Kind {
	case KindChannelID:
		params.Set("part", "id")
		params.Set("id", id.Value)
		return c.channelIDFrom(ctx, params)
	case KindHandle:
		params.Set("part", "id")
		params.Set("forHandle", "@"+id.Value)
		return c.channelIDFrom(ctx, params)
	case KindUsername:
		params.Set("part", "id")
		params.Set("forUsername", id.Value)
		return c.channelIDFrom(ctx, params)
	case KindCustom:
		return c.searchChannel(ctx, id.Value)
	case KindVideoID:
		return c.videoChannel(ctx, id.Value)
	default:
		return "", engine.Fail(engine.KindUnrecognizedFormat, "identity", fmt.Errorf("kind %q", id.Kind))
	}
}

func (c *Client) channelIDFrom(ctx context.Context, params url.Values) (string, error) {
	const op = "channels.list"
	body, err := c.P.Lookup(ctx, EndpointChannels, params)
	if err != nil {
		return "", err
	}
	resp, err := decode[apiChannelResp](op, body)
	if err != nil {
		return "", err
	}
	if len(resp.Items) == 0 || resp.Items[0].ID == "" {
		return "", engine.Fail(engine.KindChannelNotFound, op, nil)
	}
	return resp.Items[0].ID, nil
}

// searchChannel is the fallback for /c/ vanity names, which have no direct lookup parameter.
func (c *Client) searchChannel(ctx context.Context, name string) (string, error) {
	const op = "search.list"
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "channel")
	params.Set("maxResults", "1")
	params.Set("q", name)
	body, err := c.P.Lookup(ctx, EndpointSearch, params)
	if err != nil {
		return "", err
	}
	resp, err := decode[apiSearchResp](op, body)
	if err != nil {
		return "", err
	}
	for _, it := range resp.Items {
		if it.ID.ChannelID != "" {
			return it.ID.ChannelID, nil
		}
		if it.Snippet.ChannelID != "" {
			return it.Snippet.ChannelID, nil
		}
	}
	return "", engine.Fail(engine.KindChannelNotFound, op, nil)
}

// videoChannel maps a video link to its uploader.
func (c *Client) videoChannel(ctx context.Context, videoID string) (string, error) {
	const op = "videos.list"
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("id", videoID)
	body, err := c.P.Lookup(ctx, EndpointVideos, params)
	if err != nil {
		return "", err
	}
	resp, err := decode[apiVideosResp](op, body)
	if err != nil {
		return "", err
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet.ChannelID == "" {
		return "", engine.Fail(engine.KindChannelNotFound, op, nil)
	}
	return resp.Items[0].Snippet.ChannelID, nil
}

// FetchStats retrieves snippet, statistics and contentDetails for one canonical channel ID
// in a single call. Missing numbers become 0, missing strings "", missing country "Unknown".
func (c *Client) FetchStats(ctx context.Context, channelID string) (engine.ChannelStats, error) {
	const op = "channels.list"
	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("id", channelID)
	body, err := c.P.Lookup(ctx, EndpointChannels, params)
	if err != nil {
		return engine.ChannelStats{}, err
	}
	resp, err := decode[apiChannelResp](op, body)
	if err != nil {
		return engine.ChannelStats{}, err
	}
	if len(resp.Items) == 0 {
		return engine.ChannelStats{}, engine.Fail(engine.KindChannelNotFound, op, nil)
	}

	ch := resp.Items[0]
	id := ch.ID
	if id == "" {
		id = channelID
	}
	country := ch.Snippet.Country
	if country == "" {
		country = "Unknown"
	}
	return engine.ChannelStats{
		ID:                    id,
		Title:                 ch.Snippet.Title,
		Description:           ch.Snippet.Description,
		Handle:                ch.Snippet.CustomURL,
		Country:               country,
		PublishedAt:           ch.Snippet.PublishedAt,
		ThumbnailURL:          ch.Snippet.Thumbnails.best(),
		SubscriberCount:       parseCount(ch.Statistics.SubscriberCount),
		ViewCount:             parseCount(ch.Statistics.ViewCount),
		VideoCount:            parseCount(ch.Statistics.VideoCount),
		HiddenSubscriberCount: ch.Statistics.HiddenSubscriberCount,
		UploadsPlaylistID:     ch.ContentDetails.RelatedPlaylists.Uploads,
		URL:                   engine.ChannelURL(id),
	}, nil
}
