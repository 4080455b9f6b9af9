package youtube

import (
	"context"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_ytearn/internal/engine"
)

const defaultPageSize = 50

// UploadsPlaylistID returns the uploads playlist of a channel. The Data API reports it in
// contentDetails; when absent it is derived from the channel ID (UC... -> UU...).
func UploadsPlaylistID(ch engine.ChannelStats) string {
	if ch.UploadsPlaylistID != "" {
		return ch.UploadsPlaylistID
	}
	if strings.HasPrefix(ch.ID, "UC") {
		return "UU" + ch.ID[2:]
	}
	return ""
}

// TopVideos ranks the most recent page of a channel's uploads by view count.
// Two calls: playlistItems, then one batched videos lookup. Ties go to the newer upload.
// Videos missing from the batch (deleted, private) are dropped without error.
func (c *Client) TopVideos(ctx context.Context, ch engine.ChannelStats, n int) ([]engine.VideoRankEntry, error) {
	if n <= 0 {
		return nil, nil
	}
	playlist := UploadsPlaylistID(ch)
	if playlist == "" {
		return nil, nil
	}

	ids, err := c.playlistVideoIDs(ctx, playlist)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []engine.VideoRankEntry{}, nil
	}

	const op = "videos.list"
	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("id", strings.Join(ids, ","))
	body, err := c.P.Lookup(ctx, EndpointVideos, params)
	if err != nil {
		return nil, err
	}
	resp, err := decode[apiVideosResp](op, body)
	if err != nil {
		return nil, err
	}

	return rankVideos(ids, resp.Items, n), nil
}

func (c *Client) playlistVideoIDs(ctx context.Context, playlist string) ([]string, error) {
	const op = "playlistItems.list"
	size := c.PageSize
	if size <= 0 || size > defaultPageSize {
		size = defaultPageSize
	}
	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("playlistId", playlist)
	params.Set("maxResults", strconv.Itoa(size))
	body, err := c.P.Lookup(ctx, EndpointPlaylistItems, params)
	if err != nil {
		return nil, err
	}
	resp, err := decode[apiPlaylistItemsResp](op, body)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(resp.Items))
	ids := make([]string, 0, len(resp.Items))
	for _, it := range resp.Items {
		id := it.ContentDetails.VideoID
		if id == "" {
			id = it.Snippet.ResourceID.VideoID
		}
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// rankVideos keeps only videos present in the statistics batch, orders them by views desc,
// then publish time desc, then ID, and truncates to n.
func rankVideos(requested []string, items []apiVideo, n int) []engine.VideoRankEntry {
	want := make(map[string]bool, len(requested))
	for _, id := range requested {
		want[id] = true
	}

	entries := make([]engine.VideoRankEntry, 0, len(items))
	for _, v := range items {
		if v.ID == "" || !want[v.ID] {
			continue
		}
		delete(want, v.ID)
		entries = append(entries, engine.VideoRankEntry{
			ID:           v.ID,
			Title:        v.Snippet.Title,
			ThumbnailURL: v.Snippet.Thumbnails.medium(),
			ViewCount:    parseCount(v.Statistics.ViewCount),
			PublishedAt:  v.Snippet.PublishedAt,
			URL:          engine.WatchURL(v.ID),
		})
	}
	if dropped := len(want); dropped > 0 {
		engine.AddVideosDropped(dropped)
		slog.Debug("youtube: videos missing from statistics batch",
			slog.Int("dropped", dropped), slog.String("kind", string(engine.KindPartialDataDropped)))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.ViewCount != b.ViewCount {
			return a.ViewCount > b.ViewCount
		}
		ta, tb := parseTime(a.PublishedAt), parseTime(b.PublishedAt)
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return a.ID < b.ID
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
