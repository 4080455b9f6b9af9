package youtube

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/anatolykoptev/go_ytearn/internal/engine"
)

// --- YouTube Data API v3 types ---
// Counts arrive as decimal strings; absent fields decode to "".

type apiThumbnail struct {
	URL string `json:"url"`
}

type apiThumbnails struct {
	Default *apiThumbnail `json:"default"`
	Medium  *apiThumbnail `json:"medium"`
	High    *apiThumbnail `json:"high"`
}

type apiChannelResp struct {
	Items []apiChannel `json:"items"`
}

type apiChannel struct {
	ID      string `json:"id"`
	Snippet struct {
		Title       string        `json:"title"`
		Description string        `json:"description"`
		CustomURL   string        `json:"customUrl"`
		PublishedAt string        `json:"publishedAt"`
		Country     string        `json:"country"`
		Thumbnails  apiThumbnails `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount             string `json:"viewCount"`
		SubscriberCount       string `json:"subscriberCount"`
		HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
		VideoCount            string `json:"videoCount"`
	} `json:"statistics"`
	ContentDetails struct {
		RelatedPlaylists struct {
			Uploads string `json:"uploads"`
		} `json:"relatedPlaylists"`
	} `json:"contentDetails"`
}

type apiSearchResp struct {
	Items []struct {
		ID struct {
			Kind      string `json:"kind"`
			ChannelID string `json:"channelId"`
		} `json:"id"`
		Snippet struct {
			ChannelID string `json:"channelId"`
		} `json:"snippet"`
	} `json:"items"`
}

type apiPlaylistItemsResp struct {
	Items []struct {
		Snippet struct {
			ResourceID struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
		ContentDetails struct {
			VideoID string `json:"videoId"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type apiVideosResp struct {
	Items []apiVideo `json:"items"`
}

type apiVideo struct {
	ID      string `json:"id"`
	Snippet struct {
		ChannelID   string        `json:"channelId"`
		Title       string        `json:"title"`
		PublishedAt string        `json:"publishedAt"`
		Thumbnails  apiThumbnails `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount string `json:"viewCount"`
	} `json:"statistics"`
}

func decode[T any](op string, body []byte) (T, error) {
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return out, engine.Fail(engine.KindUpstreamUnavailable, op, fmt.Errorf("decode: %w", err))
	}
	return out, nil
}

// parseCount reads a non-negative count. Missing or malformed values count as 0.
func parseCount(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// pick returns the first non-empty thumbnail URL in order of preference.
func (t apiThumbnails) pick(order ...*apiThumbnail) string {
	for _, th := range order {
		if th != nil && th.URL != "" {
			return th.URL
		}
	}
	return ""
}

func (t apiThumbnails) best() string   { return t.pick(t.High, t.Medium, t.Default) }
func (t apiThumbnails) medium() string { return t.pick(t.Medium, t.High, t.Default) }
