package engine

// --- Tool inputs ---

type ChannelEarningsInput struct {
	ChannelURL       string   `json:"channel_url" jsonschema:"YouTube channel URL, @handle, or video link"`
	CPM              string   `json:"cpm,omitempty" jsonschema:"Custom CPM in USD per 1000 monetized views (overrides category)"`
	Category         string   `json:"category,omitempty" jsonschema:"Content category for CPM range: Gaming, Education, Finance, Entertainment, Tech (default: generic range)"`
	MonetizedPercent *float64 `json:"monetized_percent,omitempty" jsonschema:"Share of views carrying ads, 0-100 (default: 80)"`
	Model            string   `json:"model,omitempty" jsonschema:"Average model: subscriber_ratio (default) or per_video_average"`
	TopVideos        *int     `json:"top_videos,omitempty" jsonschema:"How many top videos to rank (0 disables, default: 5)"`
}

type ChannelResolveInput struct {
	ChannelURL string `json:"channel_url" jsonschema:"YouTube channel URL, @handle, or video link"`
}

// --- Tool outputs ---

type ChannelResolveOutput struct {
	Input     string     `json:"input"`
	Kind      string     `json:"kind,omitempty"`
	Value     string     `json:"value,omitempty"`
	ChannelID string     `json:"channel_id,omitempty"`
	Error     *ErrorInfo `json:"error,omitempty"`
}

type CPMCategory struct {
	Name string  `json:"name"`
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

type CPMCategoriesOutput struct {
	Categories []CPMCategory `json:"categories"`
	Default    CPMCategory   `json:"default"`
}

// ErrorInfo is the caller-facing shape of a typed failure.
type ErrorInfo struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// --- Domain value types ---

// ChannelStats is a snapshot of one channel, produced per lookup.
type ChannelStats struct {
	ID                    string `json:"id"`
	Title                 string `json:"title"`
	Description           string `json:"description"`
	Handle                string `json:"handle,omitempty"`
	Country               string `json:"country"`
	PublishedAt           string `json:"published_at,omitempty"` // RFC 3339
	ThumbnailURL          string `json:"thumbnail_url"`
	SubscriberCount       int64  `json:"subscriber_count"`
	ViewCount             int64  `json:"view_count"`
	VideoCount            int64  `json:"video_count"`
	HiddenSubscriberCount bool   `json:"hidden_subscriber_count,omitempty"`
	UploadsPlaylistID     string `json:"uploads_playlist_id,omitempty"`
	URL                   string `json:"url"`
}

// VideoRankEntry is one row of a channel's top-content ranking.
type VideoRankEntry struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
	ViewCount    int64  `json:"view_count"`
	PublishedAt  string `json:"published_at,omitempty"` // RFC 3339
	URL          string `json:"url"`
}

// WatchURL returns the public watch page for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// ChannelURL returns the public channel page for a canonical channel ID.
func ChannelURL(channelID string) string {
	return "https://www.youtube.com/channel/" + channelID
}
