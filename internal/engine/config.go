package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	YouTubeAPIKey       string
	YouTubeAPIBase      string
	MinCallInterval     time.Duration // spacing between outbound Data API calls
	PlaylistPageSize    int
	TopVideos           int
	DefaultMonetizedPct *float64 // nil means unset; 0 is a valid default
	DefaultModel        string
	DescriptionMaxChars int
	HTTPClient          *http.Client
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (youtube, earnings).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
