package youtube

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/anatolykoptev/go_ytearn/internal/engine"
)

// Data API v3 endpoints used by the pipeline.
const (
	EndpointChannels      = "channels"
	EndpointSearch        = "search"
	EndpointPlaylistItems = "playlistItems"
	EndpointVideos        = "videos"
)

const (
	DefaultAPIBase = "https://www.googleapis.com/youtube/v3"
	UserAgent      = "GoYTEarn/1.0"
	maxBodyBytes   = 4 * 1024 * 1024
	errBodyBytes   = 512
)

// Provider is the read-only upstream the pipeline queries. Lookup returns the raw JSON body
// of endpoint called with params, or an *engine.Error of kind upstream_unavailable.
type Provider interface {
	Lookup(ctx context.Context, endpoint string, params url.Values) ([]byte, error)
}

// DataAPI is the HTTP Provider for YouTube Data API v3. Every call passes through Gate.
// No retries: a failed call fails the request that made it.
type DataAPI struct {
	BaseURL string
	Key     string
	Client  *http.Client
	Gate    *engine.Gate
}

// NewDataAPI builds a DataAPI. Empty base falls back to DefaultAPIBase, nil client
// to engine.NewAPIClient, nil gate to one with DefaultMinInterval.
func NewDataAPI(base, key string, c *http.Client, g *engine.Gate) *DataAPI {
	if base == "" {
		base = DefaultAPIBase
	}
	if c == nil {
		c = engine.NewAPIClient(engine.DefaultTimeout)
	}
	if g == nil {
		g = engine.NewGate(engine.DefaultMinInterval)
	}
	return &DataAPI{BaseURL: strings.TrimRight(base, "/"), Key: key, Client: c, Gate: g}
}

// Lookup implements Provider.
func (d *DataAPI) Lookup(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	op := endpoint + ".list"
	if err := d.Gate.WaitIfNeeded(ctx); err != nil {
		return nil, engine.Fail(engine.KindUpstreamUnavailable, op, err)
	}

	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	if d.Key != "" {
		q.Set("key", d.Key)
	}
	apiURL := d.BaseURL + "/" + endpoint + "?" + q.Encode()

	engine.IncrUpstreamCall()
	body, err := d.get(ctx, apiURL)
	if err != nil {
		engine.IncrUpstreamError()
		slog.Warn("youtube data API call failed", slog.String("endpoint", endpoint), slog.Any("error", err))
		return nil, engine.Fail(engine.KindUpstreamUnavailable, op, err)
	}
	return body, nil
}

func (d *DataAPI) get(ctx context.Context, apiURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube data API: %w", redactKey(err, d.Key))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := engine.Truncate(strings.TrimSpace(string(body)), errBodyBytes)
		return nil, &engine.HTTPStatusError{StatusCode: resp.StatusCode, Body: msg}
	}
	if err != nil {
		return nil, fmt.Errorf("read youtube data API response: %w", err)
	}
	return body, nil
}

// redactKey keeps the API key out of *url.Error messages that end up in logs and results.
func redactKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(err.Error(), key, "REDACTED"))
}
