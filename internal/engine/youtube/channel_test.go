package youtube

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/anatolykoptev/go_ytearn/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	endpoint string
	params   url.Values
}

// fakeProvider answers lookups from canned bodies keyed by endpoint.
type fakeProvider struct {
	bodies map[string]string
	errs   map[string]error
	calls  []call
}

func (f *fakeProvider) Lookup(_ context.Context, endpoint string, params url.Values) ([]byte, error) {
	f.calls = append(f.calls, call{endpoint: endpoint, params: params})
	if err := f.errs[endpoint]; err != nil {
		return nil, err
	}
	body, ok := f.bodies[endpoint]
	if !ok {
		return []byte(`{"items":[]}`), nil
	}
	return []byte(body), nil
}

const canonicalID = "UC_x5XG1OV2P6uZZ5FSM9Ttw"

const sampleChannelJSON = `{
	"items": [{
		"id": "UC_x5XG1OV2P6uZZ5FSM9Ttw",
		"snippet": {
			"title": "Google for Developers",
			"description": "Subscribe to join a community of creative developers.",
			"customUrl": "@googledevelopers",
			"publishedAt": "2007-08-23T00:34:43Z",
			"country": "US",
			"thumbnails": {
				"default": {"url": "https://yt3.example/default.jpg"},
				"high": {"url": "https://yt3.example/high.jpg"}
			}
		},
		"statistics": {
			"viewCount": "248000000",
			"subscriberCount": "2400000",
			"hiddenSubscriberCount": false,
			"videoCount": "6500"
		},
		"contentDetails": {"relatedPlaylists": {"uploads": "UU_x5XG1OV2P6uZZ5FSM9Ttw"}}
	}]
}`

func TestCanonicalID_CanonicalNoCall(t *testing.T) {
	p := &fakeProvider{}
	c := NewClient(p, 0)

	got, err := c.CanonicalID(context.Background(), Identifier{Kind: KindChannelID, Value: canonicalID})
	require.NoError(t, err)
	assert.Equal(t, canonicalID, got)
	assert.Empty(t, p.calls, "canonical IDs must not reach the provider")
}

func TestCanonicalID_OneLookupPerKind(t *testing.T) {
	tests := []struct {
		name     string
		id       Identifier
		endpoint string
		param    string
		value    string
		body     string
	}{
		{"handle", Identifier{KindHandle, "googledevelopers"}, EndpointChannels, "forHandle", "@googledevelopers",
			`{"items":[{"id":"` + canonicalID + `"}]}`},
		{"username", Identifier{KindUsername, "GoogleDevelopers"}, EndpointChannels, "forUsername", "GoogleDevelopers",
			`{"items":[{"id":"` + canonicalID + `"}]}`},
		{"short channel id", Identifier{KindChannelID, "UCabc123"}, EndpointChannels, "id", "UCabc123",
			`{"items":[{"id":"` + canonicalID + `"}]}`},
		{"custom", Identifier{KindCustom, "GoogleDevelopers"}, EndpointSearch, "q", "GoogleDevelopers",
			`{"items":[{"id":{"kind":"youtube#channel","channelId":"` + canonicalID + `"}}]}`},
		{"video", Identifier{KindVideoID, "dQw4w9WgXcQ"}, EndpointVideos, "id", "dQw4w9WgXcQ",
			`{"items":[{"id":"dQw4w9WgXcQ","snippet":{"channelId":"` + canonicalID + `"}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{bodies: map[string]string{tt.endpoint: tt.body}}
			c := NewClient(p, 0)

			got, err := c.CanonicalID(context.Background(), tt.id)
			require.NoError(t, err)
			assert.Equal(t, canonicalID, got)
			require.Len(t, p.calls, 1)
			assert.Equal(t, tt.endpoint, p.calls[0].endpoint)
			assert.Equal(t, tt.value, p.calls[0].params.Get(tt.param))
		})
	}
}

func TestCanonicalID_NotFound(t *testing.T) {
	for _, kind := range []Kind{KindHandle, KindUsername, KindCustom, KindVideoID} {
		t.Run(string(kind), func(t *testing.T) {
			p := &fakeProvider{}
			c := NewClient(p, 0)

			_, err := c.CanonicalID(context.Background(), Identifier{Kind: kind, Value: "nobody"})
			require.Error(t, err)
			assert.Equal(t, engine.KindChannelNotFound, engine.KindOf(err))
			assert.Len(t, p.calls, 1, "not found must not be retried")
		})
	}
}

func TestCanonicalID_UpstreamErrorPassesThrough(t *testing.T) {
	upstream := engine.Fail(engine.KindUpstreamUnavailable, "channels.list", errors.New("HTTP 503"))
	p := &fakeProvider{errs: map[string]error{EndpointChannels: upstream}}
	c := NewClient(p, 0)

	_, err := c.CanonicalID(context.Background(), Identifier{Kind: KindHandle, Value: "x"})
	assert.Equal(t, engine.KindUpstreamUnavailable, engine.KindOf(err))
	assert.Len(t, p.calls, 1)
}

func TestFetchStats(t *testing.T) {
	p := &fakeProvider{bodies: map[string]string{EndpointChannels: sampleChannelJSON}}
	c := NewClient(p, 0)

	st, err := c.FetchStats(context.Background(), canonicalID)
	require.NoError(t, err)

	assert.Equal(t, canonicalID, st.ID)
	assert.Equal(t, "Google for Developers", st.Title)
	assert.Equal(t, "@googledevelopers", st.Handle)
	assert.Equal(t, "US", st.Country)
	assert.Equal(t, "https://yt3.example/high.jpg", st.ThumbnailURL)
	assert.Equal(t, int64(2400000), st.SubscriberCount)
	assert.Equal(t, int64(248000000), st.ViewCount)
	assert.Equal(t, int64(6500), st.VideoCount)
	assert.Equal(t, "UU_x5XG1OV2P6uZZ5FSM9Ttw", st.UploadsPlaylistID)
	assert.Equal(t, "https://www.youtube.com/channel/UC_x5XG1OV2P6uZZ5FSM9Ttw", st.URL)

	require.Len(t, p.calls, 1)
	assert.Equal(t, "snippet,statistics,contentDetails", p.calls[0].params.Get("part"))
	assert.Equal(t, canonicalID, p.calls[0].params.Get("id"))
}

func TestFetchStats_MissingFieldsDefault(t *testing.T) {
	body := `{"items":[{"id":"UCabc123","snippet":{"title":"Quiet"},"statistics":{"hiddenSubscriberCount":true}}]}`
	p := &fakeProvider{bodies: map[string]string{EndpointChannels: body}}
	c := NewClient(p, 0)

	st, err := c.FetchStats(context.Background(), "UCabc123")
	require.NoError(t, err)
	assert.Zero(t, st.SubscriberCount)
	assert.Zero(t, st.ViewCount)
	assert.Zero(t, st.VideoCount)
	assert.Empty(t, st.ThumbnailURL)
	assert.Empty(t, st.Description)
	assert.Equal(t, "Unknown", st.Country)
	assert.True(t, st.HiddenSubscriberCount)
}

func TestFetchStats_EmptyItems(t *testing.T) {
	c := NewClient(&fakeProvider{}, 0)
	_, err := c.FetchStats(context.Background(), canonicalID)
	assert.Equal(t, engine.KindChannelNotFound, engine.KindOf(err))
}

func TestFetchStats_UndecodableBody(t *testing.T) {
	p := &fakeProvider{bodies: map[string]string{EndpointChannels: `<html>quota page</html>`}}
	c := NewClient(p, 0)
	_, err := c.FetchStats(context.Background(), canonicalID)
	assert.Equal(t, engine.KindUpstreamUnavailable, engine.KindOf(err))
}

func TestParseCount(t *testing.T) {
	tests := map[string]int64{"": 0, "12": 12, " 7 ": 7, "-3": 0, "abc": 0, "9007199254740993": 9007199254740993}
	for in, want := range tests {
		if got := parseCount(in); got != want {
			t.Errorf("parseCount(%q) = %d, want %d", in, got, want)
		}
	}
}
