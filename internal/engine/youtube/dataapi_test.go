package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/anatolykoptev/go_ytearn/internal/engine"
)

func TestDataAPI_Lookup(t *testing.T) {
	var gotPath, gotKey, gotHandle, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		gotHandle = r.URL.Query().Get("forHandle")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"id":"UC_x5XG1OV2P6uZZ5FSM9Ttw"}]}`))
	}))
	defer srv.Close()

	api := NewDataAPI(srv.URL+"/", "secret-key", srv.Client(), engine.NewGate(0))
	params := url.Values{}
	params.Set("part", "id")
	params.Set("forHandle", "@somehandle")

	body, err := api.Lookup(context.Background(), EndpointChannels, params)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !strings.Contains(string(body), "UC_x5XG1OV2P6uZZ5FSM9Ttw") {
		t.Errorf("body = %s", body)
	}
	if gotPath != "/channels" {
		t.Errorf("path = %q, want /channels", gotPath)
	}
	if gotKey != "secret-key" {
		t.Errorf("key = %q", gotKey)
	}
	if gotHandle != "@somehandle" {
		t.Errorf("forHandle = %q", gotHandle)
	}
	if gotUA != UserAgent {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if params.Get("key") != "" {
		t.Error("Lookup must not mutate caller params")
	}
}

func TestDataAPI_Lookup_StatusError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error":{"code":403,"message":"quotaExceeded"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	api := NewDataAPI(srv.URL, "k", srv.Client(), engine.NewGate(0))
	_, err := api.Lookup(context.Background(), EndpointChannels, url.Values{})
	if engine.KindOf(err) != engine.KindUpstreamUnavailable {
		t.Fatalf("kind = %q, want upstream_unavailable (err %v)", engine.KindOf(err), err)
	}
	if !strings.Contains(err.Error(), "HTTP 403") {
		t.Errorf("error should carry status: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, failures must not be retried", calls)
	}
}

func TestDataAPI_Lookup_TransportErrorRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	api := NewDataAPI(base, "super-secret", &http.Client{Timeout: time.Second}, engine.NewGate(0))
	_, err := api.Lookup(context.Background(), EndpointVideos, url.Values{})
	if engine.KindOf(err) != engine.KindUpstreamUnavailable {
		t.Fatalf("kind = %q, want upstream_unavailable", engine.KindOf(err))
	}
	if strings.Contains(err.Error(), "super-secret") {
		t.Errorf("API key leaked into error: %v", err)
	}
}

func TestDataAPI_Lookup_SpacedByGate(t *testing.T) {
	var stamps []time.Time
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stamps = append(stamps, time.Now())
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	const interval = 80 * time.Millisecond
	api := NewDataAPI(srv.URL, "k", srv.Client(), engine.NewGate(interval))
	for range 3 {
		if _, err := api.Lookup(context.Background(), EndpointSearch, url.Values{}); err != nil {
			t.Fatal(err)
		}
	}
	if len(stamps) != 3 {
		t.Fatalf("server saw %d calls", len(stamps))
	}
	// Allow a little scheduler slack between the gate release and the handler.
	for i := 1; i < len(stamps); i++ {
		if gap := stamps[i].Sub(stamps[i-1]); gap < interval-10*time.Millisecond {
			t.Errorf("gap %d = %v, want >= %v", i, gap, interval)
		}
	}
}

func TestDataAPI_Lookup_CanceledWhileWaiting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	api := NewDataAPI(srv.URL, "k", srv.Client(), engine.NewGate(time.Hour))
	if _, err := api.Lookup(context.Background(), EndpointChannels, url.Values{}); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := api.Lookup(ctx, EndpointChannels, url.Values{})
	if engine.KindOf(err) != engine.KindUpstreamUnavailable {
		t.Errorf("kind = %q, want upstream_unavailable", engine.KindOf(err))
	}
}

func TestNewDataAPI_Defaults(t *testing.T) {
	api := NewDataAPI("", "k", nil, nil)
	if api.BaseURL != DefaultAPIBase {
		t.Errorf("BaseURL = %q", api.BaseURL)
	}
	if api.Client == nil || api.Gate == nil {
		t.Fatal("defaults not applied")
	}
	if api.Gate.Interval() != engine.DefaultMinInterval {
		t.Errorf("gate interval = %v", api.Gate.Interval())
	}
}

func TestDataAPI_Lookup_StatusErrorBodyCapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(strings.Repeat("é", 2000)))
	}))
	defer srv.Close()

	api := NewDataAPI(srv.URL, "k", srv.Client(), engine.NewGate(0))
	_, err := api.Lookup(context.Background(), EndpointChannels, url.Values{})

	var hs *engine.HTTPStatusError
	if !errors.As(err, &hs) {
		t.Fatalf("expected HTTPStatusError, got %v", err)
	}
	if hs.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d", hs.StatusCode)
	}
	if len(hs.Body) > errBodyBytes {
		t.Errorf("body length = %d, want <= %d", len(hs.Body), errBodyBytes)
	}
	if !utf8.ValidString(hs.Body) {
		t.Error("capped body must stay valid UTF-8")
	}
}
