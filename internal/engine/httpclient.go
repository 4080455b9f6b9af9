package engine

import (
	"errors"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single Data API request when none is configured.
const DefaultTimeout = 15 * time.Second

// NewAPIClient creates the HTTP client used for Data API calls.
// A zero or negative timeout falls back to DefaultTimeout.
func NewAPIClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     60 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return errors.New("stopped after 3 redirects")
			}
			return nil
		},
	}
}
