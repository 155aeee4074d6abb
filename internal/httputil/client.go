// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sumergoconicio/openai-pdf-renamer/pkg/types"
)

// DefaultTimeout bounds a single completion request. Failed or slow requests
// are not retried; they fail the document and the run moves on.
const DefaultTimeout = 60 * time.Second

// userAgentTransport injects a User-Agent header on requests that lack one.
type userAgentTransport struct {
	agent string
	next  http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.agent)
	}
	return t.next.RoundTrip(req)
}

// NewClient builds the HTTP client used for completion requests, applying the
// configured timeout and User-Agent.
func NewClient(cfg types.HTTPConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := http.RoundTripper(http.DefaultTransport)
	if cfg.UserAgent != "" {
		transport = &userAgentTransport{agent: cfg.UserAgent, next: transport}
	}

	return &http.Client{Timeout: timeout, Transport: transport}
}

// ErrorFromResponse turns a non-2xx response into an error carrying the
// status code and a bounded amount of body text.
func ErrorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	host := ""
	if resp.Request != nil && resp.Request.URL != nil {
		host = resp.Request.URL.Host
	}
	return fmt.Errorf("%s returned %d: %s", host, resp.StatusCode, strings.TrimSpace(string(body)))
}
