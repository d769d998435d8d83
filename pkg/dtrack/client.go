// Copyright 2025 venslabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dtrack issues single request/response calls against the
// Dependency-Track REST API to read, upload, create, update and delete BOMs.
//
// There is no retry, pagination nor caching: each operation is one blocking
// HTTP round trip bounded by a fixed timeout.
package dtrack

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/venslabs/dtrackctl/pkg/params"
)

const (
	ReadTimeout   = 10 * time.Second
	DeleteTimeout = 10 * time.Second
	UpdateTimeout = 10 * time.Second
	CreateTimeout = 10 * time.Second
	UploadTimeout = 30 * time.Second

	// DefaultLegacyPort is appended to the base URL by the read, create,
	// delete and update endpoints.
	DefaultLegacyPort = "8081"

	apiKeyHeader = "X-Api-Key"
)

// Options configures a Client.
type Options struct {
	BaseURL string
	APIKey  params.Secret
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool
	// LegacyPort overrides DefaultLegacyPort.
	LegacyPort string
	// HTTPClient is used as-is when set. InsecureSkipVerify is then ignored.
	HTTPClient *http.Client
}

// Client holds the connection parameters shared by every operation.
type Client struct {
	baseURL    string
	apiKey     params.Secret
	legacyPort string
	httpClient *http.Client
}

// New validates o and returns a Client.
func New(o Options) (*Client, error) {
	if o.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	u, err := url.Parse(o.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", o.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", o.BaseURL)
	}
	c := &Client{
		baseURL:    o.BaseURL,
		apiKey:     o.APIKey,
		legacyPort: o.LegacyPort,
		httpClient: o.HTTPClient,
	}
	if c.legacyPort == "" {
		c.legacyPort = DefaultLegacyPort
	}
	if c.httpClient == nil {
		tr := http.DefaultTransport.(*http.Transport).Clone()
		if o.InsecureSkipVerify {
			tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		}
		c.httpClient = &http.Client{Transport: tr}
	}
	return c, nil
}

// apiURL joins path to the base URL stripped of its trailing slashes.
func (c *Client) apiURL(path string) string {
	return strings.TrimRight(c.baseURL, "/") + path
}

// legacyURL appends the legacy port and path to the base URL verbatim.
func (c *Client) legacyURL(path string) string {
	return c.baseURL + ":" + c.legacyPort + path
}

func (c *Client) newRequest(ctx context.Context, method, u string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(apiKeyHeader, c.apiKey.Reveal())
	return req, nil
}

// do sends req and wraps any transport failure in a TransportError.
func (c *Client) do(req *http.Request, op string) (*http.Response, error) {
	slog.DebugContext(req.Context(), "Sending request", "op", op, "method", req.Method, "url", req.URL.String(), "api_key", c.apiKey)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	slog.DebugContext(req.Context(), "Received response", "op", op, "status", resp.StatusCode)
	return resp, nil
}

// decodeJSON reads the whole body and decodes it into an untyped value.
func decodeJSON(r io.Reader) (any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}
