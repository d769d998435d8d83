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

package dtrack

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

const testAPIKey = "k"

// capturedRequest is what a stub server saw.
type capturedRequest struct {
	Method   string
	Path     string
	APIKey   string
	Fields   map[string]string
	RawNames []string
	// NoFilename records, per text field, that its part carried no filename.
	NoFilename map[string]bool
	File       string
	Filename   string
	Body       []byte
}

type stubServer struct {
	*httptest.Server
	hits atomic.Int32

	mu   sync.Mutex
	last capturedRequest
}

func (s *stubServer) Last() capturedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// newStub starts a server answering every request with status and body.
func newStub(t *testing.T, status int, body string) *stubServer {
	t.Helper()
	s := &stubServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		c := capture(t, r)
		s.mu.Lock()
		s.last = c
		s.mu.Unlock()
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(s.Close)
	return s
}

func capture(t *testing.T, r *http.Request) capturedRequest {
	c := capturedRequest{
		Method:     r.Method,
		Path:       r.URL.Path,
		APIKey:     r.Header.Get("X-Api-Key"),
		Fields:     map[string]string{},
		NoFilename: map[string]bool{},
	}
	mr, err := r.MultipartReader()
	if err != nil {
		c.Body, _ = io.ReadAll(r.Body)
		return c
	}
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Errorf("reading multipart: %v", err)
			return c
		}
		b, _ := io.ReadAll(p)
		c.RawNames = append(c.RawNames, p.FormName())
		if p.FormName() == "bom" {
			c.File = string(b)
			c.Filename = p.FileName()
			continue
		}
		c.Fields[p.FormName()] = string(b)
		c.NoFilename[p.FormName()] = p.FileName() == ""
	}
	return c
}

// apiClient targets the stub through the apiURL convention.
func apiClient(t *testing.T, s *stubServer) *Client {
	t.Helper()
	c, err := New(Options{BaseURL: s.URL + "/", APIKey: testAPIKey})
	require.NoError(t, err)
	return c
}

// legacyClient targets the stub through the legacyURL convention, with the
// stub's port standing in for the legacy port.
func legacyClient(t *testing.T, s *stubServer) *Client {
	t.Helper()
	u, err := url.Parse(s.URL)
	require.NoError(t, err)
	c, err := New(Options{BaseURL: "http://" + u.Hostname(), APIKey: testAPIKey, LegacyPort: u.Port()})
	require.NoError(t, err)
	return c
}

func writeBOM(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "valid.json")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

// unreachableURL returns the URL of a server that has already been closed.
func unreachableURL(t *testing.T) string {
	t.Helper()
	s := httptest.NewServer(http.NotFoundHandler())
	u := s.URL
	s.Close()
	return u
}
