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
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{name: "https", opts: Options{BaseURL: "https://dtrack.example.com"}},
		{name: "http", opts: Options{BaseURL: "http://localhost"}},
		{name: "empty", opts: Options{}, wantErr: "base URL is required"},
		{name: "scheme", opts: Options{BaseURL: "ftp://x"}, wantErr: "scheme must be http or https"},
		{name: "unparsable", opts: Options{BaseURL: "http://[::1"}, wantErr: "invalid base URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.opts)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c.httpClient)
			assert.Equal(t, DefaultLegacyPort, c.legacyPort)
		})
	}
}

func TestURLConventions(t *testing.T) {
	c, err := New(Options{BaseURL: "https://x/"})
	require.NoError(t, err)
	assert.Equal(t, "https://x/api/v1/bom", c.apiURL(uploadPath))

	c, err = New(Options{BaseURL: "https://x"})
	require.NoError(t, err)
	assert.Equal(t, "https://x:8081/v1/project/u1", c.legacyURL(deletePath+"u1"))

	c, err = New(Options{BaseURL: "https://x", LegacyPort: "9000"})
	require.NoError(t, err)
	assert.Equal(t, "https://x:9000/api/v1/bom", c.legacyURL(updatePath))
}

func TestResultJSON(t *testing.T) {
	token := "abc"
	b, err := json.Marshal(Result{Changed: true, StatusCode: intPtr(200), UploadToken: &token})
	require.NoError(t, err)
	assert.JSONEq(t, `{"changed":true,"status_code":200,"upload_token":"abc"}`, string(b))

	b, err = json.Marshal(Result{Failed: true, Message: MsgDeleteFailed})
	require.NoError(t, err)
	assert.JSONEq(t, `{"changed":false,"failed":true,"message":"Failed to delete BOM"}`, string(b))
}

func TestErrorsUnwrap(t *testing.T) {
	fe := &FileAccessError{Path: "x", Err: os.ErrNotExist}
	assert.True(t, errors.Is(fe, os.ErrNotExist))
	assert.Equal(t, "Failed to open SBOM file 'x': file does not exist", fe.Error())

	te := &TransportError{Op: "read", Err: os.ErrDeadlineExceeded}
	assert.True(t, errors.Is(te, os.ErrDeadlineExceeded))

	he := &HTTPError{StatusCode: 404, URL: "https://x/api/v1/bom"}
	assert.Equal(t, "404 Client Error: Not Found for url: https://x/api/v1/bom", he.Error())
}
