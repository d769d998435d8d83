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
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateBOM(t *testing.T) {
	s := newStub(t, http.StatusOK, `{"token":"t1"}`)
	body := map[string]any{"project": "u1", "bom": "eyJ9"}

	got, err := legacyClient(t, s).UpdateBOM(context.Background(), body)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"token": "t1"}, got)

	req := s.Last()
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/api/v1/bom", req.Path)
	assert.Equal(t, testAPIKey, req.APIKey)
	assert.JSONEq(t, `{"project":"u1","bom":"eyJ9"}`, string(req.Body))
}

// The server status is never inspected: an error payload comes back as-is.
func TestUpdateBOM_ErrorBodyPassesThrough(t *testing.T) {
	s := newStub(t, http.StatusInternalServerError, `{"error":"kaput"}`)

	got, err := legacyClient(t, s).UpdateBOM(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"error": "kaput"}, got)
}

func TestUpdateBOM_NonJSONResponse(t *testing.T) {
	s := newStub(t, http.StatusOK, `nope`)

	_, err := legacyClient(t, s).UpdateBOM(context.Background(), map[string]any{})
	assert.ErrorContains(t, err, "failed to decode update response (status 200)")
}

func TestUpdateBOM_UnencodableBody(t *testing.T) {
	s := newStub(t, http.StatusOK, `{}`)

	_, err := legacyClient(t, s).UpdateBOM(context.Background(), map[string]any{"ch": make(chan int)})
	assert.ErrorContains(t, err, "failed to encode body")
	assert.Equal(t, int32(0), s.hits.Load())
}
