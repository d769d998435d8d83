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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const updatePath = "/api/v1/bom"

// UpdateBOM PUTs body as JSON and returns the decoded response.
// The status code is never inspected: an error body from the server is
// returned as the payload like any other.
func (c *Client) UpdateBOM(ctx context.Context, body any) (any, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode body: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, UpdateTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodPut, c.legacyURL(updatePath), bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req, "update")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	v, err := decodeJSON(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode update response (status %d): %w", resp.StatusCode, err)
	}
	return v, nil
}
