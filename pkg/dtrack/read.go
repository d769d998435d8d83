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
	"fmt"
	"net/http"
	"net/url"
)

const readPath = "/v1/bom/cyclonedx/project/"

// ReadBOM fetches the CycloneDX BOM of the project identified by uuid and
// returns the decoded JSON body unmodified. The status code is not inspected.
func (c *Client) ReadBOM(ctx context.Context, uuid string) (any, error) {
	if uuid == "" {
		return nil, fmt.Errorf("uuid is required")
	}
	ctx, cancel := context.WithTimeout(ctx, ReadTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, c.legacyURL(readPath+url.PathEscape(uuid)), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req, "read")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	v, err := decodeJSON(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode BOM response (status %d): %w", resp.StatusCode, err)
	}
	return v, nil
}
