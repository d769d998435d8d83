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
	"log/slog"
	"net/http"
	"net/url"
)

const (
	deletePath = "/v1/project/"

	MsgDeleted      = "BOM deleted successfully"
	MsgDeleteFailed = "Failed to delete BOM"
)

// DeleteProject deletes the project identified by uuid.
// Only an exact 200 counts as success: a 204 is reported as a failure, and
// no status code is surfaced either way.
func (c *Client) DeleteProject(ctx context.Context, uuid string) Result {
	failed := Result{Failed: true, Message: MsgDeleteFailed}
	if uuid == "" {
		return failed
	}

	ctx, cancel := context.WithTimeout(ctx, DeleteTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodDelete, c.legacyURL(deletePath+url.PathEscape(uuid)), nil)
	if err != nil {
		slog.DebugContext(ctx, "Failed to build delete request", "error", err)
		return failed
	}
	resp, err := c.do(req, "delete")
	if err != nil {
		slog.DebugContext(ctx, "Delete request failed", "error", err)
		return failed
	}
	resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return failed
	}
	return Result{Changed: true, Message: MsgDeleted}
}
