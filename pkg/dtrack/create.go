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
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

const (
	createPath = "/api/v1/bom"

	MsgCreated      = "SBOM uploaded successfully."
	msgCreateFailed = "Failed to upload SBOM. Server responded status: %d."
)

// CreateParams is the legacy variant of UploadParams, posted to the
// legacy port.
type CreateParams struct {
	Project        string
	AutoCreate     bool
	ProjectName    string
	ProjectVersion string
	ParentName     string
	ParentVersion  string
	ParentUUID     string
	SBOMFilePath   string
}

// createFields keeps the legacy field order and the capitalized boolean
// ("True"/"False") the legacy endpoint has always received.
func createFields(p CreateParams) [][2]string {
	autoCreate := "False"
	if p.AutoCreate {
		autoCreate = "True"
	}
	all := [][2]string{
		{"project", p.Project},
		{"autoCreate", autoCreate},
		{"projectName", p.ProjectName},
		{"projectVersion", p.ProjectVersion},
		{"parentName", p.ParentName},
		{"parentVersion", p.ParentVersion},
		{"parentUUID", p.ParentUUID},
	}
	fields := all[:0]
	for _, kv := range all {
		if kv[1] != "" {
			fields = append(fields, kv)
		}
	}
	return fields
}

// CreateBOM posts the BOM file to the legacy /api/v1/bom endpoint.
// Only an exact 200 counts as success; the status code is not surfaced
// on failure.
func (c *Client) CreateBOM(ctx context.Context, p CreateParams) Result {
	f, err := os.Open(p.SBOMFilePath)
	if err != nil {
		return Result{Failed: true, Message: (&FileAccessError{Path: p.SBOMFilePath, Err: err}).Error()}
	}
	defer f.Close() //nolint:errcheck

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, kv := range createFields(p) {
		fw, err := w.CreateFormField(kv[0])
		if err != nil {
			return Result{Failed: true, Message: fmt.Sprintf("Failed to upload SBOM: %v", err)}
		}
		if _, err := io.WriteString(fw, kv[1]); err != nil {
			return Result{Failed: true, Message: fmt.Sprintf("Failed to upload SBOM: %v", err)}
		}
	}
	part, err := w.CreateFormFile("bom", filepath.Base(p.SBOMFilePath))
	if err == nil {
		_, err = io.Copy(part, f)
	}
	if err == nil {
		err = w.Close()
	}
	if err != nil {
		return Result{Failed: true, Message: (&FileAccessError{Path: p.SBOMFilePath, Err: err}).Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, CreateTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodPost, c.legacyURL(createPath), &buf)
	if err != nil {
		return Result{Failed: true, Message: fmt.Sprintf("Failed to upload SBOM: %v", err)}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.do(req, "create")
	if err != nil {
		return Result{Failed: true, Message: fmt.Sprintf("Failed to upload SBOM: %v", err)}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return Result{Failed: true, Message: fmt.Sprintf(msgCreateFailed, resp.StatusCode)}
	}

	r := Result{Changed: true, Message: MsgCreated}
	if v, err := decodeJSON(resp.Body); err == nil {
		r.Response = v
	} else {
		slog.DebugContext(ctx, "Ignoring undecodable create response", "error", err)
	}
	return r
}
