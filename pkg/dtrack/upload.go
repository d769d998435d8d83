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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"mime/multipart"
	"net/http"
	"os"
	"slices"
	"strconv"
)

const (
	uploadPath = "/api/v1/bom"

	// maxErrorBody bounds how much of an error response is kept in messages.
	maxErrorBody = 4 << 10
)

// UploadParams selects the target project and the BOM file to upload.
// Either ProjectUUID, or ProjectName and ProjectVersion together with
// AutoCreate, identify the project.
type UploadParams struct {
	ProjectUUID    string
	ProjectName    string
	ProjectVersion string
	// ProjectTags is a comma-separated list.
	ProjectTags   string
	ParentName    string
	ParentVersion string
	ParentUUID    string
	AutoCreate    bool
	IsLatest      bool
	BOMFile       string
}

// Validate checks that the params identify a project.
func (p UploadParams) Validate() error {
	if p.BOMFile == "" {
		return errors.New("bom_file is required")
	}
	if p.ProjectUUID != "" {
		return nil
	}
	if p.ProjectName == "" || p.ProjectVersion == "" {
		return errors.New("either project_uuid or both project_name and project_version are required")
	}
	if !p.AutoCreate {
		return errors.New("auto_create must be true when project_name and project_version are used without project_uuid")
	}
	return nil
}

// UploadFields returns the multipart form fields for p.
// Booleans are rendered as "true" or "false". Fields with an empty value are
// left out entirely, so the server never receives an unintended override.
func UploadFields(p UploadParams) map[string]string {
	fields := map[string]string{
		"project":        p.ProjectUUID,
		"autoCreate":     strconv.FormatBool(p.AutoCreate),
		"projectName":    p.ProjectName,
		"projectVersion": p.ProjectVersion,
		"projectTags":    p.ProjectTags,
		"parentName":     p.ParentName,
		"parentVersion":  p.ParentVersion,
		"parentUUID":     p.ParentUUID,
		"isLatest":       strconv.FormatBool(p.IsLatest),
	}
	for k, v := range fields {
		if v == "" {
			delete(fields, k)
		}
	}
	return fields
}

// UploadBOM posts the BOM file to /api/v1/bom as multipart/form-data.
// Every failure is reported in the returned Result.
func (c *Client) UploadBOM(ctx context.Context, p UploadParams) Result {
	if err := p.Validate(); err != nil {
		return failure(err.Error())
	}

	f, err := os.Open(p.BOMFile)
	if err != nil {
		return failure((&FileAccessError{Path: p.BOMFile, Err: err}).Error())
	}
	defer f.Close() //nolint:errcheck

	body, contentType := multipartBody(UploadFields(p), f, p.BOMFile)
	defer body.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	endpoint := c.apiURL(uploadPath)
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return failure(fmt.Sprintf("Request error: %v", err))
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(req, "upload")
	if err != nil {
		return failure(fmt.Sprintf("Request error: %v", err))
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		herr := &HTTPError{StatusCode: resp.StatusCode, URL: endpoint, Body: string(b)}
		r := failure(fmt.Sprintf("HTTP error: %v", herr))
		r.StatusCode = intPtr(resp.StatusCode)
		return r
	}

	r := Result{Changed: true, StatusCode: intPtr(resp.StatusCode)}
	if token, ok := uploadToken(resp.Body); ok {
		r.UploadToken = &token
	} else {
		slog.DebugContext(ctx, "No upload token in response")
	}
	return r
}

// uploadToken extracts the "token" member of a JSON response body.
// A string token is kept as-is; any other JSON value is kept as its JSON
// text. A body that is not a JSON object, or a null token, yields no token.
func uploadToken(r io.Reader) (string, bool) {
	var body struct {
		Token json.RawMessage `json:"token"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil || len(body.Token) == 0 || string(body.Token) == "null" {
		return "", false
	}
	var token string
	if err := json.Unmarshal(body.Token, &token); err == nil {
		return token, true
	}
	return string(body.Token), true
}

// multipartBody streams fields in key order followed by the "bom" file part.
// The reader fails with the underlying error if the file cannot be read.
func multipartBody(fields map[string]string, file io.Reader, filename string) (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeMultipart(w, fields, file, filename)) //nolint:errcheck
	}()
	return pr, w.FormDataContentType()
}

func writeMultipart(w *multipart.Writer, fields map[string]string, file io.Reader, filename string) error {
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		if err := w.WriteField(k, fields[k]); err != nil {
			return err
		}
	}
	part, err := w.CreateFormFile("bom", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return &FileAccessError{Path: filename, Err: err}
	}
	return w.Close()
}
