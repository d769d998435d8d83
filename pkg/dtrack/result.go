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

// Result is the flat outcome of an operation.
// Changed is true only when the server acknowledged success.
type Result struct {
	Changed         bool           `json:"changed"`
	Failed          bool           `json:"failed,omitempty"`
	StatusCode      *int           `json:"status_code,omitempty"`
	UploadToken     *string        `json:"upload_token,omitempty"`
	Msg             string         `json:"msg,omitempty"`
	Message         any            `json:"message,omitempty"`
	Response        any            `json:"response,omitempty"`
	OriginalMessage map[string]any `json:"original_message,omitempty"`
}

func failure(msg string) Result {
	return Result{Failed: true, Msg: msg}
}

func intPtr(i int) *int { return &i }
