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

package outputhandler

import (
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/aquasecurity/table"
	"github.com/aquasecurity/tml"

	"github.com/venslabs/dtrackctl/pkg/dtrack"
)

// maxCellWidth, in runes, truncates payload cells so a whole BOM does not flood the terminal.
const maxCellWidth = 120

type tableOutputHandler struct {
	w io.Writer
	r []dtrack.Result
}

// NewTableOutputHandler renders results as a two-column Field/Value table.
func NewTableOutputHandler(w io.Writer) OutputHandler {
	if w == nil {
		w = os.Stdout
	}
	return &tableOutputHandler{w: w}
}

func (h *tableOutputHandler) HandleResult(r dtrack.Result) error {
	h.r = append(h.r, r)
	return nil
}

func (h *tableOutputHandler) Close() error {
	if len(h.r) == 0 {
		return nil
	}
	t := table.New(h.w)
	t.SetHeaders("Field", "Value")
	for _, r := range h.r {
		changed := "false"
		if r.Changed {
			changed = tml.Sprintf("<green>true</green>")
		}
		t.AddRow("changed", changed)
		if r.Failed {
			t.AddRow("failed", tml.Sprintf("<red><bold>true</bold></red>"))
		}
		if r.StatusCode != nil {
			t.AddRow("status_code", strconv.Itoa(*r.StatusCode))
		}
		if r.UploadToken != nil {
			t.AddRow("upload_token", *r.UploadToken)
		}
		if r.Msg != "" {
			t.AddRow("msg", r.Msg)
		}
		for _, kv := range []struct {
			k string
			v any
		}{{"message", r.Message}, {"response", r.Response}} {
			if kv.v == nil {
				continue
			}
			cell, err := cellValue(kv.v)
			if err != nil {
				return err
			}
			t.AddRow(kv.k, cell)
		}
	}
	t.Render()
	h.r = nil
	return nil
}

func cellValue(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		s = string(b)
	}
	if r := []rune(s); len(r) > maxCellWidth {
		s = string(r[:maxCellWidth-3]) + "..."
	}
	return s, nil
}
