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
	"fmt"
	"io"

	"github.com/venslabs/dtrackctl/pkg/dtrack"
)

// Output formats.
const (
	Auto      = "auto"
	JSON      = "json"
	Table     = "table"
	CycloneDX = "cyclonedx"
)

// Names lists the supported formats for help text and validation.
var Names = []string{JSON, Table, CycloneDX}

// OutputHandler accumulates results and writes them on Close.
type OutputHandler interface {
	HandleResult(dtrack.Result) error
	Close() error
}

// New returns the handler for format. "auto" and "" mean JSON.
func New(format string, w io.Writer) (OutputHandler, error) {
	switch format {
	case "", Auto, JSON:
		return NewJSONOutputHandler(w), nil
	case Table:
		return NewTableOutputHandler(w), nil
	case CycloneDX:
		return NewCycloneDXOutputHandler(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q, make sure to use one of %v", format, Names)
	}
}
