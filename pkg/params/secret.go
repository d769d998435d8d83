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

package params

import (
	"encoding/json"
	"log/slog"
)

const masked = "********"

// Secret holds a sensitive string such as an API key.
// It renders as a mask when printed, logged or JSON encoded; use Reveal to
// get the actual value.
type Secret string

func (s Secret) Reveal() string { return string(s) }

func (s Secret) String() string { return masked }

func (s Secret) GoString() string { return masked }

func (s Secret) LogValue() slog.Value { return slog.StringValue(masked) }

func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal(masked) }
