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

// Package params describes the flat parameter structure accepted by each
// operation, and knows which parameters are sensitive.
package params

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Type is the declared type of a parameter.
type Type string

const (
	TypeStr  Type = "str"
	TypeBool Type = "bool"
	TypePath Type = "path"
	TypeDict Type = "dict"
)

// NoLogPlaceholder replaces the value of every NoLog parameter in redacted output.
const NoLogPlaceholder = "VALUE_SPECIFIED_IN_NO_LOG_PARAMETER"

// Param declares a single named parameter.
type Param struct {
	Name     string
	Type     Type
	Required bool
	Default  any
	// NoLog marks the value as sensitive. It is never logged nor echoed back.
	NoLog bool
	Help  string
}

// FlagName returns the CLI flag name, e.g. "api-key" for "api_key".
func (p Param) FlagName() string {
	return strings.ReplaceAll(p.Name, "_", "-")
}

// ArgumentSpec is the ordered parameter schema of an operation.
type ArgumentSpec []Param

// Lookup returns the parameter with the given name.
func (a ArgumentSpec) Lookup(name string) (Param, bool) {
	for _, p := range a {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Validate checks that every required parameter is present and not empty.
func (a ArgumentSpec) Validate(values map[string]any) error {
	var missing []string
	for _, p := range a {
		if !p.Required {
			continue
		}
		v, ok := values[p.Name]
		if !ok || isEmpty(v) {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required arguments: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Redact returns a shallow copy of values where every NoLog parameter is
// replaced by NoLogPlaceholder. Unknown keys are copied as-is.
func (a ArgumentSpec) Redact(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		if p, ok := a.Lookup(k); ok && p.NoLog {
			out[k] = NoLogPlaceholder
			continue
		}
		out[k] = v
	}
	return out
}

// RegisterFlags registers one flag per parameter on fs.
// Dict parameters are accepted as inline JSON strings.
func (a ArgumentSpec) RegisterFlags(fs *pflag.FlagSet) {
	for _, p := range a {
		help := p.Help
		if p.Required {
			help += " (required)"
		}
		switch p.Type {
		case TypeBool:
			def, _ := p.Default.(bool)
			fs.Bool(p.FlagName(), def, help)
		default:
			def, _ := p.Default.(string)
			fs.String(p.FlagName(), def, help)
		}
	}
}

// Values reads back the flags registered by RegisterFlags.
// String parameters left at an empty value are omitted from the result so
// that absent and empty are treated alike.
func (a ArgumentSpec) Values(fs *pflag.FlagSet) (map[string]any, error) {
	values := make(map[string]any, len(a))
	for _, p := range a {
		switch p.Type {
		case TypeBool:
			b, err := fs.GetBool(p.FlagName())
			if err != nil {
				return nil, err
			}
			values[p.Name] = b
		case TypeDict:
			s, err := fs.GetString(p.FlagName())
			if err != nil {
				return nil, err
			}
			if s == "" {
				continue
			}
			var m map[string]any
			if err := json.Unmarshal([]byte(s), &m); err != nil {
				return nil, fmt.Errorf("parameter %q must be a JSON object: %w", p.Name, err)
			}
			values[p.Name] = m
		default:
			s, err := fs.GetString(p.FlagName())
			if err != nil {
				return nil, err
			}
			if s == "" {
				continue
			}
			values[p.Name] = s
		}
	}
	return values, nil
}

// String returns the string value of name, or "" when absent.
func String(values map[string]any, name string) string {
	s, _ := values[name].(string)
	return s
}

// Bool returns the boolean value of name, or false when absent.
func Bool(values map[string]any, name string) bool {
	b, _ := values[name].(bool)
	return b
}

func isEmpty(v any) bool {
	switch vv := v.(type) {
	case nil:
		return true
	case string:
		return vv == ""
	case map[string]any:
		return vv == nil
	}
	return false
}
