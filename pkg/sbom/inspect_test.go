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

package sbom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/CycloneDX/cyclonedx-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBOM = `{
  "bomFormat": "CycloneDX",
  "specVersion": "1.5",
  "serialNumber": "urn:uuid:3e671687-395b-41f5-a30f-a58921a69b79",
  "version": 1,
  "metadata": {
    "component": {"type": "application", "name": "acme-app", "version": "4.13.2"}
  },
  "components": [
    {"type": "library", "name": "lodash", "version": "4.17.21", "purl": "pkg:npm/lodash@4.17.21"},
    {"type": "library", "name": "zap", "version": "1.27.0", "purl": "pkg:golang/go.uber.org/zap@v1.27.0",
     "components": [
       {"type": "library", "name": "multierr", "purl": "pkg:golang/go.uber.org/multierr@v1.11.0"}
     ]},
    {"type": "library", "name": "broken", "purl": "not-a-purl"},
    {"type": "library", "name": "nopurl"}
  ]
}`

func write(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestInspect(t *testing.T) {
	s, err := Inspect(write(t, "sbom.cdx.json", testBOM))
	require.NoError(t, err)

	assert.Equal(t, "1.5", s.SpecVersion)
	assert.Equal(t, "urn:uuid:3e671687-395b-41f5-a30f-a58921a69b79", s.SerialNumber)
	assert.Equal(t, "acme-app", s.Name)
	assert.Equal(t, "4.13.2", s.Version)
	assert.Equal(t, 5, s.Components)
	assert.Equal(t, map[string]int{"npm": 1, "golang": 2}, s.Ecosystems)
}

func TestInspect_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{name: "not_json", file: "a.json", content: "hello", wantErr: "failed to decode CycloneDX BOM"},
		{name: "not_cyclonedx", file: "b.json", content: `{"spdxVersion":"SPDX-2.3"}`, wantErr: "is not a CycloneDX BOM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Inspect(write(t, tt.file, tt.content))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	_, err := Inspect(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileFormat(t *testing.T) {
	assert.Equal(t, cyclonedx.BOMFileFormatXML, FileFormat("bom.XML"))
	assert.Equal(t, cyclonedx.BOMFileFormatJSON, FileFormat("bom.cdx.json"))
	assert.Equal(t, cyclonedx.BOMFileFormatJSON, FileFormat("bom"))
}

func TestEcosystem(t *testing.T) {
	tests := []struct {
		purl   string
		want   string
		wantOK bool
	}{
		{purl: "pkg:npm/%40angular/core@16.0.0", want: "npm", wantOK: true},
		{purl: "pkg:deb/debian/openssl@3.0.11?distro=debian-12", want: "deb", wantOK: true},
		{purl: "", wantOK: false},
		{purl: "garbage", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.purl, func(t *testing.T) {
			got, ok := Ecosystem(tt.purl)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
