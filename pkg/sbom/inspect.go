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

// Package sbom inspects local CycloneDX BOM files before they are sent to
// the server.
package sbom

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/CycloneDX/cyclonedx-go"
	purl "github.com/package-url/packageurl-go"
)

// Summary describes a CycloneDX BOM.
type Summary struct {
	SpecVersion  string `json:"specVersion"`
	SerialNumber string `json:"serialNumber,omitempty"`
	// Name and Version come from metadata.component.
	Name       string `json:"name,omitempty"`
	Version    string `json:"version,omitempty"`
	Components int    `json:"components"`
	// Ecosystems counts components by purl type. Components without a
	// parsable purl are not counted.
	Ecosystems map[string]int `json:"ecosystems,omitempty"`
}

// FileFormat guesses the encoding from the file extension: ".xml" is XML,
// everything else JSON.
func FileFormat(path string) cyclonedx.BOMFileFormat {
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return cyclonedx.BOMFileFormatXML
	}
	return cyclonedx.BOMFileFormatJSON
}

// Inspect decodes the BOM at path and summarizes it.
// It fails when the file is not a CycloneDX document.
func Inspect(path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var bom cyclonedx.BOM
	if err := cyclonedx.NewBOMDecoder(f, FileFormat(path)).Decode(&bom); err != nil {
		return nil, fmt.Errorf("failed to decode CycloneDX BOM %q: %w", path, err)
	}
	if FileFormat(path) == cyclonedx.BOMFileFormatJSON && bom.BOMFormat != cyclonedx.BOMFormat {
		return nil, fmt.Errorf("%q is not a CycloneDX BOM (bomFormat=%q)", path, bom.BOMFormat)
	}
	return Summarize(&bom), nil
}

// Summarize walks bom, including nested components.
func Summarize(bom *cyclonedx.BOM) *Summary {
	s := &Summary{
		SpecVersion:  bom.SpecVersion.String(),
		SerialNumber: bom.SerialNumber,
		Ecosystems:   map[string]int{},
	}
	if bom.Metadata != nil && bom.Metadata.Component != nil {
		s.Name = bom.Metadata.Component.Name
		s.Version = bom.Metadata.Component.Version
	}
	if bom.Components != nil {
		s.walk(*bom.Components)
	}
	return s
}

func (s *Summary) walk(components []cyclonedx.Component) {
	for _, c := range components {
		s.Components++
		if eco, ok := Ecosystem(c.PackageURL); ok {
			s.Ecosystems[eco]++
		} else if c.PackageURL != "" {
			slog.Debug("Ignoring unparsable purl", "purl", c.PackageURL)
		}
		if c.Components != nil {
			s.walk(*c.Components)
		}
	}
}

// Ecosystem returns the lower-cased purl type, e.g. "npm" or "golang".
func Ecosystem(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	u, err := purl.FromString(p)
	if err != nil {
		return "", false
	}
	return strings.ToLower(u.Type), true
}
