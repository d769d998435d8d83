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

package create

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/venslabs/dtrackctl/cmd/dtrackctl/commands/cmdutil"
	"github.com/venslabs/dtrackctl/pkg/dtrack"
	"github.com/venslabs/dtrackctl/pkg/params"
	"github.com/venslabs/dtrackctl/pkg/sbom"
)

// Spec is the parameter schema of the create command.
var Spec = append(cmdutil.ConnectionSpec(cmdutil.ParamBaseURL, true), params.ArgumentSpec{
	{Name: "sbom_file_path", Type: params.TypeStr, Required: true, Help: "Path to the SBOM file"},
	{Name: "project", Type: params.TypeStr, Help: "Project identifier"},
	{Name: "auto_create", Type: params.TypeBool, Default: false, Help: "Automatically create the project"},
	{Name: "project_name", Type: params.TypeStr, Help: "Project name"},
	{Name: "project_version", Type: params.TypeStr, Help: "Project version"},
	{Name: "parent_name", Type: params.TypeStr, Help: "Parent project name"},
	{Name: "parent_version", Type: params.TypeStr, Help: "Parent project version"},
	{Name: "parent_uuid", Type: params.TypeStr, Help: "Parent project UUID"},
}...)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create --base-url URL --sbom-file-path FILE [flags]",
		Short: "Create a BOM through the legacy endpoint",
		Long: `Post an SBOM to /api/v1/bom on the legacy port.

Only an HTTP 200 counts as success. Prefer 'upload' unless the legacy
behavior is required.`,
		Example:               "  dtrackctl create --base-url http://dtrack.local --sbom-file-path sbom.cdx.json --project-name acme --project-version 1.0.0 --auto-create",
		Args:                  cobra.NoArgs,
		RunE:                  action,
		DisableFlagsInUseLine: true,
	}

	flags := cmd.Flags()
	Spec.RegisterFlags(flags)
	flags.Bool("validate", false, "Check that the file is a CycloneDX BOM before posting it")

	return cmd
}

func action(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	values, err := cmdutil.Values(cmd, Spec)
	if err != nil {
		return err
	}

	p := dtrack.CreateParams{
		Project:        params.String(values, "project"),
		AutoCreate:     params.Bool(values, "auto_create"),
		ProjectName:    params.String(values, "project_name"),
		ProjectVersion: params.String(values, "project_version"),
		ParentName:     params.String(values, "parent_name"),
		ParentVersion:  params.String(values, "parent_version"),
		ParentUUID:     params.String(values, "parent_uuid"),
		SBOMFilePath:   params.String(values, "sbom_file_path"),
	}

	if validate, _ := cmd.Flags().GetBool("validate"); validate {
		s, err := sbom.Inspect(p.SBOMFilePath)
		if err != nil {
			return cmdutil.Output(cmd, dtrack.Result{Failed: true, Message: fmt.Sprintf("Invalid SBOM file: %v", err)})
		}
		slog.InfoContext(ctx, "SBOM validated", "spec_version", s.SpecVersion, "components", s.Components)
	}

	client, err := cmdutil.NewClient(values)
	if err != nil {
		return err
	}
	return cmdutil.Output(cmd, client.CreateBOM(ctx, p))
}
