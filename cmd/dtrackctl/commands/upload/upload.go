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

package upload

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/venslabs/dtrackctl/cmd/dtrackctl/commands/cmdutil"
	"github.com/venslabs/dtrackctl/pkg/dtrack"
	"github.com/venslabs/dtrackctl/pkg/params"
	"github.com/venslabs/dtrackctl/pkg/sbom"
)

// Spec is the parameter schema of the upload command.
var Spec = append(cmdutil.ConnectionSpec(cmdutil.ParamAPIURL, false), params.ArgumentSpec{
	{Name: "project_uuid", Type: params.TypeStr, Help: "UUID of an existing project"},
	{Name: "project_name", Type: params.TypeStr, Help: "Project name, used with --auto-create when --project-uuid is omitted"},
	{Name: "project_version", Type: params.TypeStr, Help: "Project version, used with --auto-create when --project-uuid is omitted"},
	{Name: "project_tags", Type: params.TypeStr, Help: "Comma-separated project tags"},
	{Name: "parent_name", Type: params.TypeStr, Help: "Parent project name"},
	{Name: "parent_version", Type: params.TypeStr, Help: "Parent project version"},
	{Name: "parent_uuid", Type: params.TypeStr, Help: "Parent project UUID"},
	{Name: "auto_create", Type: params.TypeBool, Default: false, Help: "Create the project if it does not exist"},
	{Name: "is_latest", Type: params.TypeBool, Default: false, Help: "Mark this BOM upload as the latest project version"},
	{Name: "bom_file", Type: params.TypePath, Required: true, Help: "Path to the SBOM file to upload"},
}...)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload --api-url URL --bom-file FILE [flags]",
		Short: "Upload an SBOM file to Dependency-Track",
		Long: `Upload an SBOM to /api/v1/bom as multipart/form-data.

The target project is either an existing one (--project-uuid), or one identified
by --project-name and --project-version that the server creates when --auto-create
is set. Optional fields left empty are not sent.`,
		Example:               Example(),
		Args:                  cobra.NoArgs,
		RunE:                  action,
		DisableFlagsInUseLine: true,
	}

	flags := cmd.Flags()
	Spec.RegisterFlags(flags)
	flags.Bool("validate", false, "Check that the file is a CycloneDX BOM before uploading")

	return cmd
}

func Example() string {
	return `  export DTRACK_API_KEY=...

  # Upload to an existing project
  dtrackctl upload --api-url https://dtrack.example.com --project-uuid 0b1c... --bom-file sbom.cdx.json

  # Create the project on the fly and mark the upload as latest
  dtrackctl upload --api-url https://dtrack.example.com --auto-create \
    --project-name acme --project-version 4.13.2 --is-latest --bom-file sbom.cdx.json
`
}

func action(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	values, err := cmdutil.Values(cmd, Spec)
	if err != nil {
		return err
	}

	p := dtrack.UploadParams{
		ProjectUUID:    params.String(values, "project_uuid"),
		ProjectName:    params.String(values, "project_name"),
		ProjectVersion: params.String(values, "project_version"),
		ProjectTags:    params.String(values, "project_tags"),
		ParentName:     params.String(values, "parent_name"),
		ParentVersion:  params.String(values, "parent_version"),
		ParentUUID:     params.String(values, "parent_uuid"),
		AutoCreate:     params.Bool(values, "auto_create"),
		IsLatest:       params.Bool(values, "is_latest"),
		BOMFile:        params.String(values, "bom_file"),
	}

	if validate, _ := cmd.Flags().GetBool("validate"); validate {
		s, err := sbom.Inspect(p.BOMFile)
		if err != nil {
			return cmdutil.Output(cmd, dtrack.Result{Failed: true, Msg: fmt.Sprintf("Invalid SBOM file: %v", err)})
		}
		slog.InfoContext(ctx, "SBOM validated", "spec_version", s.SpecVersion, "components", s.Components, "ecosystems", s.Ecosystems)
	}

	client, err := cmdutil.NewClient(values)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "Uploading SBOM", "file", p.BOMFile)
	return cmdutil.Output(cmd, client.UploadBOM(ctx, p))
}
