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

package update

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/venslabs/dtrackctl/cmd/dtrackctl/commands/cmdutil"
	"github.com/venslabs/dtrackctl/pkg/dtrack"
	"github.com/venslabs/dtrackctl/pkg/params"
)

// Spec is the parameter schema of the update command. The body can also be
// given with --body-file, which is not part of the echoed parameters.
var Spec = append(cmdutil.ConnectionSpec(cmdutil.ParamBaseURL, true), params.Param{
	Name: "body", Type: params.TypeDict, Help: "Request body as an inline JSON object",
})

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update --base-url URL (--body JSON | --body-file FILE) [flags]",
		Short: "PUT a JSON BOM body to Dependency-Track",
		Long: `PUT a JSON body to /api/v1/bom on the legacy port and print the decoded
response as-is. The response status is not inspected.`,
		Example: `  jq -n --arg bom "$(base64 -w0 sbom.cdx.json)" '{project: "0b1c...", bom: $bom}' > body.json
  dtrackctl update --base-url http://dtrack.local --body-file body.json`,
		Args:                  cobra.NoArgs,
		RunE:                  action,
		DisableFlagsInUseLine: true,
	}
	flags := cmd.Flags()
	Spec.RegisterFlags(flags)
	flags.String("body-file", "", "Path to a file holding the JSON request body")
	cmd.MarkFlagsMutuallyExclusive("body", "body-file")
	return cmd
}

func action(cmd *cobra.Command, args []string) error {
	values, err := cmdutil.Values(cmd, Spec)
	if err != nil {
		return err
	}

	body, ok := values["body"].(map[string]any)
	if !ok {
		bodyFile, _ := cmd.Flags().GetString("body-file")
		if bodyFile == "" {
			return fmt.Errorf("either --body or --body-file is required")
		}
		if body, err = loadBody(bodyFile); err != nil {
			return err
		}
	}

	client, err := cmdutil.NewClient(values)
	if err != nil {
		return err
	}
	resp, err := client.UpdateBOM(cmd.Context(), body)
	if err != nil {
		return err
	}
	return cmdutil.Output(cmd, dtrack.Result{
		Message:         resp,
		OriginalMessage: Spec.Redact(values),
	})
}

func loadBody(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read body file: %w", err)
	}
	var body map[string]any
	if err := json.Unmarshal(b, &body); err != nil {
		return nil, fmt.Errorf("body file %q must hold a JSON object: %w", path, err)
	}
	return body, nil
}
