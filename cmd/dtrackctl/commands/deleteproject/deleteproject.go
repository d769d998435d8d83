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

package deleteproject

import (
	"github.com/spf13/cobra"

	"github.com/venslabs/dtrackctl/cmd/dtrackctl/commands/cmdutil"
	"github.com/venslabs/dtrackctl/pkg/params"
)

var Spec = append(cmdutil.ConnectionSpec(cmdutil.ParamBaseURL, true), params.Param{
	Name: "uuid", Type: params.TypeStr, Required: true, Help: "UUID of the project to delete",
})

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "delete --base-url URL --uuid UUID [flags]",
		Short:                 "Delete a project and its BOM",
		Long:                  "Delete a project. Only an HTTP 200 response is reported as success.",
		Example:               "  dtrackctl delete --base-url http://dtrack.local --uuid 0b1c...",
		Args:                  cobra.NoArgs,
		RunE:                  action,
		DisableFlagsInUseLine: true,
	}
	Spec.RegisterFlags(cmd.Flags())
	return cmd
}

func action(cmd *cobra.Command, args []string) error {
	values, err := cmdutil.Values(cmd, Spec)
	if err != nil {
		return err
	}
	client, err := cmdutil.NewClient(values)
	if err != nil {
		return err
	}
	r := client.DeleteProject(cmd.Context(), params.String(values, "uuid"))
	r.OriginalMessage = Spec.Redact(values)
	return cmdutil.Output(cmd, r)
}
