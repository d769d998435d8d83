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

// Package cmdutil binds operation parameters to cobra flags, merges them
// with the config file and the environment, and prints results.
package cmdutil

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/venslabs/dtrackctl/pkg/config"
	"github.com/venslabs/dtrackctl/pkg/dtrack"
	"github.com/venslabs/dtrackctl/pkg/outputhandler"
	"github.com/venslabs/dtrackctl/pkg/params"
)

// Names of the persistent flags registered on the root command.
const (
	FlagConfigFile   = "config-file"
	FlagOutputFormat = "output-format"
)

// Common parameter names.
const (
	ParamBaseURL     = "base_url"
	ParamAPIURL      = "api_url"
	ParamAPIKey      = "api_key"
	ParamVerifyCerts = "verify_certs"
	ParamLegacyPort  = "legacy_port"
)

// ErrFailed is returned after a failed result has been printed.
var ErrFailed = errors.New("operation failed")

// ConnectionSpec returns the connection parameters. urlParam is either
// ParamBaseURL or ParamAPIURL; legacy adds the legacy port parameter.
func ConnectionSpec(urlParam string, legacy bool) params.ArgumentSpec {
	spec := params.ArgumentSpec{
		{Name: urlParam, Type: params.TypeStr, Required: true, Help: "Base URL of the Dependency-Track API server [$" + config.EnvURL + "]"},
		{Name: ParamAPIKey, Type: params.TypeStr, Required: true, NoLog: true, Help: "API key sent in the X-Api-Key header [$" + config.EnvAPIKey + "]"},
		{Name: ParamVerifyCerts, Type: params.TypeBool, Default: true, Help: "Verify the server TLS certificate [$" + config.EnvVerifyCerts + "]"},
	}
	if legacy {
		spec = append(spec, params.Param{
			Name: ParamLegacyPort, Type: params.TypeStr,
			Help: fmt.Sprintf("Port appended to the base URL (default %s) [$%s]", dtrack.DefaultLegacyPort, config.EnvLegacyPort),
		})
	}
	return spec
}

// Values reads the parameters of spec from the command flags, fills the
// connection parameters left unset from the config file and the
// environment, and validates the result.
func Values(cmd *cobra.Command, spec params.ArgumentSpec) (map[string]any, error) {
	flags := cmd.Flags()
	values, err := spec.Values(flags)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(stringFlag(cmd, FlagConfigFile))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	cfg.ApplyEnv()

	for _, name := range []string{ParamBaseURL, ParamAPIURL} {
		if _, ok := spec.Lookup(name); ok && params.String(values, name) == "" && cfg.Server.URL != "" {
			values[name] = cfg.Server.URL
		}
	}
	if params.String(values, ParamAPIKey) == "" && cfg.Server.APIKey != "" {
		values[ParamAPIKey] = cfg.Server.APIKey.Reveal()
	}
	if _, ok := spec.Lookup(ParamVerifyCerts); ok && !flags.Changed("verify-certs") {
		values[ParamVerifyCerts] = cfg.Server.Verify()
	}
	if _, ok := spec.Lookup(ParamLegacyPort); ok && params.String(values, ParamLegacyPort) == "" && cfg.Server.LegacyPort != "" {
		values[ParamLegacyPort] = cfg.Server.LegacyPort
	}

	if err := spec.Validate(values); err != nil {
		return nil, err
	}
	slog.DebugContext(cmd.Context(), "Resolved parameters", "params", spec.Redact(values))
	return values, nil
}

// NewClient builds a client from resolved values.
func NewClient(values map[string]any) (*dtrack.Client, error) {
	baseURL := params.String(values, ParamBaseURL)
	if baseURL == "" {
		baseURL = params.String(values, ParamAPIURL)
	}
	verify := true
	if v, ok := values[ParamVerifyCerts].(bool); ok {
		verify = v
	}
	return dtrack.New(dtrack.Options{
		BaseURL:            baseURL,
		APIKey:             params.Secret(params.String(values, ParamAPIKey)),
		InsecureSkipVerify: !verify,
		LegacyPort:         params.String(values, ParamLegacyPort),
	})
}

// Output prints r in the selected output format and returns ErrFailed when
// r reports a failure.
func Output(cmd *cobra.Command, r dtrack.Result) error {
	h, err := outputhandler.New(stringFlag(cmd, FlagOutputFormat), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := h.HandleResult(r); err != nil {
		return err
	}
	if err := h.Close(); err != nil {
		return err
	}
	if r.Failed {
		return ErrFailed
	}
	return nil
}

// stringFlag returns the value of an inherited flag, or "" when the command
// runs without the root command.
func stringFlag(cmd *cobra.Command, name string) string {
	f := cmd.Flags().Lookup(name)
	if f == nil {
		return ""
	}
	return f.Value.String()
}
