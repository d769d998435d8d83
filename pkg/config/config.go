package config

import (
	"fmt"
	"net/url"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/venslabs/dtrackctl/pkg/envutil"
	"github.com/venslabs/dtrackctl/pkg/params"
)

// Environment variables overriding the config file.
const (
	EnvURL         = "DTRACK_URL"
	EnvAPIKey      = "DTRACK_API_KEY"
	EnvVerifyCerts = "DTRACK_VERIFY_CERTS"
	EnvLegacyPort  = "DTRACK_LEGACY_PORT"
)

// Config represents the structure of the config file provided by users.
//
// Example YAML:
//
//	server:
//	  url: https://dtrack.example.com
//	  api_key: odt_xxx       # prefer $DTRACK_API_KEY
//	  verify_certs: true     # default true
//	  legacy_port: "8081"    # port used by read/create/update/delete
//
// Every field is optional; command-line flags take precedence, then the
// environment, then this file.
type Config struct {
	Server Server `yaml:"server"`
}

// Server holds the connection parameters.
type Server struct {
	URL         string        `yaml:"url,omitempty"`
	APIKey      params.Secret `yaml:"api_key,omitempty"`
	VerifyCerts *bool         `yaml:"verify_certs,omitempty"`
	LegacyPort  string        `yaml:"legacy_port,omitempty"`
}

// Load parses a config file from the given path and validates it.
// An empty path yields an empty Config.
func Load(path string) (*Config, error) {
	var c Config
	if path == "" {
		return &c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return &c, nil
}

// Validate checks the URL scheme when a URL is set.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return nil
	}
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return fmt.Errorf("server.url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.url must use http or https, got %q", c.Server.URL)
	}
	return nil
}

// ApplyEnv overrides the file values with the environment.
func (c *Config) ApplyEnv() {
	c.Server.URL = envutil.String(EnvURL, c.Server.URL)
	c.Server.APIKey = params.Secret(envutil.String(EnvAPIKey, c.Server.APIKey.Reveal()))
	c.Server.LegacyPort = envutil.String(EnvLegacyPort, c.Server.LegacyPort)
	verify := envutil.Bool(EnvVerifyCerts, c.Server.Verify())
	c.Server.VerifyCerts = &verify
}

// Verify reports whether TLS certificates must be verified. Defaults to true.
func (s Server) Verify() bool {
	if s.VerifyCerts == nil {
		return true
	}
	return *s.VerifyCerts
}
