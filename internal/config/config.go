// Copyright 2025 IncidentHQ, Inc.
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for sentry-relay with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
//
// The package supports YAML configuration files and provides automatic
// discovery of configuration in standard locations. The credentials half
// of the file is written by 'sentry-relay init'.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	relayerrors "github.com/incidenthq/sentry-relay/internal/errors"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .sentry-relay.yaml (current directory)
//   - .sentry-relay.yml (current directory)
//   - ~/.sentry-relay/config.yaml
//   - ~/.sentry-relay/config.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		for _, path := range defaultPaths() {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// DefaultPath returns the location 'sentry-relay init' writes to.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".sentry-relay", "config.yaml")
}

func defaultPaths() []string {
	return []string{
		".sentry-relay.yaml",
		".sentry-relay.yml",
		filepath.Join(os.Getenv("HOME"), ".sentry-relay", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".sentry-relay", "config.yml"),
	}
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("SENTRY_API_ENDPOINT"); endpoint != "" {
		cfg.API.BaseURL = endpoint
	}
	if token := os.Getenv("SENTRY_AUTH_TOKEN"); token != "" {
		cfg.AuthToken = token
	}
	if org := os.Getenv("SENTRY_ORG"); org != "" {
		cfg.OrgSlug = org
	}
	if pageSize := os.Getenv("SENTRY_PAGE_SIZE"); pageSize != "" {
		if size, err := parsePositiveInt(pageSize); err == nil {
			cfg.Defaults.PageSize = size
		}
	}
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// Validate checks if the configuration contains valid values. It ensures
// the page size is within the tracker's limits and endpoints are not empty.
// This should be called after loading configuration to catch invalid
// settings early.
func (c *Config) Validate() error {
	if c.Defaults.PageSize <= 0 {
		return fmt.Errorf("default page size must be positive, got: %d", c.Defaults.PageSize)
	}
	if c.Defaults.PageSize > 100 {
		return fmt.Errorf("default page size %d exceeds the API limit of 100", c.Defaults.PageSize)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("API endpoint cannot be empty")
	}
	return nil
}

// RequireCredentials verifies that a token and organization are available.
// It fails before any operation begins; the fetch engine never sees a
// half-configured session.
func (c *Config) RequireCredentials() error {
	if strings.TrimSpace(c.AuthToken) == "" {
		return fmt.Errorf("no auth token found. Set SENTRY_AUTH_TOKEN or run 'sentry-relay init': %w", relayerrors.ErrNoConfig)
	}
	if strings.TrimSpace(c.OrgSlug) == "" {
		return fmt.Errorf("no organization found. Set SENTRY_ORG or run 'sentry-relay init': %w", relayerrors.ErrNoConfig)
	}
	return nil
}

// Save writes the configuration to path as YAML. The file is created with
// owner-only permissions since it holds the auth token.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
