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

// Package config types define the configuration structures used throughout
// sentry-relay. These types represent settings that can be loaded from
// YAML configuration files, environment variables, or command-line flags.
package config

// Config represents the complete configuration for sentry-relay.
// It consolidates settings from various sources and provides a unified
// interface for accessing configuration values throughout the application.
type Config struct {
	API       APIConfig      `yaml:"api"`
	AuthToken string         `yaml:"auth_token"`
	OrgSlug   string         `yaml:"org_slug"`
	Defaults  DefaultsConfig `yaml:"defaults"`
}

// APIConfig contains tracker-specific settings including the API root and
// the token-creation page opened during init. Both can be pointed at a
// self-hosted deployment.
type APIConfig struct {
	BaseURL  string `yaml:"base_url"`
	TokenURL string `yaml:"token_url"`
}

// DefaultsConfig contains default settings that apply to all fetch
// operations unless overridden by command-line flags.
type DefaultsConfig struct {
	PageSize    int    `yaml:"page_size"`
	StatsPeriod string `yaml:"stats_period"`
	Sort        string `yaml:"sort"`
}

// DefaultConfig returns a Config with sensible defaults suitable for the
// hosted tracker. Credentials are intentionally empty; they come from the
// config file, the environment, or 'sentry-relay init'.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:  "https://sentry.io/api/0",
			TokenURL: "https://sentry.io/settings/account/api/auth-tokens/",
		},
		Defaults: DefaultsConfig{
			PageSize:    50,
			StatsPeriod: "24h",
			Sort:        "date",
		},
	}
}
