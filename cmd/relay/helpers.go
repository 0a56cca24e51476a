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

package main

import (
	"fmt"
	"io"

	"github.com/incidenthq/sentry-relay/internal/config"
	"github.com/incidenthq/sentry-relay/internal/output"
	"github.com/incidenthq/sentry-relay/internal/sentry"
)

// newClientFromConfig loads configuration, verifies credentials are present
// and returns an API client. Every command that talks to the tracker goes
// through here, so a half-configured session fails before any request.
func newClientFromConfig(configPath string) (*config.Config, sentry.Client, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if err := cfg.RequireCredentials(); err != nil {
		return nil, nil, err
	}

	return cfg, sentry.NewRESTClient(cfg.AuthToken, cfg.OrgSlug, cfg.API.BaseURL), nil
}

// newOutputWriter returns an NDJSON writer for the given destination.
// An empty path means stdout.
func newOutputWriter(outputFile string, stdout io.Writer) (output.OutputWriter, error) {
	if outputFile == "" {
		return output.NewWriter(stdout), nil
	}
	writer, err := output.NewFileWriter(outputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return writer, nil
}

// writeRecords streams records through the writer and closes it.
func writeRecords(writer output.OutputWriter, records []sentry.Resource) error {
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			writer.Close()
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	return writer.Close()
}
