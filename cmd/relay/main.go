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
	"errors"
	"fmt"
	"os"

	relayerrors "github.com/incidenthq/sentry-relay/internal/errors"
	"github.com/incidenthq/sentry-relay/pkg/version"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := newRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "sentry-relay",
		Short: "Query and triage issues from a Sentry-compatible tracker",
		Long: `Sentry Relay is a command-line client for Sentry-compatible incident
trackers. It lists and inspects issues and events, follows cursor-paginated
result sets, and streams raw records as NDJSON for scripting.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: auto-discover)")

	rootCmd.AddCommand(
		newInitCommand(),
		newOrgsCommand(&configPath),
		newProjectsCommand(&configPath),
		newFetchIssuesCommand(&configPath),
		newFetchIssueCommand(&configPath),
		newFetchEventsCommand(&configPath),
		newUpdateIssueCommand(&configPath),
	)

	return rootCmd
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	// Check for specific error types
	if errors.Is(err, relayerrors.ErrInvalidToken) ||
		errors.Is(err, relayerrors.ErrNotFound) ||
		errors.Is(err, relayerrors.ErrRateLimit) ||
		errors.Is(err, relayerrors.ErrNoConfig) {
		return 2 // Authentication/authorization/configuration errors
	}

	if errors.Is(err, relayerrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
