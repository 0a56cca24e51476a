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
	"context"
	"io"

	"github.com/incidenthq/sentry-relay/internal/output"
	"github.com/incidenthq/sentry-relay/internal/sentry"
	"github.com/spf13/cobra"
)

func newFetchIssueCommand(configPath *string) *cobra.Command {
	var (
		jsonOut    bool
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "fetch-issue <issue-id>",
		Short: "Show one issue with metadata and tag breakdown",
		Long: `Fetch a single issue by its numeric ID or short ID (e.g.
BILLING-SERVICE-26S) and render its details, metadata and tags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := newClientFromConfig(*configPath)
			if err != nil {
				return err
			}

			return runFetchIssue(cmd.Context(), client, args[0], jsonOut, outputFile, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the raw record as NDJSON instead of rendering")
	cmd.Flags().StringVar(&outputFile, "output", "", "Write NDJSON to this file instead of stdout")

	return cmd
}

// runFetchIssue executes the fetch-issue command against the given client.
func runFetchIssue(ctx context.Context, client sentry.Client, issueID string, jsonOut bool, outputFile string, stdout io.Writer) error {
	issue, err := client.GetIssue(ctx, issueID)
	if err != nil {
		return err
	}

	if jsonOut || outputFile != "" {
		writer, err := newOutputWriter(outputFile, stdout)
		if err != nil {
			return err
		}
		return writeRecords(writer, []sentry.Resource{issue})
	}

	output.WriteIssueSummary(stdout, issue, true)
	output.WriteIssueDetails(stdout, issue)

	return nil
}
