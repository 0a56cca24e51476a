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
	"fmt"
	"io"

	relayerrors "github.com/incidenthq/sentry-relay/internal/errors"
	"github.com/incidenthq/sentry-relay/internal/sentry"
	"github.com/spf13/cobra"
)

// validStatuses are the status transitions the tracker's issue endpoint
// accepts.
var validStatuses = map[string]bool{
	"resolved":              true,
	"unresolved":            true,
	"ignored":               true,
	"resolvedInNextRelease": true,
}

func newUpdateIssueCommand(configPath *string) *cobra.Command {
	var (
		status     string
		assignedTo string
		hasSeen    bool
		bookmark   bool
		subscribe  bool
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "update-issue <issue-id>",
		Short: "Update an issue's status, assignee or flags",
		Long: `Update mutable fields of an issue. Only the flags you pass are sent;
everything else is left untouched.

Valid statuses: resolved, unresolved, ignored, resolvedInNextRelease.
Pass --assign "" to unassign.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var update sentry.IssueUpdate

			if cmd.Flags().Changed("status") {
				if !validStatuses[status] {
					return fmt.Errorf("invalid status %q, expected one of: resolved, unresolved, ignored, resolvedInNextRelease: %w",
						status, relayerrors.ErrInvalidInput)
				}
				update.Status = &status
			}
			if cmd.Flags().Changed("assign") {
				update.AssignedTo = &assignedTo
			}
			if cmd.Flags().Changed("seen") {
				update.HasSeen = &hasSeen
			}
			if cmd.Flags().Changed("bookmark") {
				update.IsBookmarked = &bookmark
			}
			if cmd.Flags().Changed("subscribe") {
				update.IsSubscribed = &subscribe
			}

			if update == (sentry.IssueUpdate{}) {
				return fmt.Errorf("nothing to update, pass at least one of --status, --assign, --seen, --bookmark, --subscribe: %w",
					relayerrors.ErrInvalidInput)
			}

			_, client, err := newClientFromConfig(*configPath)
			if err != nil {
				return err
			}

			return runUpdateIssue(cmd.Context(), client, args[0], update, jsonOut, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "New status for the issue")
	cmd.Flags().StringVar(&assignedTo, "assign", "", "Username or team to assign (empty to unassign)")
	cmd.Flags().BoolVar(&hasSeen, "seen", false, "Mark the issue as seen (--seen=false to unmark)")
	cmd.Flags().BoolVar(&bookmark, "bookmark", false, "Bookmark the issue (--bookmark=false to remove)")
	cmd.Flags().BoolVar(&subscribe, "subscribe", false, "Subscribe to the issue (--subscribe=false to unsubscribe)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the updated record as NDJSON instead of rendering")

	return cmd
}

// runUpdateIssue executes the update-issue command against the given client.
func runUpdateIssue(ctx context.Context, client sentry.Client, issueID string, update sentry.IssueUpdate, jsonOut bool, stdout io.Writer) error {
	updated, err := client.UpdateIssue(ctx, issueID, update)
	if err != nil {
		return err
	}

	if jsonOut {
		writer, err := newOutputWriter("", stdout)
		if err != nil {
			return err
		}
		return writeRecords(writer, []sentry.Resource{updated})
	}

	shortID := updated.GetString("shortId")
	if shortID == "" {
		shortID = issueID
	}
	fmt.Fprintf(stdout, "Updated %s", shortID)
	if status := updated.GetString("status"); status != "" {
		fmt.Fprintf(stdout, " (status: %s)", status)
	}
	fmt.Fprintln(stdout)

	return nil
}
