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

	"github.com/incidenthq/sentry-relay/internal/output"
	"github.com/incidenthq/sentry-relay/internal/sentry"
	"github.com/spf13/cobra"
)

type fetchEventsOptions struct {
	limit      int
	latest     bool
	fetchAll   bool
	maxPages   int
	jsonOut    bool
	verbose    bool
	outputFile string
}

func newFetchEventsCommand(configPath *string) *cobra.Command {
	var opts fetchEventsOptions

	cmd := &cobra.Command{
		Use:   "fetch-events <issue-id>",
		Short: "Fetch events recorded for an issue",
		Long: `Fetch events for an issue by its numeric ID or short ID.

By default a single page of events is fetched. With --all the cursor chain
is followed until the tracker reports no further results; --max-pages bounds
the total number of page fetches (0 means unbounded). With --latest only the
most recent event is fetched and rendered with its stack trace.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := newClientFromConfig(*configPath)
			if err != nil {
				return err
			}

			return runFetchEvents(cmd.Context(), client, args[0], opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Events per page")
	cmd.Flags().BoolVar(&opts.latest, "latest", false, "Fetch only the most recent event")
	cmd.Flags().BoolVar(&opts.fetchAll, "all", false, "Follow the cursor chain to the last page")
	cmd.Flags().IntVar(&opts.maxPages, "max-pages", 0, "Maximum pages to fetch with --all (0 = unbounded)")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Emit raw records as NDJSON instead of rendering")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Include stack traces in rendered output")
	cmd.Flags().StringVar(&opts.outputFile, "output", "", "Write NDJSON to this file instead of stdout")

	return cmd
}

// runFetchEvents executes the fetch-events command against the given client.
func runFetchEvents(ctx context.Context, client sentry.Client, issueID string, opts fetchEventsOptions, stdout, stderr io.Writer) error {
	if opts.latest {
		return fetchLatestEvent(ctx, client, issueID, opts, stdout)
	}

	if opts.fetchAll {
		fmt.Fprintf(stderr, "Fetching all events for issue %s...", issueID)
	}

	events, err := client.ListIssueEvents(ctx, issueID, sentry.ListEventsOptions{
		Limit:    opts.limit,
		Paginate: opts.fetchAll,
		MaxPages: opts.maxPages,
	})
	if opts.fetchAll {
		fmt.Fprintf(stderr, "\r\033[K") // Clear progress line
	}
	if err != nil {
		return err
	}
	if opts.fetchAll {
		fmt.Fprintf(stderr, "Fetched %d events\n", len(events))
	}

	if opts.jsonOut || opts.outputFile != "" {
		writer, err := newOutputWriter(opts.outputFile, stdout)
		if err != nil {
			return err
		}
		return writeRecords(writer, events)
	}

	if len(events) == 0 {
		fmt.Fprintln(stdout, "No events found.")
		return nil
	}

	for _, event := range events {
		output.WriteEventSummary(stdout, event)
		if opts.verbose {
			output.WriteStackTrace(stdout, event)
		}
	}

	return nil
}

// fetchLatestEvent fetches and renders the most recent event for an issue.
// The stack trace is always shown since a single event is the whole output.
func fetchLatestEvent(ctx context.Context, client sentry.Client, issueID string, opts fetchEventsOptions, stdout io.Writer) error {
	event, err := client.LatestEvent(ctx, issueID)
	if err != nil {
		return err
	}

	if opts.jsonOut || opts.outputFile != "" {
		writer, err := newOutputWriter(opts.outputFile, stdout)
		if err != nil {
			return err
		}
		return writeRecords(writer, []sentry.Resource{event})
	}

	output.WriteEventSummary(stdout, event)
	output.WriteStackTrace(stdout, event)

	return nil
}
