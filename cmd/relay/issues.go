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
	"github.com/incidenthq/sentry-relay/internal/output"
	"github.com/incidenthq/sentry-relay/internal/sentry"
	"github.com/spf13/cobra"
)

// validSortOrders are the sort values the tracker's issue endpoint accepts.
var validSortOrders = map[string]bool{
	"date":   true,
	"freq":   true,
	"new":    true,
	"trends": true,
	"user":   true,
}

type fetchIssuesOptions struct {
	project     string
	query       string
	textFilter  string
	statsPeriod string
	limit       int
	sort        string
	jsonOut     bool
	verbose     bool
	outputFile  string
}

func newFetchIssuesCommand(configPath *string) *cobra.Command {
	var (
		opts        fetchIssuesOptions
		environment string
		startAt     string
		endAt       string
		rawQuery    string
	)

	cmd := &cobra.Command{
		Use:   "fetch-issues",
		Short: "List issues for a project or the whole organization",
		Long: `List issues from the tracker and render them for triage.

Server-side filters (--environment, --start-at, --end-at, --query) are
combined into a single search expression. The --text-filter flag applies a
local case-insensitive substring match over the title, culprit and metadata
of the returned page; it never reduces what the server sends back.

Dates accept YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS and are treated as UTC.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := newClientFromConfig(*configPath)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("limit") {
				opts.limit = cfg.Defaults.PageSize
			}
			if !cmd.Flags().Changed("stats-period") {
				opts.statsPeriod = cfg.Defaults.StatsPeriod
			}
			if !cmd.Flags().Changed("sort") {
				opts.sort = cfg.Defaults.Sort
			}
			if !validSortOrders[opts.sort] {
				return fmt.Errorf("invalid sort %q, expected one of: date, freq, new, trends, user: %w",
					opts.sort, relayerrors.ErrInvalidInput)
			}

			query, err := sentry.BuildIssueQuery(sentry.IssueFilters{
				Environment: environment,
				StartAt:     startAt,
				EndAt:       endAt,
				Query:       rawQuery,
			})
			if err != nil {
				return err
			}
			opts.query = query

			return runFetchIssues(cmd.Context(), client, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "Project slug (default: all projects in the organization)")
	cmd.Flags().StringVar(&environment, "environment", "", "Filter by environment (e.g. production)")
	cmd.Flags().StringVar(&startAt, "start-at", "", "Only issues first seen after this date")
	cmd.Flags().StringVar(&endAt, "end-at", "", "Only issues first seen before this date")
	cmd.Flags().StringVar(&rawQuery, "query", "", "Raw search query, appended verbatim (e.g. 'is:unresolved')")
	cmd.Flags().StringVar(&opts.textFilter, "text-filter", "", "Local case-insensitive substring filter")
	cmd.Flags().StringVar(&opts.statsPeriod, "stats-period", "", "Stats window for per-issue counts (e.g. 24h, 14d)")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Maximum number of issues to return")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Sort order: date, freq, new, trends or user")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Emit raw records as NDJSON instead of rendering")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show assignee and extra detail per issue")
	cmd.Flags().StringVar(&opts.outputFile, "output", "", "Write NDJSON to this file instead of stdout")

	return cmd
}

// runFetchIssues executes the fetch-issues command against the given client.
func runFetchIssues(ctx context.Context, client sentry.Client, opts fetchIssuesOptions, stdout io.Writer) error {
	issues, err := client.ListIssues(ctx, opts.project, sentry.ListIssuesOptions{
		StatsPeriod: opts.statsPeriod,
		Limit:       opts.limit,
		Sort:        opts.sort,
		Query:       opts.query,
	})
	if err != nil {
		return err
	}

	if opts.textFilter != "" {
		issues = sentry.FilterByText(issues, opts.textFilter)
	}

	if opts.jsonOut || opts.outputFile != "" {
		writer, err := newOutputWriter(opts.outputFile, stdout)
		if err != nil {
			return err
		}
		return writeRecords(writer, issues)
	}

	if len(issues) == 0 {
		fmt.Fprintln(stdout, "No issues found.")
		return nil
	}

	for _, issue := range issues {
		output.WriteIssueSummary(stdout, issue, opts.verbose)
	}
	output.WriteIssuesFooter(stdout, issues)

	return nil
}
