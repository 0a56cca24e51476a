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

	"github.com/incidenthq/sentry-relay/internal/sentry"
	"github.com/spf13/cobra"
)

func newProjectsCommand(configPath *string) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List the organization's projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := newClientFromConfig(*configPath)
			if err != nil {
				return err
			}

			return runProjects(cmd.Context(), client, jsonOut, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit raw records as NDJSON instead of rendering")

	return cmd
}

// runProjects executes the projects command against the given client.
func runProjects(ctx context.Context, client sentry.Client, jsonOut bool, stdout io.Writer) error {
	projects, err := client.ListProjects(ctx)
	if err != nil {
		return err
	}

	if jsonOut {
		writer, err := newOutputWriter("", stdout)
		if err != nil {
			return err
		}
		return writeRecords(writer, projects)
	}

	if len(projects) == 0 {
		fmt.Fprintln(stdout, "No projects found.")
		return nil
	}

	for _, project := range projects {
		line := project.GetString("slug")
		if name := project.GetString("name"); name != "" {
			line = fmt.Sprintf("%-32s %s", line, name)
		}
		if platform := project.GetString("platform"); platform != "" {
			line = fmt.Sprintf("%s (%s)", line, platform)
		}
		fmt.Fprintln(stdout, line)
	}

	return nil
}

func newOrgsCommand(configPath *string) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "orgs",
		Short: "List organizations the token has access to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := newClientFromConfig(*configPath)
			if err != nil {
				return err
			}

			return runOrgs(cmd.Context(), client, jsonOut, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit raw records as NDJSON instead of rendering")

	return cmd
}

// runOrgs executes the orgs command against the given client.
func runOrgs(ctx context.Context, client sentry.Client, jsonOut bool, stdout io.Writer) error {
	orgs, err := client.ListOrganizations(ctx)
	if err != nil {
		return err
	}

	if jsonOut {
		writer, err := newOutputWriter("", stdout)
		if err != nil {
			return err
		}
		return writeRecords(writer, orgs)
	}

	if len(orgs) == 0 {
		fmt.Fprintln(stdout, "No organizations found.")
		return nil
	}

	for _, org := range orgs {
		line := org.GetString("slug")
		if name := org.GetString("name"); name != "" {
			line = fmt.Sprintf("%-32s %s", line, name)
		}
		fmt.Fprintln(stdout, line)
	}

	return nil
}
