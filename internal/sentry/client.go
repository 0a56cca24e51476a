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

package sentry

import "context"

// Client defines the interface for interacting with the tracker's API.
// This interface allows for easy mocking in tests.
type Client interface {
	// ListOrganizations returns every organization the token has access to.
	ListOrganizations(ctx context.Context) ([]Resource, error)

	// ListProjects returns the organization's projects.
	ListProjects(ctx context.Context) ([]Resource, error)

	// ListIssues returns a single page of issues for a project, or for the
	// whole organization when project is empty.
	ListIssues(ctx context.Context, project string, opts ListIssuesOptions) ([]Resource, error)

	// GetIssue returns one issue by numeric ID or short ID.
	GetIssue(ctx context.Context, issueID string) (Resource, error)

	// ListIssueEvents returns events for an issue. With opts.Paginate set
	// it follows the cursor chain to completion or to opts.MaxPages total
	// page fetches; otherwise it fetches a single page.
	ListIssueEvents(ctx context.Context, issueID string, opts ListEventsOptions) ([]Resource, error)

	// LatestEvent returns the most recent event recorded for an issue.
	LatestEvent(ctx context.Context, issueID string) (Resource, error)

	// UpdateIssue applies the non-nil fields of update to an issue and
	// returns the updated record.
	UpdateIssue(ctx context.Context, issueID string, update IssueUpdate) (Resource, error)
}
