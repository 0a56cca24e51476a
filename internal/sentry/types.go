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

// Resource is one issue or event record as returned by the tracker API.
// The client treats it as opaque: a handful of fields are read for
// filtering and display, and it is never mutated.
type Resource map[string]any

// GetString returns the named top-level field as a string. Missing or
// non-string fields read as the empty string.
func (r Resource) GetString(key string) string {
	s, _ := r[key].(string)
	return s
}

// Metadata returns the nested metadata object, or nil when absent.
func (r Resource) Metadata() map[string]any {
	m, _ := r["metadata"].(map[string]any)
	return m
}

// PageLink is the continuation target extracted from a response's Link
// header. HasMore is true only when the link is explicitly marked with
// results="true"; anything else means the current page is the last.
type PageLink struct {
	URL     string
	HasMore bool
}

// IssueFilters holds the server-side filter criteria combined by
// BuildIssueQuery. StartAt and EndAt are raw user input; they are parsed
// and validated before any network call.
type IssueFilters struct {
	Environment string
	StartAt     string
	EndAt       string
	Query       string
}

// ListIssuesOptions configures a single-page issue listing.
type ListIssuesOptions struct {
	// StatsPeriod is the window for per-issue stats (e.g. "24h", "14d").
	// Defaults to "24h".
	StatsPeriod string

	// Limit is the maximum number of results per page.
	// Defaults to 100 if not specified.
	Limit int

	// Sort is the server-side sort order: date, freq, new, trends or user.
	// Defaults to "date".
	Sort string

	// Query is the composed search expression. Empty means the query
	// parameter is omitted entirely.
	Query string
}

// ListEventsOptions configures event retrieval for an issue.
type ListEventsOptions struct {
	// Limit is the page size sent to the tracker.
	// Defaults to 100 if not specified.
	Limit int

	// Paginate walks the cursor chain instead of fetching one page.
	Paginate bool

	// MaxPages bounds the total number of page fetches when paginating.
	// Zero or negative means unbounded.
	MaxPages int
}

// IssueUpdate carries the mutable issue fields for UpdateIssue.
// Nil fields are omitted from the request body.
type IssueUpdate struct {
	Status       *string
	AssignedTo   *string
	HasSeen      *bool
	IsBookmarked *bool
	IsSubscribed *bool
}

// Default values for fetch operations
const (
	defaultPageSize    = 100
	defaultStatsPeriod = "24h"
	defaultSortOrder   = "date"
)
