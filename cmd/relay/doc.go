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

// Package main implements the sentry-relay command-line interface.
// This tool queries issues and events from a Sentry-compatible incident
// tracker, renders them for triage, and can stream raw records as NDJSON
// for further processing.
//
// The CLI supports:
//   - Listing issues for a project or across the organization, with
//     server-side filters (environment, first-seen window, raw search
//     query) and a local case-insensitive text filter
//   - Fetching one issue with its metadata and tag breakdown
//   - Fetching events for an issue, one page or the full cursor chain
//   - Updating issue state (status, assignee, seen/bookmark/subscribe)
//   - Interactive credential setup via 'sentry-relay init'
//
// Usage:
//
//	sentry-relay fetch-issues --project <slug> [flags]
//
// Example:
//
//	export SENTRY_AUTH_TOKEN=your_token
//	export SENTRY_ORG=acme
//	sentry-relay fetch-issues --project billing-service --environment production
//
// Exit codes:
//   - 0: Success
//   - 1: General error (including invalid input)
//   - 2: Authentication, authorization, or configuration error
//   - 3: Network error
package main
