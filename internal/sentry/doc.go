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

// Package sentry provides a client for a Sentry-compatible incident
// tracker's REST API. It covers issue and event retrieval with
// cursor-based pagination, server-side query composition, and a local
// text filter applied after fetching.
//
// The package includes:
//   - A Client interface covering the operations the relay performs
//   - A REST implementation with bearer-token authentication
//   - A pagination walker that follows Link-header continuations
//   - Mock client for testing
//
// Basic usage:
//
//	client := sentry.NewRESTClient("your-token", "your-org", sentry.DefaultBaseURL)
//	issues, err := client.ListIssues(ctx, "billing-service", sentry.ListIssuesOptions{
//	    StatsPeriod: "24h",
//	    Limit:       50,
//	})
//	if err != nil {
//	    // Handle error
//	}
//	for _, issue := range issues {
//	    // Process issue
//	}
package sentry
