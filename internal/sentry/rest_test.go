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

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	relayerrors "github.com/incidenthq/sentry-relay/internal/errors"
)

func TestRESTClientRequestHeaders(t *testing.T) {
	var gotAuth, gotContentType, gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotUserAgent = r.Header.Get("User-Agent")
		json.NewEncoder(w).Encode([]Resource{})
	}))
	defer server.Close()

	client := NewRESTClient("test-token", "acme", server.URL)
	if _, err := client.ListProjects(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer test-token")
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want %q", gotContentType, "application/json")
	}
	if !strings.HasPrefix(gotUserAgent, "sentry-relay/") {
		t.Errorf("User-Agent = %q, want sentry-relay/<version>", gotUserAgent)
	}
}

func TestRESTClientStatusErrors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantSentinel error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"detail": "Invalid token"}`, wantSentinel: relayerrors.ErrInvalidToken},
		{name: "forbidden", status: http.StatusForbidden, body: `{"detail": "You do not have permission"}`, wantSentinel: relayerrors.ErrInvalidToken},
		{name: "not found", status: http.StatusNotFound, body: `{"detail": "The requested resource does not exist"}`, wantSentinel: relayerrors.ErrNotFound},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"detail": "Rate limit exceeded"}`, wantSentinel: relayerrors.ErrRateLimit},
		{name: "server error", status: http.StatusInternalServerError, body: "upstream exploded", wantSentinel: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewRESTClient("test-token", "acme", server.URL)
			_, err := client.GetIssue(context.Background(), "6872665417")
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var httpErr *relayerrors.HTTPError
			if !errors.As(err, &httpErr) {
				t.Fatalf("expected *HTTPError, got %T: %v", err, err)
			}
			if httpErr.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", httpErr.StatusCode, tt.status)
			}
			if !strings.Contains(httpErr.Body, strings.TrimSpace(tt.body)) {
				t.Errorf("body = %q, want it to contain %q", httpErr.Body, tt.body)
			}
			if tt.wantSentinel != nil && !errors.Is(err, tt.wantSentinel) {
				t.Errorf("errors.Is(err, %v) = false, want true", tt.wantSentinel)
			}
		})
	}
}

func TestRESTClientNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	client := NewRESTClient("test-token", "acme", server.URL)
	_, err := client.ListProjects(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, relayerrors.ErrNetworkFailure) {
		t.Errorf("expected ErrNetworkFailure, got %v", err)
	}
}

func TestListIssuesRequestShape(t *testing.T) {
	tests := []struct {
		name       string
		project    string
		opts       ListIssuesOptions
		wantPath   string
		wantParams map[string]string
		omitParams []string
	}{
		{
			name:     "project issues with defaults",
			project:  "billing-service",
			opts:     ListIssuesOptions{},
			wantPath: "/projects/acme/billing-service/issues/",
			wantParams: map[string]string{
				"statsPeriod": "24h",
				"limit":       "100",
				"sort":        "date",
			},
			omitParams: []string{"query"},
		},
		{
			name:    "explicit options and query",
			project: "sub2",
			opts: ListIssuesOptions{
				StatsPeriod: "14d",
				Limit:       20,
				Sort:        "freq",
				Query:       "environment:production is:unresolved",
			},
			wantPath: "/projects/acme/sub2/issues/",
			wantParams: map[string]string{
				"statsPeriod": "14d",
				"limit":       "20",
				"sort":        "freq",
				"query":       "environment:production is:unresolved",
			},
		},
		{
			name:     "organization-wide when project empty",
			project:  "",
			opts:     ListIssuesOptions{},
			wantPath: "/organizations/acme/issues/",
			wantParams: map[string]string{
				"statsPeriod": "24h",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			var gotQuery url.Values

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = r.URL.Query()
				json.NewEncoder(w).Encode([]Resource{})
			}))
			defer server.Close()

			client := NewRESTClient("test-token", "acme", server.URL)
			if _, err := client.ListIssues(context.Background(), tt.project, tt.opts); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if gotPath != tt.wantPath {
				t.Errorf("path = %q, want %q", gotPath, tt.wantPath)
			}
			for key, want := range tt.wantParams {
				if got := gotQuery.Get(key); got != want {
					t.Errorf("param %s = %q, want %q", key, got, want)
				}
			}
			for _, key := range tt.omitParams {
				if _, present := gotQuery[key]; present {
					t.Errorf("param %s should be omitted, got %q", key, gotQuery[key])
				}
			}
		})
	}
}

func TestUpdateIssueSendsOnlySetFields(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(Resource{"id": "123", "status": "resolved"})
	}))
	defer server.Close()

	status := "resolved"
	seen := true

	client := NewRESTClient("test-token", "acme", server.URL)
	updated, err := client.UpdateIssue(context.Background(), "123", IssueUpdate{
		Status:  &status,
		HasSeen: &seen,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodPut {
		t.Errorf("method = %s, want PUT", gotMethod)
	}
	if gotPath != "/issues/123/" {
		t.Errorf("path = %q, want %q", gotPath, "/issues/123/")
	}
	if gotBody["status"] != "resolved" {
		t.Errorf("body status = %v, want resolved", gotBody["status"])
	}
	if gotBody["hasSeen"] != true {
		t.Errorf("body hasSeen = %v, want true", gotBody["hasSeen"])
	}
	for _, key := range []string{"assignedTo", "isBookmarked", "isSubscribed"} {
		if _, present := gotBody[key]; present {
			t.Errorf("body should omit %s, got %v", key, gotBody[key])
		}
	}
	if updated.GetString("status") != "resolved" {
		t.Errorf("updated status = %q, want resolved", updated.GetString("status"))
	}
}

func TestLatestEventPath(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(Resource{"eventID": "a1b2c3"})
	}))
	defer server.Close()

	client := NewRESTClient("test-token", "acme", server.URL)
	event, err := client.LatestEvent(context.Background(), "6872665417")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/issues/6872665417/events/latest/" {
		t.Errorf("path = %q, want %q", gotPath, "/issues/6872665417/events/latest/")
	}
	if event.GetString("eventID") != "a1b2c3" {
		t.Errorf("eventID = %q, want a1b2c3", event.GetString("eventID"))
	}
}

func TestListIssueEventsSinglePageIgnoresLink(t *testing.T) {
	// Without Paginate, the next link is never followed even when present.
	calls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Link", `<http://unreachable.invalid/?cursor=0:1:0>; rel="next"; results="true"`)
		json.NewEncoder(w).Encode([]Resource{{"eventID": "only"}})
	}))
	defer server.Close()

	client := NewRESTClient("test-token", "acme", server.URL)
	events, err := client.ListIssueEvents(context.Background(), "123", ListEventsOptions{Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 event, got %d", len(events))
	}
}
