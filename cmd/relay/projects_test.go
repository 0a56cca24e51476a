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
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/incidenthq/sentry-relay/internal/sentry"
)

func TestRunProjects(t *testing.T) {
	mock := sentry.NewMockClient()
	var buf bytes.Buffer

	if err := runProjects(context.Background(), mock, false, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "billing-service") || !strings.Contains(out, "Billing Service") {
		t.Errorf("output missing project slug or name:\n%s", out)
	}
}

func TestRunProjectsEmpty(t *testing.T) {
	mock := sentry.NewMockClient()
	mock.Projects = nil
	var buf bytes.Buffer

	if err := runProjects(context.Background(), mock, false, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No projects found.") {
		t.Errorf("expected empty message, got:\n%s", buf.String())
	}
}

func TestRunOrgs(t *testing.T) {
	mock := sentry.NewMockClient()
	var buf bytes.Buffer

	if err := runOrgs(context.Background(), mock, false, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "acme") {
		t.Errorf("output missing organization slug:\n%s", buf.String())
	}
}

func TestRunOrgsJSON(t *testing.T) {
	mock := sentry.NewMockClient()
	var buf bytes.Buffer

	if err := runOrgs(context.Background(), mock, true, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"slug":"acme"`) {
		t.Errorf("NDJSON output missing record:\n%s", buf.String())
	}
}
