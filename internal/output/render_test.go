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

package output

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/incidenthq/sentry-relay/internal/sentry"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "2025-06-02T10:15:00Z", want: "2025-06-02 10:15:00 UTC"},
		{input: "2025-06-02T12:15:00+02:00", want: "2025-06-02 10:15:00 UTC"},
		{input: "not a timestamp", want: "not a timestamp"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		if got := FormatTimestamp(tt.input); got != tt.want {
			t.Errorf("FormatTimestamp(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestWriteIssueSummary(t *testing.T) {
	issue := sentry.Resource{
		"shortId":   "BILLING-SERVICE-26S",
		"title":     "NullPointerException in InvoiceWorker",
		"status":    "unresolved",
		"level":     "error",
		"count":     "1432",
		"userCount": float64(87),
		"firstSeen": "2025-06-01T08:30:00Z",
		"lastSeen":  "2025-06-02T10:15:00Z",
		"culprit":   "invoice.worker.process",
		"permalink": "https://acme.sentry.io/issues/6872665417/",
	}

	var buf bytes.Buffer
	WriteIssueSummary(&buf, issue, false)
	got := buf.String()

	for _, want := range []string{
		"BILLING-SERVICE-26S",
		"NullPointerException in InvoiceWorker",
		"Status: unresolved",
		"Count:      1,432",
		"Users:      87",
		"Culprit:    invoice.worker.process",
		"2025-06-01 08:30:00 UTC",
		"https://acme.sentry.io/issues/6872665417/",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestWriteIssueSummaryVerboseAssignee(t *testing.T) {
	issue := sentry.Resource{
		"shortId":    "X-1",
		"title":      "boom",
		"assignedTo": map[string]any{"name": "alice"},
	}

	var quiet, verbose bytes.Buffer
	WriteIssueSummary(&quiet, issue, false)
	WriteIssueSummary(&verbose, issue, true)

	if strings.Contains(quiet.String(), "alice") {
		t.Error("assignee shown without verbose")
	}
	if !strings.Contains(verbose.String(), "Assigned:   alice") {
		t.Errorf("verbose summary missing assignee:\n%s", verbose.String())
	}
}

func TestWriteEventSummaryCapsTags(t *testing.T) {
	tags := make([]any, 0, 15)
	for i := 0; i < 15; i++ {
		tags = append(tags, map[string]any{"key": fmt.Sprintf("tag%d", i), "value": "v"})
	}
	event := sentry.Resource{
		"eventID":     "a1b2c3",
		"dateCreated": "2025-06-02T10:15:00Z",
		"platform":    "python",
		"tags":        tags,
	}

	var buf bytes.Buffer
	WriteEventSummary(&buf, event)
	got := buf.String()

	if !strings.Contains(got, "tag9") {
		t.Errorf("summary missing tenth tag:\n%s", got)
	}
	if strings.Contains(got, "tag10") {
		t.Errorf("summary shows more than %d tags:\n%s", maxTagsShown, got)
	}
}

func TestWriteStackTraceShowsLastFiveFrames(t *testing.T) {
	frames := make([]any, 0, 8)
	for i := 0; i < 8; i++ {
		frames = append(frames, map[string]any{
			"filename": fmt.Sprintf("file%d.py", i),
			"function": fmt.Sprintf("fn%d", i),
			"lineNo":   float64(10 + i),
		})
	}
	event := sentry.Resource{
		"entries": []any{
			map[string]any{
				"type": "exception",
				"data": map[string]any{
					"values": []any{
						map[string]any{
							"stacktrace": map[string]any{"frames": frames},
						},
					},
				},
			},
		},
	}

	var buf bytes.Buffer
	WriteStackTrace(&buf, event)
	got := buf.String()

	if strings.Contains(got, "file2.py") {
		t.Errorf("stack trace shows frames before the last five:\n%s", got)
	}
	if !strings.Contains(got, "file7.py:17 in fn7") {
		t.Errorf("stack trace missing innermost frame:\n%s", got)
	}
}

func TestWriteStackTraceNoExceptionEntry(t *testing.T) {
	var buf bytes.Buffer
	WriteStackTrace(&buf, sentry.Resource{"entries": []any{}})
	if buf.Len() != 0 {
		t.Errorf("expected no output, got:\n%s", buf.String())
	}
}

func TestWriteIssuesFooter(t *testing.T) {
	issues := []sentry.Resource{
		{"status": "unresolved", "count": "1000"},
		{"status": "resolved", "count": "500"},
		{"status": "unresolved", "count": "34"},
	}

	var buf bytes.Buffer
	WriteIssuesFooter(&buf, issues)
	got := buf.String()

	if !strings.Contains(got, "3 issues") {
		t.Errorf("footer missing issue count:\n%s", got)
	}
	if !strings.Contains(got, "2 unresolved") {
		t.Errorf("footer missing unresolved count:\n%s", got)
	}
	if !strings.Contains(got, "1,534 total occurrences") {
		t.Errorf("footer missing grouped total:\n%s", got)
	}
}
