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
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/incidenthq/sentry-relay/internal/sentry"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// grouped renders large counts with thousands separators.
var grouped = message.NewPrinter(language.English)

const rule = "================================================================================"

const maxTagsShown = 10

// FormatTimestamp converts the tracker's ISO-8601 timestamps to a compact
// UTC form. Unparsable input is shown verbatim.
func FormatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}

// asCount converts the tracker's numeric fields, which arrive as strings or
// JSON numbers depending on the endpoint. Anything else reads as zero.
func asCount(v any) int {
	switch n := v.(type) {
	case string:
		i, _ := strconv.Atoi(n)
		return i
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

// WriteIssueSummary renders one issue as a human-readable block.
func WriteIssueSummary(w io.Writer, issue sentry.Resource, verbose bool) {
	level := issue.GetString("level")
	if level == "" {
		level = "n/a"
	}

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "ID: %s | Status: %s | Level: %s\n", issue.GetString("shortId"), issue.GetString("status"), level)
	fmt.Fprintf(w, "%s\n", rule)
	fmt.Fprintf(w, "\n%s\n\n", issue.GetString("title"))

	grouped.Fprintf(w, "Count:      %d\n", asCount(issue["count"]))
	grouped.Fprintf(w, "Users:      %d\n", asCount(issue["userCount"]))
	fmt.Fprintf(w, "First Seen: %s\n", FormatTimestamp(issue.GetString("firstSeen")))
	fmt.Fprintf(w, "Last Seen:  %s\n", FormatTimestamp(issue.GetString("lastSeen")))

	if culprit := issue.GetString("culprit"); culprit != "" {
		fmt.Fprintf(w, "Culprit:    %s\n", culprit)
	}

	if verbose {
		if assigned, ok := issue["assignedTo"].(map[string]any); ok {
			if name, ok := assigned["name"].(string); ok && name != "" {
				fmt.Fprintf(w, "Assigned:   %s\n", name)
			}
		}
	}

	fmt.Fprintf(w, "\nLink: %s\n", issue.GetString("permalink"))
}

// WriteIssueDetails renders the metadata and tag breakdown shown by
// fetch-issue.
func WriteIssueDetails(w io.Writer, issue sentry.Resource) {
	if metadata := issue.Metadata(); len(metadata) > 0 {
		fmt.Fprintf(w, "\n%s\nMetadata:\n%s\n", rule, rule)
		fmt.Fprintf(w, "Type:     %s\n", stringOr(metadata["type"], "n/a"))
		fmt.Fprintf(w, "Value:    %s\n", stringOr(metadata["value"], "n/a"))
		if filename, ok := metadata["filename"].(string); ok && filename != "" {
			fmt.Fprintf(w, "File:     %s\n", filename)
		}
		if function, ok := metadata["function"].(string); ok && function != "" {
			fmt.Fprintf(w, "Function: %s\n", function)
		}
	}

	tags, _ := issue["tags"].([]any)
	if len(tags) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\nTags:\n%s\n", rule, rule)
	for _, raw := range tags {
		tag, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %s: (%d values)\n", stringOr(tag["key"], "?"), asCount(tag["totalValues"]))
	}
}

// WriteEventSummary renders one event as a human-readable block.
func WriteEventSummary(w io.Writer, event sentry.Resource) {
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "Event ID: %s\n", stringOr(event["eventID"], "n/a"))
	fmt.Fprintf(w, "%s\n", rule)
	fmt.Fprintf(w, "Date:     %s\n", FormatTimestamp(event.GetString("dateCreated")))
	fmt.Fprintf(w, "Platform: %s\n", stringOr(event["platform"], "n/a"))

	if user, ok := event["user"].(map[string]any); ok {
		name := stringOr(user["username"], "")
		if name == "" {
			name = stringOr(user["email"], "")
		}
		if name == "" {
			name = stringOr(user["id"], "n/a")
		}
		fmt.Fprintf(w, "User:     %s\n", name)
	}

	tags, _ := event["tags"].([]any)
	if len(tags) == 0 {
		return
	}
	fmt.Fprintf(w, "\nTags:\n")
	for i, raw := range tags {
		if i >= maxTagsShown {
			break
		}
		tag, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %s: %s\n", stringOr(tag["key"], "?"), stringOr(tag["value"], ""))
	}
}

// WriteStackTrace renders the last frames of the event's first exception
// entry, innermost last. Events without an exception entry render nothing.
func WriteStackTrace(w io.Writer, event sentry.Resource) {
	frames := exceptionFrames(event)
	if len(frames) == 0 {
		return
	}

	const lastFrames = 5
	if len(frames) > lastFrames {
		frames = frames[len(frames)-lastFrames:]
	}

	fmt.Fprintf(w, "\n%s\nStack Trace (last %d frames):\n%s\n", rule, lastFrames, rule)
	for _, raw := range frames {
		frame, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %s:%d in %s\n",
			stringOr(frame["filename"], "?"),
			asCount(frame["lineNo"]),
			stringOr(frame["function"], "?"))
	}
}

// exceptionFrames digs the stack frames out of the event's entries list.
func exceptionFrames(event sentry.Resource) []any {
	entries, _ := event["entries"].([]any)
	for _, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok || entry["type"] != "exception" {
			continue
		}
		data, _ := entry["data"].(map[string]any)
		values, _ := data["values"].([]any)
		if len(values) == 0 {
			return nil
		}
		exc, _ := values[0].(map[string]any)
		stacktrace, _ := exc["stacktrace"].(map[string]any)
		frames, _ := stacktrace["frames"].([]any)
		return frames
	}
	return nil
}

// WriteIssuesFooter renders the closing summary line for a listing.
func WriteIssuesFooter(w io.Writer, issues []sentry.Resource) {
	total := 0
	unresolved := 0
	for _, issue := range issues {
		total += asCount(issue["count"])
		if issue.GetString("status") == "unresolved" {
			unresolved++
		}
	}

	fmt.Fprintf(w, "\n%s\n", rule)
	grouped.Fprintf(w, "Summary: %d issues | %d unresolved | %d total occurrences\n", len(issues), unresolved, total)
	fmt.Fprintf(w, "%s\n", rule)
}

// stringOr coerces v to its string form, falling back when absent or empty.
func stringOr(v any, fallback string) string {
	if v == nil {
		return fallback
	}
	s := fmt.Sprint(v)
	if s == "" {
		return fallback
	}
	return s
}
