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
	"fmt"
	"strings"
	"time"

	relayerrors "github.com/incidenthq/sentry-relay/internal/errors"
)

// queryDateFormat is the timestamp form the tracker's firstSeen filter
// accepts. The UTC marker is appended literally; the tracker does not take
// numeric zone offsets here.
const queryDateFormat = "2006-01-02T15:04:05"

// dateInputLayouts are the accepted forms for --start-at and --end-at.
// A bare date reads as midnight.
var dateInputLayouts = []string{"2006-01-02T15:04:05", "2006-01-02"}

// BuildIssueQuery combines independent filter criteria into a single
// space-joined search expression. Fragments appear in fixed order:
// environment, firstSeen lower bound, firstSeen upper bound, then the raw
// query verbatim. It returns the empty string when no criteria were
// supplied, so the caller omits the query parameter entirely.
//
// A malformed date fails here, before any network call is made.
func BuildIssueQuery(filters IssueFilters) (string, error) {
	var parts []string

	if filters.Environment != "" {
		parts = append(parts, "environment:"+filters.Environment)
	}

	if filters.StartAt != "" {
		start, err := parseQueryDate(filters.StartAt)
		if err != nil {
			return "", err
		}
		parts = append(parts, "firstSeen:>"+start.Format(queryDateFormat)+"Z")
	}

	if filters.EndAt != "" {
		end, err := parseQueryDate(filters.EndAt)
		if err != nil {
			return "", err
		}
		parts = append(parts, "firstSeen:<"+end.Format(queryDateFormat)+"Z")
	}

	if filters.Query != "" {
		parts = append(parts, filters.Query)
	}

	return strings.Join(parts, " "), nil
}

// parseQueryDate parses user-supplied date input for query composition.
func parseQueryDate(s string) (time.Time, error) {
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS: %w", s, relayerrors.ErrInvalidInput)
}
