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
)

// MatchesText reports whether the lowercased filter occurs as a substring
// in any of the resource's title, culprit, metadata value, or metadata type.
// The metadata fields are coerced to their string form before matching.
// Missing fields read as empty strings, never as match failures.
func MatchesText(r Resource, textFilter string) bool {
	needle := strings.ToLower(textFilter)

	if strings.Contains(strings.ToLower(r.GetString("title")), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(r.GetString("culprit")), needle) {
		return true
	}

	metadata := r.Metadata()
	for _, key := range []string{"value", "type"} {
		v, ok := metadata[key]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(fmt.Sprint(v)), needle) {
			return true
		}
	}

	return false
}

// FilterByText narrows an already-fetched result set, keeping the original
// order. It runs entirely locally, after the (possibly paginated) fetch has
// completed, and never changes how many pages were fetched.
func FilterByText(items []Resource, textFilter string) []Resource {
	matched := make([]Resource, 0, len(items))
	for _, item := range items {
		if MatchesText(item, textFilter) {
			matched = append(matched, item)
		}
	}
	return matched
}
