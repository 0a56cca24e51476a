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
	"net/http"
	"net/url"

	"github.com/peterhellberg/link"
)

// fetchPaginated walks a cursor-paginated endpoint, following the rel="next"
// continuation from each response's Link header until the server reports no
// further results or maxPages total page fetches have been performed.
// Items are accumulated in arrival order: page 1 items precede page 2 items.
//
// maxPages bounds the total number of page fetches, not the number of
// continuation transitions: the counter advances only after a next link has
// been accepted, so maxPages=1 fetches exactly one page even when the server
// advertises more. Zero or negative means unbounded.
//
// Any page failure aborts the walk and discards everything accumulated so
// far; the caller observes only the error, never a truncated result.
func (c *RESTClient) fetchPaginated(ctx context.Context, rawURL string, params url.Values, maxPages int) ([]Resource, error) {
	var accumulated []Resource
	pagesFetched := 0

	for rawURL != "" {
		resp, err := c.do(ctx, http.MethodGet, rawURL, params, nil)
		if err != nil {
			return nil, err
		}

		next := nextPageLink(resp)

		items, err := decodeList(resp)
		if err != nil {
			return nil, err
		}
		accumulated = append(accumulated, items...)

		if next == nil || !next.HasMore {
			break
		}

		// The continuation URL already encodes the cursor and filters.
		rawURL = next.URL
		params = nil

		pagesFetched++
		if maxPages > 0 && pagesFetched >= maxPages {
			break
		}
	}

	return accumulated, nil
}

// nextPageLink extracts the rel="next" continuation from the response's
// Link header. The tracker annotates each link with a results flag; only an
// explicit results="true" means another page exists.
func nextPageLink(resp *http.Response) *PageLink {
	next := link.ParseResponse(resp)["next"]
	if next == nil {
		return nil
	}
	return &PageLink{
		URL:     next.URI,
		HasMore: next.Extra["results"] == "true",
	}
}
