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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	relayerrors "github.com/incidenthq/sentry-relay/internal/errors"
	"github.com/incidenthq/sentry-relay/pkg/version"
)

// DefaultBaseURL is the public API root of the hosted tracker.
const DefaultBaseURL = "https://sentry.io/api/0"

const (
	// requestTimeout is the fixed per-call deadline enforced at the
	// executor boundary. Pagination issues one call per page, each with
	// its own deadline.
	requestTimeout = 30 * time.Second

	// maxResponseBytes caps response bodies to keep memory bounded.
	maxResponseBytes = 10 * 1024 * 1024
)

// RESTClient implements the Client interface against the tracker's REST API.
// Every fallible operation performs exactly one network round trip; there is
// no caching and no retry.
type RESTClient struct {
	httpClient *http.Client
	baseURL    string
	org        string
}

// NewRESTClient creates a new tracker API client. The client is configured
// with:
//   - Bearer-token authentication on every request
//   - A fixed per-request deadline
//   - Response size limiting to prevent memory issues
//   - User-Agent header for API compliance
//   - Optimized connection pooling for API performance
func NewRESTClient(token, org, baseURL string) *RESTClient {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false,
		ForceAttemptHTTP2:   true,
	}

	return &RESTClient{
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &authTransport{
				token: token,
				base:  transport,
			},
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		org:     org,
	}
}

// ListOrganizations returns every organization the token has access to.
func (c *RESTClient) ListOrganizations(ctx context.Context) ([]Resource, error) {
	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/organizations/", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList(resp)
}

// ListProjects returns the organization's projects.
func (c *RESTClient) ListProjects(ctx context.Context) ([]Resource, error) {
	endpoint := fmt.Sprintf("%s/organizations/%s/projects/", c.baseURL, c.org)
	resp, err := c.do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList(resp)
}

// ListIssues returns a single page of issues for a project, or for the whole
// organization when project is empty. The composed query expression in
// opts.Query is passed through verbatim; when empty the parameter is omitted
// rather than sent as an empty string.
func (c *RESTClient) ListIssues(ctx context.Context, project string, opts ListIssuesOptions) ([]Resource, error) {
	var endpoint string
	if project != "" {
		endpoint = fmt.Sprintf("%s/projects/%s/%s/issues/", c.baseURL, c.org, project)
	} else {
		endpoint = fmt.Sprintf("%s/organizations/%s/issues/", c.baseURL, c.org)
	}

	statsPeriod := opts.StatsPeriod
	if statsPeriod == "" {
		statsPeriod = defaultStatsPeriod
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	sortOrder := opts.Sort
	if sortOrder == "" {
		sortOrder = defaultSortOrder
	}

	params := url.Values{}
	params.Set("statsPeriod", statsPeriod)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("sort", sortOrder)
	if opts.Query != "" {
		params.Set("query", opts.Query)
	}

	resp, err := c.do(ctx, http.MethodGet, endpoint, params, nil)
	if err != nil {
		return nil, err
	}
	return decodeList(resp)
}

// GetIssue returns one issue by numeric ID or short ID.
func (c *RESTClient) GetIssue(ctx context.Context, issueID string) (Resource, error) {
	endpoint := fmt.Sprintf("%s/issues/%s/", c.baseURL, issueID)
	resp, err := c.do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(resp)
}

// ListIssueEvents returns events for an issue. With opts.Paginate set it
// walks the cursor chain via fetchPaginated; otherwise it fetches a single
// page of at most opts.Limit events.
func (c *RESTClient) ListIssueEvents(ctx context.Context, issueID string, opts ListEventsOptions) ([]Resource, error) {
	endpoint := fmt.Sprintf("%s/issues/%s/events/", c.baseURL, issueID)

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	if opts.Paginate {
		return c.fetchPaginated(ctx, endpoint, params, opts.MaxPages)
	}

	resp, err := c.do(ctx, http.MethodGet, endpoint, params, nil)
	if err != nil {
		return nil, err
	}
	return decodeList(resp)
}

// LatestEvent returns the most recent event recorded for an issue.
func (c *RESTClient) LatestEvent(ctx context.Context, issueID string) (Resource, error) {
	endpoint := fmt.Sprintf("%s/issues/%s/events/latest/", c.baseURL, issueID)
	resp, err := c.do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(resp)
}

// UpdateIssue applies the non-nil fields of update to an issue via PUT and
// returns the updated record.
func (c *RESTClient) UpdateIssue(ctx context.Context, issueID string, update IssueUpdate) (Resource, error) {
	body := map[string]any{}
	if update.Status != nil {
		body["status"] = *update.Status
	}
	if update.AssignedTo != nil {
		body["assignedTo"] = *update.AssignedTo
	}
	if update.HasSeen != nil {
		body["hasSeen"] = *update.HasSeen
	}
	if update.IsBookmarked != nil {
		body["isBookmarked"] = *update.IsBookmarked
	}
	if update.IsSubscribed != nil {
		body["isSubscribed"] = *update.IsSubscribed
	}

	endpoint := fmt.Sprintf("%s/issues/%s/", c.baseURL, issueID)
	resp, err := c.do(ctx, http.MethodPut, endpoint, nil, body)
	if err != nil {
		return nil, err
	}
	return decodeObject(resp)
}

// do issues exactly one round trip against the API. Query parameters are
// merged into the URL; a non-nil body is JSON-encoded. Any response status
// outside the 2xx range is surfaced as an *errors.HTTPError carrying the
// status code and body.
func (c *RESTClient) do(ctx context.Context, method, rawURL string, params url.Values, body any) (*http.Response, error) {
	if len(params) > 0 {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("invalid request URL %q: %w", rawURL, err)
		}
		q := u.Query()
		for key, values := range params {
			for _, v := range values {
				q.Add(key, v)
			}
		}
		u.RawQuery = q.Encode()
		rawURL = u.String()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("request to %s failed. Please check your internet connection and try again: %w", rawURL, relayerrors.ErrNetworkFailure)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer resp.Body.Close()
		data, _ := io.ReadAll(resp.Body)
		return nil, &relayerrors.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
			URL:        rawURL,
		}
	}

	return resp, nil
}

// decodeList reads a response body holding a JSON array of resources.
func decodeList(resp *http.Response) ([]Resource, error) {
	defer resp.Body.Close()

	var items []Resource
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", resp.Request.URL, err)
	}
	return items, nil
}

// decodeObject reads a response body holding a single JSON resource.
func decodeObject(resp *http.Response) (Resource, error) {
	defer resp.Body.Close()

	var item Resource
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", resp.Request.URL, err)
	}
	return item, nil
}

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("response size exceeded limit of %d bytes", lr.limit)
	}

	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)

	return n, err
}

// authTransport adds authentication headers and safety limits to HTTP requests
type authTransport struct {
	token string
	base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())

	req.Header.Set("Authorization", "Bearer "+t.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("sentry-relay/%s", version.Version))

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.Body != nil {
		resp.Body = &limitedReader{
			ReadCloser: resp.Body,
			limit:      maxResponseBytes,
		}
	}

	return resp, nil
}
