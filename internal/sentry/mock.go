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
	"fmt"

	relayerrors "github.com/incidenthq/sentry-relay/internal/errors"
)

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	// Data to return
	Organizations []Resource
	Projects      []Resource
	Issues        []Resource
	Issue         Resource
	Events        []Resource

	// Error to return
	Err error

	// Behavior flags
	ShouldFailAuth     bool
	ShouldFailNotFound bool
	ShouldFailNetwork  bool

	// Track calls for verification
	CallCount     int
	LastProject   string
	LastIssueID   string
	LastIssueOpts ListIssuesOptions
	LastEventOpts ListEventsOptions
	LastUpdate    IssueUpdate
}

// NewMockClient creates a new mock client with default test data
func NewMockClient() *MockClient {
	return &MockClient{
		Issues: generateTestIssues(),
		Events: generateTestEvents(),
		Issue:  generateTestIssues()[0],
		Projects: []Resource{
			{"slug": "billing-service", "name": "Billing Service"},
			{"slug": "sub2", "name": "Subscriptions v2"},
		},
		Organizations: []Resource{
			{"slug": "acme", "name": "Acme, Inc."},
		},
	}
}

func (m *MockClient) fail(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if m.ShouldFailAuth {
		return fmt.Errorf("authentication failed: %w", relayerrors.ErrInvalidToken)
	}
	if m.ShouldFailNotFound {
		return fmt.Errorf("resource not found: %w", relayerrors.ErrNotFound)
	}
	if m.ShouldFailNetwork {
		return fmt.Errorf("network timeout: %w", relayerrors.ErrNetworkFailure)
	}
	return m.Err
}

// ListOrganizations implements the Client interface
func (m *MockClient) ListOrganizations(ctx context.Context) ([]Resource, error) {
	m.CallCount++
	if err := m.fail(ctx); err != nil {
		return nil, err
	}
	return m.Organizations, nil
}

// ListProjects implements the Client interface
func (m *MockClient) ListProjects(ctx context.Context) ([]Resource, error) {
	m.CallCount++
	if err := m.fail(ctx); err != nil {
		return nil, err
	}
	return m.Projects, nil
}

// ListIssues implements the Client interface
func (m *MockClient) ListIssues(ctx context.Context, project string, opts ListIssuesOptions) ([]Resource, error) {
	m.CallCount++
	m.LastProject = project
	m.LastIssueOpts = opts
	if err := m.fail(ctx); err != nil {
		return nil, err
	}
	return m.Issues, nil
}

// GetIssue implements the Client interface
func (m *MockClient) GetIssue(ctx context.Context, issueID string) (Resource, error) {
	m.CallCount++
	m.LastIssueID = issueID
	if err := m.fail(ctx); err != nil {
		return nil, err
	}
	return m.Issue, nil
}

// ListIssueEvents implements the Client interface
func (m *MockClient) ListIssueEvents(ctx context.Context, issueID string, opts ListEventsOptions) ([]Resource, error) {
	m.CallCount++
	m.LastIssueID = issueID
	m.LastEventOpts = opts
	if err := m.fail(ctx); err != nil {
		return nil, err
	}
	return m.Events, nil
}

// LatestEvent implements the Client interface
func (m *MockClient) LatestEvent(ctx context.Context, issueID string) (Resource, error) {
	m.CallCount++
	m.LastIssueID = issueID
	if err := m.fail(ctx); err != nil {
		return nil, err
	}
	if len(m.Events) == 0 {
		return nil, fmt.Errorf("no events: %w", relayerrors.ErrNotFound)
	}
	return m.Events[0], nil
}

// UpdateIssue implements the Client interface
func (m *MockClient) UpdateIssue(ctx context.Context, issueID string, update IssueUpdate) (Resource, error) {
	m.CallCount++
	m.LastIssueID = issueID
	m.LastUpdate = update
	if err := m.fail(ctx); err != nil {
		return nil, err
	}
	return m.Issue, nil
}

// generateTestIssues creates sample issue data for testing
func generateTestIssues() []Resource {
	return []Resource{
		{
			"id":        "6872665417",
			"shortId":   "BILLING-SERVICE-26S",
			"title":     "NullPointerException in InvoiceWorker",
			"culprit":   "invoice.worker.process",
			"status":    "unresolved",
			"level":     "error",
			"count":     "1432",
			"userCount": float64(87),
			"firstSeen": "2025-06-01T08:30:00Z",
			"lastSeen":  "2025-06-02T10:15:00Z",
			"permalink": "https://acme.sentry.io/issues/6872665417/",
			"metadata": map[string]any{
				"type":  "NullPointerException",
				"value": "invoice was nil",
			},
		},
		{
			"id":        "6872665418",
			"shortId":   "BILLING-SERVICE-26T",
			"title":     "Timeout calling payment gateway",
			"culprit":   "gateway.charge",
			"status":    "resolved",
			"level":     "warning",
			"count":     "12",
			"userCount": float64(3),
			"firstSeen": "2025-06-01T09:00:00Z",
			"lastSeen":  "2025-06-01T09:45:00Z",
			"permalink": "https://acme.sentry.io/issues/6872665418/",
			"metadata": map[string]any{
				"type":  "GatewayTimeout",
				"value": "deadline exceeded after 30s",
			},
		},
	}
}

// generateTestEvents creates sample event data for testing
func generateTestEvents() []Resource {
	return []Resource{
		{
			"eventID":     "a1b2c3d4e5f6",
			"dateCreated": "2025-06-02T10:15:00Z",
			"platform":    "python",
			"user":        map[string]any{"username": "alice"},
			"tags": []any{
				map[string]any{"key": "environment", "value": "production"},
				map[string]any{"key": "release", "value": "1.42.0"},
			},
		},
		{
			"eventID":     "f6e5d4c3b2a1",
			"dateCreated": "2025-06-02T09:50:00Z",
			"platform":    "python",
			"user":        map[string]any{"email": "bob@example.com"},
			"tags":        []any{},
		},
	}
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithIssues sets specific issues to return
func WithIssues(issues []Resource) MockClientOption {
	return func(m *MockClient) {
		m.Issues = issues
	}
}

// WithEvents sets specific events to return
func WithEvents(events []Resource) MockClientOption {
	return func(m *MockClient) {
		m.Events = events
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Err = err
	}
}

// WithAuthFailure makes the client simulate authentication failure
func WithAuthFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailAuth = true
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
