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
	"errors"
	"testing"

	relayerrors "github.com/incidenthq/sentry-relay/internal/errors"
)

func TestBuildIssueQuery(t *testing.T) {
	tests := []struct {
		name    string
		filters IssueFilters
		want    string
		wantErr bool
	}{
		{
			name:    "no criteria returns empty string",
			filters: IssueFilters{},
			want:    "",
		},
		{
			name:    "environment only",
			filters: IssueFilters{Environment: "production"},
			want:    "environment:production",
		},
		{
			name:    "environment and raw query",
			filters: IssueFilters{Environment: "production", Query: "is:unresolved"},
			want:    "environment:production is:unresolved",
		},
		{
			name:    "raw query passes through verbatim",
			filters: IssueFilters{Query: `is:unresolved error_type:RuntimeError`},
			want:    `is:unresolved error_type:RuntimeError`,
		},
		{
			name:    "start date gets lower bound fragment",
			filters: IssueFilters{StartAt: "2025-06-01"},
			want:    "firstSeen:>2025-06-01T00:00:00Z",
		},
		{
			name:    "end date gets upper bound fragment",
			filters: IssueFilters{EndAt: "2025-06-02T12:30:00"},
			want:    "firstSeen:<2025-06-02T12:30:00Z",
		},
		{
			name: "all criteria in fixed order",
			filters: IssueFilters{
				Environment: "staging",
				StartAt:     "2025-06-01",
				EndAt:       "2025-06-30",
				Query:       "is:unresolved",
			},
			want: "environment:staging firstSeen:>2025-06-01T00:00:00Z firstSeen:<2025-06-30T00:00:00Z is:unresolved",
		},
		{
			name:    "malformed start date",
			filters: IssueFilters{StartAt: "June 1st"},
			wantErr: true,
		},
		{
			name:    "malformed end date",
			filters: IssueFilters{EndAt: "2025-13-45"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildIssueQuery(tt.filters)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, relayerrors.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("BuildIssueQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}
