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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrInvalidToken indicates tracker authentication failed.
	// Maps to exit code 2.
	ErrInvalidToken = errors.New("invalid auth token")

	// ErrNotFound indicates the requested resource does not exist or is not accessible.
	// Maps to exit code 2.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimit indicates the tracker API rate limit has been exceeded.
	// The relay never waits or retries; the operation aborts. Maps to exit code 2.
	ErrRateLimit = errors.New("api rate limit exceeded")

	// ErrNetworkFailure indicates a network connection problem.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrNoConfig indicates credentials are missing. The caller is pointed
	// at 'sentry-relay init'. Maps to exit code 2.
	ErrNoConfig = errors.New("missing configuration")

	// ErrInvalidInput indicates malformed user input, detected before any
	// network call is made. Maps to exit code 1.
	ErrInvalidInput = errors.New("invalid input")
)

// HTTPError is returned for any non-2xx response from the tracker API.
// It carries the status code and response body so callers can report the
// failure verbatim. The in-flight operation always aborts; no retry.
type HTTPError struct {
	StatusCode int
	Body       string
	URL        string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s returned %d: %s", e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s returned %d", e.URL, e.StatusCode)
}

// Unwrap maps the status code onto the matching sentinel so callers can use
// errors.Is without inspecting status codes themselves.
func (e *HTTPError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrInvalidToken
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimit
	}
	return nil
}
