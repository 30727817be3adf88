// Package client is the typed HTTP client for the ReelForge API.
// Every operation is one request against the deployment named by the
// configured base URL - the harness never talks to the AI providers the
// backend orchestrates, except through these endpoints.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/reelforge/reelforge-qa/internal/logger"
)

const maxLoggedBody = 400

// Client issues requests against one ReelForge deployment
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given API root, e.g. "http://localhost:3000/api"
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the API root this client targets
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is a non-2xx response from the backend. Body is kept verbatim
// because several failure modes are only recognizable from the raw text
// (rate-limit messages, precondition errors, non-JSON error pages).
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, truncate(e.Body, maxLoggedBody))
}

// IsRateLimited reports whether the error looks like upstream quota
// exhaustion: HTTP 429, or an error body mentioning rate limits or quota
func IsRateLimited(err error) bool {
	apiErr, ok := asAPIError(err)
	if !ok {
		return false
	}
	if apiErr.StatusCode == http.StatusTooManyRequests {
		return true
	}
	body := strings.ToLower(apiErr.Body)
	return strings.Contains(body, "rate limit") || strings.Contains(body, "quota")
}

// IsAnalysisRequired reports whether the backend rejected the call because
// the project has not been analyzed yet
func IsAnalysisRequired(err error) bool {
	return errBodyContains(err, "analyzed first", "needs to be analyzed")
}

// IsPlanRequired reports whether the backend rejected the call because the
// project has no generation plan yet
func IsPlanRequired(err error) bool {
	return errBodyContains(err, "plan first", "create a plan")
}

// StatusCodeOf returns the HTTP status carried by err, or 0
func StatusCodeOf(err error) int {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.StatusCode
	}
	return 0
}

func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	for err != nil {
		if e, ok := err.(*APIError); ok {
			apiErr = e
			break
		}
		type unwrapper interface{ Unwrap() error }
		u, ok := err.(unwrapper)
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return apiErr, apiErr != nil
}

func errBodyContains(err error, needles ...string) bool {
	apiErr, ok := asAPIError(err)
	if !ok {
		return false
	}
	body := strings.ToLower(apiErr.Body)
	for _, needle := range needles {
		if strings.Contains(body, needle) {
			return true
		}
	}
	return false
}

// doJSON performs one request and decodes the JSON response into out.
// Non-2xx responses become *APIError with the body preserved.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out interface{}) error {
	span := sentry.StartSpan(ctx, "api.request")
	span.Description = fmt.Sprintf("%s %s", method, path)
	defer span.Finish()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		span.Status = sentry.SpanStatusUnknown
		logger.Error("API call failed", err, logger.WithRequest(req))
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	span.SetTag("status_code", fmt.Sprintf("%d", resp.StatusCode))
	logger.LogAPICall(path, duration, resp.StatusCode, nil)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		span.Status = sentry.SpanStatusUnknown
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	span.Status = sentry.SpanStatusOK

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// Probe hits an arbitrary path and returns the status code without
// interpreting the body. Used for negative checks like unknown endpoints.
func (c *Client) Probe(ctx context.Context, path string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("GET %s failed: %w", path, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
