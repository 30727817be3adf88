package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return New(server.URL+"/api", 5*time.Second), server
}

func TestStatusDecodesJSON(t *testing.T) {
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/status", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"ok","service":"reelforge"}`)
	}))
	defer server.Close()

	body, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", body["status"])
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success":false,"error":"Failed to start video generation"}`)
	}))
	defer server.Close()

	_, err := c.Status(context.Background())
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "Failed to start video generation")
	assert.Equal(t, http.StatusInternalServerError, StatusCodeOf(err))
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		limited bool
	}{
		{
			name:    "http 429",
			err:     &APIError{StatusCode: http.StatusTooManyRequests, Body: "slow down"},
			limited: true,
		},
		{
			name:    "rate limit in body",
			err:     &APIError{StatusCode: http.StatusInternalServerError, Body: "Rate limit exceeded for gemini"},
			limited: true,
		},
		{
			name:    "quota in body",
			err:     &APIError{StatusCode: http.StatusBadRequest, Body: "API quota exhausted"},
			limited: true,
		},
		{
			name:    "wrapped api error",
			err:     fmt.Errorf("burst call: %w", &APIError{StatusCode: 429, Body: ""}),
			limited: true,
		},
		{
			name:    "plain 500",
			err:     &APIError{StatusCode: http.StatusInternalServerError, Body: "boom"},
			limited: false,
		},
		{
			name:    "not an api error",
			err:     fmt.Errorf("connection refused"),
			limited: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.limited, IsRateLimited(tt.err))
		})
	}
}

func TestPreconditionErrors(t *testing.T) {
	analysisErr := &APIError{
		StatusCode: http.StatusBadRequest,
		Body:       `{"error":"Project needs to be analyzed first"}`,
	}
	planErr := &APIError{
		StatusCode: http.StatusBadRequest,
		Body:       `{"error":"Create a plan first before editing it in chat"}`,
	}

	assert.True(t, IsAnalysisRequired(analysisErr))
	assert.False(t, IsPlanRequired(analysisErr))

	assert.True(t, IsPlanRequired(planErr))
	assert.False(t, IsAnalysisRequired(planErr))
}

func TestProbeReturnsStatusOnly(t *testing.T) {
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"Not found"}`)
	}))
	defer server.Close()

	code, err := c.Probe(context.Background(), "/nonexistent")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGenerateVideoOmitsNilPlan(t *testing.T) {
	var sawPlanKey bool
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, jsonDecode(r, &payload))
		_, sawPlanKey = payload["plan"]
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"job_id":"job-1"}`)
	}))
	defer server.Close()

	resp, err := c.GenerateVideo(context.Background(), "proj-1", nil)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "job-1", resp.JobID)
	assert.False(t, sawPlanKey, "nil plan must not appear in the payload")
}

func TestAPIErrorTruncatesLongBodies(t *testing.T) {
	long := make([]byte, maxLoggedBody*2)
	for i := range long {
		long[i] = 'x'
	}
	apiErr := &APIError{StatusCode: 500, Body: string(long)}

	msg := apiErr.Error()
	assert.Less(t, len(msg), maxLoggedBody+100)
	assert.Contains(t, msg, "...")
}

func jsonDecode(r *http.Request, out interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}
