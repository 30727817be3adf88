package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Always enabled if Sentry is configured
	}
}

// RecordCheck records a single check outcome as a span on the suite
// transaction
func (m *SentryMetrics) RecordCheck(ctx context.Context, suite, check string, passed bool, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "qa.check")
	defer span.Finish()

	span.SetTag("suite", suite)
	span.SetTag("check", check)
	span.SetTag("success", fmt.Sprintf("%t", passed))

	span.SetData("duration_ms", duration.Milliseconds())

	if passed {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("Check: %s/%s", suite, check)
}

// RecordSuiteRun records one full suite execution
func (m *SentryMetrics) RecordSuiteRun(ctx context.Context, suite string, passed bool, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "qa.suite")
	defer span.Finish()

	span.SetTag("suite", suite)
	span.SetTag("success", fmt.Sprintf("%t", passed))
	span.SetData("duration_ms", duration.Milliseconds())

	if passed {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("Suite: %s", suite)
}

// RecordCustomMetric sends a custom metric with arbitrary data
func (m *SentryMetrics) RecordCustomMetric(metricName string, data map[string]interface{}) {
	if !m.enabled {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("metric_type", "custom")
		scope.SetTag("metric_name", metricName)

		scope.SetContext("custom_metric", data)

		sentry.CaptureMessage("Custom Metric: " + metricName)
	})
}
