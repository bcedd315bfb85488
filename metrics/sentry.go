package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryMetrics records optional telemetry for program execution. It is a
// no-op unless a DSN is configured, mirroring how callers throughout this
// codebase guard on whether a feature was actually wired up.
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a metrics client. enabled should be true only when
// Sentry has actually been initialized (a non-empty DSN was configured).
func NewSentryMetrics(enabled bool) *SentryMetrics {
	return &SentryMetrics{enabled: enabled}
}

// Flush blocks up to timeout waiting for any buffered events to send. It
// belongs at the end of a program run, deferred right after construction.
func (m *SentryMetrics) Flush(timeout time.Duration) {
	if !m.enabled {
		return
	}
	sentry.Flush(timeout)
}

// RecordParseDuration records how long lexing+parsing a program took.
func (m *SentryMetrics) RecordParseDuration(ctx context.Context, duration time.Duration, tokenCount int, err error) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "musicdsl.parse")
	defer span.Finish()

	span.SetTag("success", fmt.Sprintf("%t", err == nil))
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("token_count", tokenCount)

	if err == nil {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInvalidArgument
		span.SetTag("error.kind", errorKind(err))
	}
	span.Description = "parse program"
}

// RecordEvalDuration records how long evaluating a program took, including
// the size of the resulting event sequence.
func (m *SentryMetrics) RecordEvalDuration(ctx context.Context, duration time.Duration, eventCount int, err error) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "musicdsl.eval")
	defer span.Finish()

	span.SetTag("success", fmt.Sprintf("%t", err == nil))
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("event_count", eventCount)

	if err == nil {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
		span.SetTag("error.kind", errorKind(err))
	}
	span.Description = fmt.Sprintf("evaluate program: %d events", eventCount)
}

// CaptureError reports a non-recoverable diagnostic to Sentry, tagged with
// its error kind when the error carries one (see diag.Error).
func (m *SentryMetrics) CaptureError(ctx context.Context, err error) {
	if !m.enabled || err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("error.kind", errorKind(err))
		sentry.CaptureException(err)
	})
}

type kinded interface {
	Kind() string
}

func errorKind(err error) string {
	if k, ok := err.(kinded); ok {
		return k.Kind()
	}
	return "unknown"
}
