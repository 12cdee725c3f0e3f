package tracing

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanEvaluate  = "checklist.evaluate"
	SpanConfigure = "checklist.configure"
	SpanReload    = "checklist.reload"

	SpanPrefixHTTP = "http "
)

// Span attribute keys.
const (
	AttrRequirementID    = "requirement.id"
	AttrRequirementCount = "requirement.count"
	AttrManifestCount    = "manifest.count"
	AttrResult           = "configuration.result"
	AttrFieldErrors      = "configuration.field_errors"
	AttrCompleted        = "configuration.completed"
	AttrFullyResolved    = "checklist.fully_resolved"
	AttrNext             = "checklist.next"
	AttrPredicate        = "predicate.check"

	AttrHTTPMethod = "http.request.method"
	AttrHTTPRoute  = "http.route"
	AttrHTTPStatus = "http.response.status_code"
)

// Event names for span events.
const (
	EventValidated       = "configuration.validated"
	EventCommitted       = "configuration.committed"
	EventPredicateFailed = "predicate.failed"
)

// Finish records err on span, sets its status and ends it.
func Finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// TraceID returns the trace id of the span in ctx, or "" when there is none.
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
