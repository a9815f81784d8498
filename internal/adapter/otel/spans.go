package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Strob0t/gchat-notify/internal/domain/notification"
)

const tracerName = "gchat-notify"

// StartDispatchSpan starts a span for one webhook dispatch. The webhook is
// identified by its fingerprint, never by URL.
func StartDispatchSpan(ctx context.Context, requestID, webhook string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "dispatch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("request.id", requestID),
			attribute.String("webhook.fingerprint", webhook),
		),
	)
}

// EndDispatchSpan records the outcome on the span and ends it.
func EndDispatchSpan(span trace.Span, res notification.Result) {
	span.SetAttributes(attribute.String("dispatch.outcome", string(res.Outcome)))
	if res.StatusCode != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", res.StatusCode))
	}
	if !res.OK() {
		span.SetStatus(codes.Error, res.Err().Error())
	}
	span.End()
}
