package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Strob0t/gchat-notify/internal/domain/notification"
)

const meterName = "gchat-notify"

// Metrics holds the dispatch metric instruments.
type Metrics struct {
	Dispatched metric.Int64Counter
	Failed     metric.Int64Counter
	Duration   metric.Float64Histogram
}

// NewMetrics creates all metric instruments from the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Dispatched, err = meter.Int64Counter("gchat.dispatch.total",
		metric.WithDescription("Number of webhook dispatches attempted"))
	if err != nil {
		return nil, err
	}

	m.Failed, err = meter.Int64Counter("gchat.dispatch.failed",
		metric.WithDescription("Number of webhook dispatches that did not succeed"))
	if err != nil {
		return nil, err
	}

	m.Duration, err = meter.Float64Histogram("gchat.dispatch.duration_seconds",
		metric.WithDescription("Webhook round trip duration in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Record adds one dispatch observation. A nil receiver is a no-op.
func (m *Metrics) Record(ctx context.Context, res notification.Result, seconds float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", string(res.Outcome)))
	m.Dispatched.Add(ctx, 1, attrs)
	if !res.OK() {
		m.Failed.Add(ctx, 1, attrs)
	}
	m.Duration.Record(ctx, seconds, attrs)
}
