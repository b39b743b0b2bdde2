package encodercallback

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
)

// 回调处理结果标签。
const (
	outcomeApplied = "applied"
	outcomeDropped = "dropped"
	outcomeFailed  = "failed"
)

type callbackMetrics struct {
	processed metric.Int64Counter
	duration  metric.Float64Histogram
	enabled   bool
}

func newCallbackMetrics(meterProvider metric.MeterProvider) *callbackMetrics {
	if meterProvider == nil {
		meterProvider = otel.GetMeterProvider()
	}
	if meterProvider == nil {
		meterProvider = noopmetric.NewMeterProvider()
	}
	meter := meterProvider.Meter("lingo-services-media.encoder_callback")

	processed, err := meter.Int64Counter("encoder_callback_events_total", metric.WithDescription("Number of encoder callback events by outcome"))
	if err != nil {
		return &callbackMetrics{}
	}
	duration, err := meter.Float64Histogram("encoder_callback_duration_ms", metric.WithDescription("Time spent handling one encoder callback"), metric.WithUnit("ms"))
	if err != nil {
		return &callbackMetrics{}
	}
	return &callbackMetrics{
		processed: processed,
		duration:  duration,
		enabled:   true,
	}
}

func (m *callbackMetrics) record(ctx context.Context, kind EventKind, outcome, reason string, startedAt time.Time) {
	if m == nil || !m.enabled {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("event_kind", string(kind)),
		attribute.String("outcome", outcome),
		attribute.String("reason", reason),
	)
	m.processed.Add(ctx, 1, attrs)
	if !startedAt.IsZero() {
		m.duration.Record(ctx, float64(time.Since(startedAt).Milliseconds()), attrs)
	}
}
