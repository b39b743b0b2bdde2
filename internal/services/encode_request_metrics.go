package services

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
)

// 编码请求登记结果标签。
const (
	encodeOutcomeEnqueued = "enqueued"
	encodeOutcomeFailed   = "failed"
)

var (
	attrMediaType = attribute.Key("media_type")
	attrOutcome   = attribute.Key("outcome")
	attrReason    = attribute.Key("reason")
)

// encodeRequestMetrics 按媒体槽位统计编码请求的登记结果与排队延迟。
type encodeRequestMetrics struct {
	requests metric.Int64Counter
	lag      metric.Float64Histogram
	enabled  bool
}

func newEncodeRequestMetrics(meterProvider metric.MeterProvider) *encodeRequestMetrics {
	if meterProvider == nil {
		meterProvider = otel.GetMeterProvider()
	}
	if meterProvider == nil {
		meterProvider = noopmetric.NewMeterProvider()
	}
	meter := meterProvider.Meter("lingo-services-media.services.encode_request")

	requests, err := meter.Int64Counter("media_encode_requests_total",
		metric.WithDescription("Number of encode requests written to the outbox by media type and outcome"))
	if err != nil {
		return &encodeRequestMetrics{}
	}
	lag, err := meter.Float64Histogram("media_encode_request_lag_ms",
		metric.WithDescription("Time between building an encode request and its outbox write"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return &encodeRequestMetrics{}
	}
	return &encodeRequestMetrics{requests: requests, lag: lag, enabled: true}
}

func (m *encodeRequestMetrics) recordEnqueued(ctx context.Context, mediaType string, occurredAt time.Time) {
	if m == nil || !m.enabled {
		return
	}
	m.requests.Add(ctx, 1, metric.WithAttributes(
		attrMediaType.String(mediaType),
		attrOutcome.String(encodeOutcomeEnqueued),
		attrReason.String(""),
	))
	if occurredAt.IsZero() {
		return
	}
	lag := time.Since(occurredAt).Milliseconds()
	if lag < 0 {
		lag = 0
	}
	m.lag.Record(ctx, float64(lag), metric.WithAttributes(attrMediaType.String(mediaType)))
}

func (m *encodeRequestMetrics) recordFailed(ctx context.Context, mediaType string, err error) {
	if m == nil || !m.enabled {
		return
	}
	m.requests.Add(ctx, 1, metric.WithAttributes(
		attrMediaType.String(mediaType),
		attrOutcome.String(encodeOutcomeFailed),
		attrReason.String(failureReason(err)),
	))
}

// failureReason 将错误归为有限的标签值。
func failureReason(err error) string {
	switch {
	case err == nil:
		return "unknown"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "store"
	}
}
