package services

import (
	"context"
	"fmt"
	"time"

	outboxevents "github.com/bionicotaku/lingo-services-media/internal/models/outbox_events"
	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/bionicotaku/lingo-services-media/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
)

// EncodeRequestWriter 在聚合写入的同一事务内登记编码任务。
type EncodeRequestWriter struct {
	outbox  OutboxEnqueuer
	metrics *encodeRequestMetrics
}

// NewEncodeRequestWriter 构造 EncodeRequestWriter。
func NewEncodeRequestWriter(outbox OutboxEnqueuer) *EncodeRequestWriter {
	return &EncodeRequestWriter{outbox: outbox, metrics: newEncodeRequestMetrics(nil)}
}

// WithMeterProvider 替换指标来源，供测试注入。
func (w *EncodeRequestWriter) WithMeterProvider(mp metric.MeterProvider) *EncodeRequestWriter {
	if w != nil && mp != nil {
		w.metrics = newEncodeRequestMetrics(mp)
	}
	return w
}

// EnqueueAll 为 types 中每个已挂载的音视频槽位写入一条编码请求，图片槽位忽略。
func (w *EncodeRequestWriter) EnqueueAll(ctx context.Context, sess txmanager.Session, video *po.Video, types []po.MediaType) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(types))
	for _, t := range types {
		if !t.IsAudioVideo() || video.AudioVideo(t) == nil {
			continue
		}
		id, err := w.enqueue(ctx, sess, video, t)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (w *EncodeRequestWriter) enqueue(ctx context.Context, sess txmanager.Session, video *po.Video, mediaType po.MediaType) (uuid.UUID, error) {
	eventType := outboxevents.FormatEventType(outboxevents.KindMediaEncodeRequested)
	occurredAt := time.Now().UTC()

	event, err := outboxevents.NewMediaEncodeRequestedEvent(video, mediaType, uuid.New(), occurredAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("build encode request: %w", err)
	}
	payload, err := outboxevents.EncodePayload(event)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal encode request: %w", err)
	}

	msg := repositories.OutboxMessage{
		EventID:       event.EventID,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     eventType,
		Payload:       payload,
		Headers:       outboxevents.BuildAttributes(event, outboxevents.SchemaVersionV1, outboxevents.TraceIDFromContext(ctx)),
		AvailableAt:   occurredAt,
	}
	if err := w.outbox.Enqueue(ctx, sess, msg); err != nil {
		w.metrics.recordFailed(ctx, string(mediaType), err)
		return uuid.Nil, fmt.Errorf("enqueue outbox: %w", err)
	}
	w.metrics.recordEnqueued(ctx, string(mediaType), event.OccurredAt)
	return event.EventID, nil
}
