// Package outboxevents 提供媒体领域事件的构建与 Outbox/Pub/Sub 元数据派生。
// 编码请求事件以 JSON 载荷写入 Outbox，由发布任务投递给外部编码器。
package outboxevents

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// FormatEventType 将事件种类映射为语义化字符串。
func FormatEventType(kind Kind) string {
	return kind.String()
}

// BuildAttributes 构造符合 Pub/Sub 约定的 message attributes。
// 编码请求额外携带 resource_id/media_type，便于编码器按属性过滤订阅。
func BuildAttributes(event *DomainEvent, schemaVersion string, traceID string) map[string]string {
	if schemaVersion == "" {
		schemaVersion = SchemaVersionV1
	}
	attrs := map[string]string{
		"event_id":       event.EventID.String(),
		"event_type":     FormatEventType(event.Kind),
		"aggregate_id":   event.AggregateID.String(),
		"aggregate_type": event.AggregateType,
		"version":        strconv.FormatInt(event.Version, 10),
		"occurred_at":    event.OccurredAt.UTC().Format(time.RFC3339Nano),
		"schema_version": schemaVersion,
		"content_type":   "application/json",
	}
	if payload, ok := event.Payload.(*MediaEncodeRequested); ok && payload != nil {
		attrs["resource_id"] = payload.ResourceID
		attrs["media_type"] = payload.MediaType
	}
	if traceID != "" {
		attrs["trace_id"] = traceID
	}
	return attrs
}

// TraceIDFromContext 提取 OTel Trace ID，若不存在返回空字符串。
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() || !spanCtx.HasTraceID() {
		return ""
	}
	return spanCtx.TraceID().String()
}

// VersionFromTime 根据时间戳计算聚合版本号，采用 UTC 微秒时间。
func VersionFromTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UTC().UnixMicro()
}
