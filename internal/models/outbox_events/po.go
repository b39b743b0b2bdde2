package outboxevents

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind 标识领域事件类型。
type Kind int

// 领域事件类型常量。
const (
	// KindUnknown 表示未识别的事件类型。
	KindUnknown Kind = iota
	// KindMediaEncodeRequested 表示音视频资源已存储，等待外部编码器处理。
	KindMediaEncodeRequested
)

func (k Kind) String() string {
	switch k {
	case KindMediaEncodeRequested:
		return "media.encode.requested"
	default:
		return "media.event.unknown"
	}
}

// DomainEvent 表示领域层生成的标准事件。
type DomainEvent struct {
	EventID       uuid.UUID
	Kind          Kind
	AggregateID   uuid.UUID
	AggregateType string
	Version       int64
	OccurredAt    time.Time
	Payload       any
}

// MediaEncodeRequested 描述编码任务载荷，字段即外部编码器的输入契约。
type MediaEncodeRequested struct {
	VideoID    string `json:"video_id"`
	ResourceID string `json:"resource_id"`
	FilePath   string `json:"file_path"`
	MediaType  string `json:"media_type"`
}

const (
	// AggregateTypeVideo 标识视频聚合类型。
	AggregateTypeVideo = "media.video"
	// SchemaVersionV1 描述事件载荷的当前 schema 版本。
	SchemaVersionV1 = "v1"
)

var (
	// ErrInvalidEventID 表示未提供合法的事件 ID。
	ErrInvalidEventID = fmt.Errorf("event builder: event id is required")
	// ErrNilVideo 表示构建事件时缺少视频实体。
	ErrNilVideo = fmt.Errorf("event builder: video is nil")
	// ErrNotEncodable 表示槽位不是可编码的音视频类型。
	ErrNotEncodable = fmt.Errorf("event builder: media is not encodable")
	// ErrUnknownEventKind 表示未识别的事件类型。
	ErrUnknownEventKind = fmt.Errorf("event builder: unknown event kind")
)
