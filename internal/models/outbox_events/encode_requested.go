package outboxevents

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/google/uuid"
)

// NewMediaEncodeRequestedEvent 为指定音视频槽位构建编码请求事件。
func NewMediaEncodeRequestedEvent(video *po.Video, mediaType po.MediaType, eventID uuid.UUID, occurredAt time.Time) (*DomainEvent, error) {
	if video == nil {
		return nil, ErrNilVideo
	}
	if eventID == uuid.Nil {
		return nil, ErrInvalidEventID
	}
	media := video.AudioVideo(mediaType)
	if media == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotEncodable, mediaType)
	}
	if occurredAt.IsZero() {
		occurredAt = video.UpdatedAt
		if occurredAt.IsZero() {
			occurredAt = time.Now()
		}
	}
	occurredAt = occurredAt.UTC()

	return &DomainEvent{
		EventID:       eventID,
		Kind:          KindMediaEncodeRequested,
		AggregateID:   video.ID,
		AggregateType: AggregateTypeVideo,
		Version:       VersionFromTime(occurredAt),
		OccurredAt:    occurredAt,
		Payload: &MediaEncodeRequested{
			VideoID:    video.ID.String(),
			ResourceID: media.Checksum,
			FilePath:   media.RawLocation,
			MediaType:  string(mediaType),
		},
	}, nil
}

// EncodePayload 将事件载荷编码为 JSON，外部编码器不依赖 protobuf。
func EncodePayload(event *DomainEvent) ([]byte, error) {
	if event == nil {
		return nil, ErrUnknownEventKind
	}
	switch payload := event.Payload.(type) {
	case *MediaEncodeRequested:
		return json.Marshal(payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEventKind, event.Kind)
	}
}
