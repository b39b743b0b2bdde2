// Package encodercallback 消费外部编码器发布的完成/失败回调，并推进视频聚合上的媒体状态。
package encodercallback

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/google/uuid"
)

// ErrMalformedEvent 表示消息体无法解析为任何已知回调。
var ErrMalformedEvent = errors.New("encoder callback: malformed event")

// EventKind 区分回调变体。
type EventKind string

const (
	// EventKindCompleted 编码成功。
	EventKindCompleted EventKind = "COMPLETED"
	// EventKindError 编码失败。
	EventKindError EventKind = "ERROR"
)

// CompletedEvent 描述一次编码完成回调。
type CompletedEvent struct {
	VideoID      uuid.UUID
	ResourceID   string
	OutputBucket string
	Folder       string
	FilePath     string
}

// ErrorEvent 描述一次编码失败回调，只记录不修改聚合。
type ErrorEvent struct {
	ResourceID string
	FilePath   string
	Message    string
}

// Event 是解码后的回调，Completed 与 Error 二者仅有其一。
type Event struct {
	Kind      EventKind
	Completed *CompletedEvent
	Error     *ErrorEvent
}

// wireEnvelope 对应编码器发布的 JSON 结构。
type wireEnvelope struct {
	ID           string        `json:"id"`
	OutputBucket string        `json:"output_bucket"`
	Status       string        `json:"status"`
	Video        *wireMetadata `json:"video"`
	Error        string        `json:"error"`
	Message      *wireMetadata `json:"message"`
}

type wireMetadata struct {
	EncodedVideoFolder string `json:"encoded_video_folder"`
	ResourceID         string `json:"resource_id"`
	FilePath           string `json:"file_path"`
}

type eventDecoder struct{}

func newEventDecoder() *eventDecoder {
	return &eventDecoder{}
}

// Decode 将原始消息解码为 Event；失败时返回包装 ErrMalformedEvent 的错误。
func (d *eventDecoder) Decode(data []byte) (*Event, error) {
	var env wireEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: decode payload: %v", ErrMalformedEvent, err)
	}

	switch EventKind(strings.ToUpper(strings.TrimSpace(env.Status))) {
	case EventKindCompleted:
		return decodeCompleted(env)
	case EventKindError:
		return decodeError(env)
	default:
		return nil, fmt.Errorf("%w: unsupported status %q", ErrMalformedEvent, env.Status)
	}
}

func decodeCompleted(env wireEnvelope) (*Event, error) {
	if env.Video == nil {
		return nil, fmt.Errorf("%w: completed event missing video metadata", ErrMalformedEvent)
	}
	videoID, err := uuid.Parse(strings.TrimSpace(env.ID))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid video id %q", ErrMalformedEvent, env.ID)
	}
	resourceID := strings.TrimSpace(env.Video.ResourceID)
	if resourceID == "" {
		return nil, fmt.Errorf("%w: completed event missing resource_id", ErrMalformedEvent)
	}
	return &Event{
		Kind: EventKindCompleted,
		Completed: &CompletedEvent{
			VideoID:      videoID,
			ResourceID:   resourceID,
			OutputBucket: strings.TrimSpace(env.OutputBucket),
			Folder:       strings.TrimSpace(env.Video.EncodedVideoFolder),
			FilePath:     strings.TrimSpace(env.Video.FilePath),
		},
	}, nil
}

func decodeError(env wireEnvelope) (*Event, error) {
	evt := &ErrorEvent{Message: strings.TrimSpace(env.Error)}
	if env.Message != nil {
		evt.ResourceID = strings.TrimSpace(env.Message.ResourceID)
		evt.FilePath = strings.TrimSpace(env.Message.FilePath)
	}
	return &Event{Kind: EventKindError, Error: evt}, nil
}

// Status 返回回调对应的目标媒体状态。
func (e *Event) Status() po.MediaStatus {
	if e != nil && e.Kind == EventKindCompleted {
		return po.MediaStatusCompleted
	}
	return po.MediaStatusError
}
