package encodercallback

import (
	"context"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/bionicotaku/lingo-services-media/internal/services"

	"github.com/bionicotaku/lingo-utils/gcpubsub"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"go.opentelemetry.io/otel/metric"
)

// Handler 处理单条编码器回调消息。
// 返回 nil 表示 ack；仅在加载/持久化出现暂时性失败时返回错误触发重投。
type Handler struct {
	statuses services.MediaStatusServiceInterface
	decoder  *eventDecoder
	locks    *keyedMutex
	metrics  *callbackMetrics
	log      *log.Helper
}

// NewHandler 构造 Handler。
func NewHandler(statuses services.MediaStatusServiceInterface, logger log.Logger) *Handler {
	return &Handler{
		statuses: statuses,
		decoder:  newEventDecoder(),
		locks:    newKeyedMutex(),
		metrics:  newCallbackMetrics(nil),
		log:      log.NewHelper(logger),
	}
}

// WithMeterProvider 替换指标来源，供测试注入。
func (h *Handler) WithMeterProvider(mp metric.MeterProvider) *Handler {
	if h != nil && mp != nil {
		h.metrics = newCallbackMetrics(mp)
	}
	return h
}

// Handle 解码并应用一条回调。单条消息的失败不会中断消费循环。
func (h *Handler) Handle(ctx context.Context, msg *gcpubsub.Message) (err error) {
	startedAt := time.Now()
	defer func() {
		if r := recover(); r != nil {
			h.log.WithContext(ctx).Errorw("msg", "encoder callback: handler panic recovered", "message_id", messageID(msg), "panic", fmt.Sprint(r))
			h.metrics.record(ctx, "", outcomeDropped, "panic", startedAt)
			err = nil
		}
	}()

	if msg == nil {
		return nil
	}

	evt, decodeErr := h.decoder.Decode(msg.Data)
	if decodeErr != nil {
		h.log.WithContext(ctx).Warnw("msg", "encoder callback: drop malformed event", "message_id", msg.ID, "error", decodeErr)
		h.metrics.record(ctx, "", outcomeDropped, "malformed", startedAt)
		return nil
	}

	switch evt.Kind {
	case EventKindError:
		h.log.WithContext(ctx).Errorw("msg", "encoder callback: encoding failed",
			"message_id", msg.ID,
			"resource_id", evt.Error.ResourceID,
			"file_path", evt.Error.FilePath,
			"error", evt.Error.Message,
		)
		h.metrics.record(ctx, evt.Kind, outcomeDropped, "encoder_error", startedAt)
		return nil
	case EventKindCompleted:
		return h.handleCompleted(ctx, msg, evt, startedAt)
	default:
		h.metrics.record(ctx, evt.Kind, outcomeDropped, "unknown_kind", startedAt)
		return nil
	}
}

func (h *Handler) handleCompleted(ctx context.Context, msg *gcpubsub.Message, evt *Event, startedAt time.Time) error {
	completed := evt.Completed
	unlock := h.locks.Lock(completed.VideoID.String())
	defer unlock()

	result, err := h.statuses.UpdateMediaStatus(ctx, services.UpdateMediaStatusInput{
		VideoID:    completed.VideoID,
		ResourceID: completed.ResourceID,
		Status:     evt.Status(),
		Folder:     completed.Folder,
		Filename:   completed.FilePath,
	})
	if err != nil {
		if errors.Is(err, po.ErrInvalidMediaTransition) || errors.IsBadRequest(err) || errors.IsConflict(err) {
			h.log.WithContext(ctx).Warnw("msg", "encoder callback: drop rejected event",
				"message_id", msg.ID,
				"video_id", completed.VideoID.String(),
				"resource_id", completed.ResourceID,
				"error", err,
			)
			h.metrics.record(ctx, evt.Kind, outcomeDropped, "rejected", startedAt)
			return nil
		}
		h.log.WithContext(ctx).Errorw("msg", "encoder callback: apply event failed",
			"message_id", msg.ID,
			"video_id", completed.VideoID.String(),
			"resource_id", completed.ResourceID,
			"error", err,
		)
		h.metrics.record(ctx, evt.Kind, outcomeFailed, errors.Reason(err), startedAt)
		return err
	}

	if result == services.MediaStatusApplied {
		h.log.WithContext(ctx).Infow("msg", "encoder callback: media completed",
			"message_id", msg.ID,
			"video_id", completed.VideoID.String(),
			"resource_id", completed.ResourceID,
			"output_bucket", completed.OutputBucket,
			"folder", completed.Folder,
		)
		h.metrics.record(ctx, evt.Kind, outcomeApplied, "", startedAt)
		return nil
	}
	h.log.WithContext(ctx).Infow("msg", "encoder callback: drop event",
		"message_id", msg.ID,
		"video_id", completed.VideoID.String(),
		"resource_id", completed.ResourceID,
		"reason", string(result),
	)
	h.metrics.record(ctx, evt.Kind, outcomeDropped, string(result), startedAt)
	return nil
}

func messageID(msg *gcpubsub.Message) string {
	if msg == nil {
		return ""
	}
	return msg.ID
}
