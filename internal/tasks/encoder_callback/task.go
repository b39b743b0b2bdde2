package encodercallback

import (
	"context"
	"errors"
	"fmt"

	"github.com/bionicotaku/lingo-utils/gcpubsub"
	"github.com/go-kratos/kratos/v2/log"
)

// Task 封装编码回调订阅的消费循环。
type Task struct {
	subscriber gcpubsub.Subscriber
	handler    *Handler
	log        *log.Helper
}

// NewTask 构造 Task。
func NewTask(subscriber gcpubsub.Subscriber, handler *Handler, logger log.Logger) (*Task, error) {
	if subscriber == nil {
		return nil, fmt.Errorf("encoder callback: subscriber is required")
	}
	if handler == nil {
		return nil, fmt.Errorf("encoder callback: handler is required")
	}
	return &Task{
		subscriber: subscriber,
		handler:    handler,
		log:        log.NewHelper(logger),
	}, nil
}

// Run 阻塞消费直到 ctx 取消。
func (t *Task) Run(ctx context.Context) error {
	if t == nil {
		return nil
	}
	t.log.WithContext(ctx).Info("encoder callback: consumer started")
	err := t.subscriber.Receive(ctx, t.handler.Handle)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("encoder callback: receive: %w", err)
	}
	t.log.WithContext(ctx).Info("encoder callback: consumer stopped")
	return nil
}
