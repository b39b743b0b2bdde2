// Package messaging 为编码回调订阅与编码任务主题分别构造 Pub/Sub 组件。
package messaging

import (
	"context"
	"fmt"

	configloader "github.com/bionicotaku/lingo-services-media/internal/infrastructure/configloader"

	"github.com/bionicotaku/lingo-utils/gcpubsub"
	"github.com/google/wire"
)

// EncoderCallbackSubscriber 订阅编码器回调。
type EncoderCallbackSubscriber interface {
	gcpubsub.Subscriber
}

// EncoderJobPublisher 发布编码任务（由 Outbox Runner 使用）。
type EncoderJobPublisher interface {
	gcpubsub.Publisher
}

// ProviderSet 暴露两类 Pub/Sub 端点。
var ProviderSet = wire.NewSet(NewEncoderCallbackSubscriber, NewEncoderJobPublisher)

// NewEncoderCallbackSubscriber 基于 encoder_callback 配置创建订阅者。
func NewEncoderCallbackSubscriber(ctx context.Context, msg configloader.MessagingConfig, deps gcpubsub.Dependencies) (EncoderCallbackSubscriber, func(), error) {
	cfg := configloader.ToGCPubSubConfig(msg.EncoderCallback)
	if cfg.SubscriptionID == "" {
		return nil, nil, fmt.Errorf("messaging: encoder callback subscription not configured")
	}
	component, cleanup, err := gcpubsub.NewComponent(ctx, cfg, deps)
	if err != nil {
		return nil, nil, fmt.Errorf("messaging: init encoder callback subscriber: %w", err)
	}
	return gcpubsub.ProvideSubscriber(component), cleanup, nil
}

// NewEncoderJobPublisher 基于 encoder_jobs 配置创建发布者。
func NewEncoderJobPublisher(ctx context.Context, msg configloader.MessagingConfig, deps gcpubsub.Dependencies) (EncoderJobPublisher, func(), error) {
	cfg := configloader.ToGCPubSubConfig(msg.EncoderJobs)
	if cfg.TopicID == "" {
		return nil, nil, fmt.Errorf("messaging: encoder job topic not configured")
	}
	component, cleanup, err := gcpubsub.NewComponent(ctx, cfg, deps)
	if err != nil {
		return nil, nil, fmt.Errorf("messaging: init encoder job publisher: %w", err)
	}
	return gcpubsub.ProvidePublisher(component), cleanup, nil
}
