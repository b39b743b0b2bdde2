// Package outbox 将 Outbox 仓储与编码任务发布器组装为可运行的发布 Runner。
package outbox

import (
	outboxcfg "github.com/bionicotaku/lingo-utils/outbox/config"
	outboxpublisher "github.com/bionicotaku/lingo-utils/outbox/publisher"

	configloader "github.com/bionicotaku/lingo-services-media/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-media/internal/infrastructure/messaging"
	"github.com/bionicotaku/lingo-services-media/internal/repositories"

	"github.com/go-kratos/kratos/v2/log"
	"go.opentelemetry.io/otel"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
)

// ProvideRunner 将 Outbox 仓储与编码任务主题包装为 Outbox Runner；主题未配置时返回 nil。
func ProvideRunner(
	repo *repositories.OutboxRepository,
	publisher messaging.EncoderJobPublisher,
	msg configloader.MessagingConfig,
	cfg outboxcfg.Config,
	logger log.Logger,
) *outboxpublisher.Runner {
	if repo == nil || publisher == nil || logger == nil {
		return nil
	}
	helper := log.NewHelper(logger)
	if msg.EncoderJobs.TopicID == "" {
		helper.Warn("skip initializing outbox runner: encoder job topic not configured")
		return nil
	}

	pubCfg := cfg.Normalize().Publisher

	meterProvider := otel.GetMeterProvider()
	if !boolValue(pubCfg.MetricsEnabled, true) {
		meterProvider = noopmetric.NewMeterProvider()
	}

	if boolValue(pubCfg.LoggingEnabled, true) {
		helper.Infof("init outbox runner: topic=%s batch_size=%d workers=%d tick_interval=%s",
			msg.EncoderJobs.TopicID, pubCfg.BatchSize, pubCfg.Workers, pubCfg.TickInterval)
	}

	runner, err := outboxpublisher.NewRunner(outboxpublisher.RunnerParams{
		Store:     repo.Shared(),
		Publisher: publisher,
		Config:    pubCfg,
		Logger:    logger,
		Meter:     meterProvider.Meter("lingo-services-media.outbox"),
	})
	if err != nil {
		helper.Errorw("msg", "init outbox runner failed", "error", err)
		return nil
	}
	return runner
}

func boolValue(ptr *bool, def bool) bool {
	if ptr == nil {
		return def
	}
	return *ptr
}
