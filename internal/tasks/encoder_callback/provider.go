package encodercallback

import (
	"github.com/bionicotaku/lingo-services-media/internal/infrastructure/messaging"
	"github.com/bionicotaku/lingo-services-media/internal/services"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet 暴露编码回调任务的构造函数。
var ProviderSet = wire.NewSet(ProvideHandler, ProvideTask)

// ProvideHandler 以 MediaStatusService 构造 Handler。
func ProvideHandler(statuses *services.MediaStatusService, logger log.Logger) *Handler {
	return NewHandler(statuses, logger)
}

// ProvideTask 绑定回调订阅与 Handler。
func ProvideTask(subscriber messaging.EncoderCallbackSubscriber, handler *Handler, logger log.Logger) (*Task, error) {
	return NewTask(subscriber, handler, logger)
}
