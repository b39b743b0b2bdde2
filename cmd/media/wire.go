//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

//go:generate go run github.com/google/wire/cmd/wire

package main

import (
	"context"

	"github.com/bionicotaku/lingo-services-media/internal/clients"
	configloader "github.com/bionicotaku/lingo-services-media/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-media/internal/infrastructure/messaging"
	"github.com/bionicotaku/lingo-services-media/internal/repositories"
	"github.com/bionicotaku/lingo-services-media/internal/services"
	encodercallback "github.com/bionicotaku/lingo-services-media/internal/tasks/encoder_callback"
	outboxtasks "github.com/bionicotaku/lingo-services-media/internal/tasks/outbox"

	"github.com/bionicotaku/lingo-utils/gclog"
	obswire "github.com/bionicotaku/lingo-utils/observability"
	"github.com/bionicotaku/lingo-utils/pgxpoolx"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2"
	"github.com/google/wire"
)

// serviceBindings 将仓储与客户端绑定到 services 层接口。
var serviceBindings = wire.NewSet(
	wire.Bind(new(services.VideoRepository), new(*repositories.VideoRepository)),
	wire.Bind(new(services.CategoryGateway), new(*repositories.CategoryRepository)),
	wire.Bind(new(services.GenreGateway), new(*repositories.GenreRepository)),
	wire.Bind(new(services.CastMemberGateway), new(*repositories.CastMemberRepository)),
	wire.Bind(new(services.OutboxEnqueuer), new(*repositories.OutboxRepository)),
	wire.Bind(new(services.MediaResourceGateway), new(*clients.MediaResourceGateway)),
)

// wireApp 构建媒体服务进程。
//
// 依赖注入顺序:
//  1. 配置加载: configloader.ProviderSet 解析配置并派生组件配置
//  2. 基础设施: gclog → observability → pgxpoolx → txmanager → Pub/Sub（回调订阅 + 编码任务主题）→ GCS
//  3. 业务层: repositories → clients → services
//  4. 后台任务: 编码回调消费者 + Outbox 发布器
//  5. 应用: newApp 创建 Kratos App
func wireApp(context.Context, configloader.Params) (*kratos.App, func(), error) {
	panic(wire.Build(
		configloader.ProviderSet, // 配置加载与解析
		gclog.ProviderSet,        // 结构化日志
		obswire.ProviderSet,      // OpenTelemetry 追踪和指标
		pgxpoolx.ProviderSet,     // PostgreSQL 连接池
		txmanager.ProviderSet,    // 事务管理器
		messaging.ProviderSet,    // 编码回调订阅 + 编码任务发布
		clients.ProviderSet,      // Cloud Storage 与媒体资源网关
		repositories.ProviderSet,
		serviceBindings,
		services.ProviderSet,
		encodercallback.ProviderSet,
		outboxtasks.ProvideRunner,
		newApp,
	))
}
