// Package main 提供媒体生命周期服务的启动入口。
// 负责加载配置、通过 Wire 初始化依赖，并以 Kratos App 托管编码回调消费者与 Outbox 发布器。
package main

import (
	"context"
	"errors"
	"flag"
	"sync"

	"github.com/bionicotaku/lingo-services-media/internal/clients"
	configloader "github.com/bionicotaku/lingo-services-media/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-media/internal/services"
	encodercallback "github.com/bionicotaku/lingo-services-media/internal/tasks/encoder_callback"

	obswire "github.com/bionicotaku/lingo-utils/observability"
	outboxpublisher "github.com/bionicotaku/lingo-utils/outbox/publisher"
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"

	_ "go.uber.org/automaxprocs" // 自动设置 GOMAXPROCS 为容器 CPU 配额
)

type worker struct {
	name string
	run  func(context.Context) error
}

// newApp 组装 Kratos 应用：启动前确认对象存储可用，后台 worker 随 App 启停。
// 可观测性组件仅用于让 Wire 管理其生命周期。
func newApp(
	_ *obswire.Component,
	logger log.Logger,
	meta configloader.ServiceInfo,
	storage *clients.GCSStorage,
	videos *services.VideoService,
	callbacks *encodercallback.Task,
	publisher *outboxpublisher.Runner,
) *kratos.App {
	options := []kratos.Option{
		kratos.ID(meta.InstanceID),
		kratos.Name(meta.Name),
		kratos.Version(meta.Version),
		kratos.Metadata(map[string]string{"environment": meta.Environment}),
		kratos.Logger(logger),
	}

	var workers []worker
	if callbacks != nil {
		workers = append(workers, worker{name: "encoder callback consumer", run: callbacks.Run})
	}
	if publisher != nil {
		workers = append(workers, worker{name: "outbox publisher", run: publisher.Run})
	}
	helper := log.NewHelper(logger)
	if storage != nil {
		options = append(options, kratos.BeforeStart(func(ctx context.Context) error {
			if err := storage.CheckBucket(ctx); err != nil {
				return err
			}
			if videos != nil {
				helper.Infof("video service ready")
			}
			return nil
		}))
	}
	if len(workers) == 0 {
		return kratos.New(options...)
	}

	var (
		wg      sync.WaitGroup
		cancels []context.CancelFunc
	)

	options = append(options,
		kratos.BeforeStart(func(ctx context.Context) error {
			cancels = make([]context.CancelFunc, len(workers))
			for i := range workers {
				runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
				cancels[i] = cancel
				wg.Add(1)
				w := workers[i]
				go func() {
					defer wg.Done()
					if err := w.run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
						helper.Warnf("%s stopped: %v", w.name, err)
					}
				}()
			}
			return nil
		}),
		kratos.AfterStop(func(ctx context.Context) error {
			for _, cancel := range cancels {
				if cancel != nil {
					cancel()
				}
			}
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-ctx.Done():
			case <-done:
			}
			return nil
		}),
	)
	return kratos.New(options...)
}

func main() {
	ctx := context.Background()

	confFlag := flag.String("conf", "", "config path or directory, eg: -conf configs/config.yaml")
	flag.Parse()

	app, cleanup, err := wireApp(ctx, configloader.Params{ConfPath: *confFlag})
	if err != nil {
		panic(err)
	}
	defer cleanup()

	// 阻塞直到收到 SIGINT/SIGTERM
	if err := app.Run(); err != nil {
		panic(err)
	}
}
