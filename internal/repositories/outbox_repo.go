package repositories

import (
	"context"
	"fmt"
	"time"

	outboxpkg "github.com/bionicotaku/lingo-utils/outbox"
	outboxcfg "github.com/bionicotaku/lingo-utils/outbox/config"
	"github.com/bionicotaku/lingo-utils/outbox/store"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OutboxMessage 描述需要写入 media.outbox_events 的事件数据。
type OutboxMessage = store.Message

// OutboxRepository 在 media schema 下持久化待发布的编码请求。
type OutboxRepository struct {
	delegate *store.Repository
	log      *log.Helper
}

// NewOutboxRepository 构建 Outbox 仓储；schema 初始化失败时回退到默认表。
func NewOutboxRepository(db *pgxpool.Pool, logger log.Logger, cfg outboxcfg.Config) *OutboxRepository {
	helper := log.NewHelper(logger)
	storeRepo, err := outboxpkg.NewRepository(db, logger, outboxpkg.RepositoryOptions{Schema: cfg.Schema})
	if err != nil {
		helper.Errorw("msg", "init outbox repository failed", "schema", cfg.Schema, "error", err)
		storeRepo = store.NewRepository(db, logger)
	}
	return &OutboxRepository{delegate: storeRepo, log: helper}
}

// Enqueue 在调用方事务内插入事件；AvailableAt 缺省为当前时间。
func (r *OutboxRepository) Enqueue(ctx context.Context, sess txmanager.Session, msg OutboxMessage) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("enqueue outbox %s: empty payload", msg.EventType)
	}
	if msg.AvailableAt.IsZero() {
		msg.AvailableAt = time.Now().UTC()
	}
	if err := r.delegate.Enqueue(ctx, sess, msg); err != nil {
		r.log.WithContext(ctx).Errorf("enqueue outbox failed: event_id=%s type=%s err=%v", msg.EventID, msg.EventType, err)
		return fmt.Errorf("enqueue outbox %s: %w", msg.EventID, err)
	}
	return nil
}

// CountPending 返回尚未发布的事件数量。
func (r *OutboxRepository) CountPending(ctx context.Context) (int64, error) {
	return r.delegate.CountPending(ctx)
}

// Shared 返回底层通用实现，供发布 Runner 领取与确认事件。
func (r *OutboxRepository) Shared() *store.Repository {
	return r.delegate
}
