// Package repositories 实现数据访问层，基于 pgx 直接访问 media schema。
package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/bionicotaku/lingo-services-media/internal/repositories/mappers"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrVideoNotFound 表示请求的视频不存在。
var ErrVideoNotFound = errors.New("video not found")

// dbtx 是 pgxpool.Pool 与 pgx.Tx 的公共子集。
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// querier 在事务存在时使用事务句柄，否则回落到连接池。
func querier(db *pgxpool.Pool, sess txmanager.Session) dbtx {
	if sess != nil {
		return sess.Tx()
	}
	return db
}

const (
	insertVideoSQL = `insert into media.videos (` + mappers.VideoColumns + `)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	updateVideoSQL = `update media.videos set
	title = $2,
	description = $3,
	launch_year = $4,
	duration_seconds = $5,
	opened = $6,
	published = $7,
	rating = $8,
	video_media = $9,
	trailer_media = $10,
	banner_media = $11,
	thumbnail_media = $12,
	thumbnail_half_media = $13,
	category_ids = $14,
	genre_ids = $15,
	cast_member_ids = $16,
	updated_at = $17
where video_id = $1`

	selectVideoSQL = `select ` + mappers.VideoColumns + ` from media.videos where video_id = $1`

	deleteVideoSQL = `delete from media.videos where video_id = $1`
)

// VideoRepository 提供视频聚合的持久化访问能力。
type VideoRepository struct {
	db  *pgxpool.Pool
	log *log.Helper
}

// NewVideoRepository 构造 VideoRepository 实例（供 Wire 注入使用）。
func NewVideoRepository(db *pgxpool.Pool, logger log.Logger) *VideoRepository {
	return &VideoRepository{
		db:  db,
		log: log.NewHelper(logger),
	}
}

// Create 插入新的视频聚合。
func (r *VideoRepository) Create(ctx context.Context, sess txmanager.Session, video *po.Video) error {
	record, err := mappers.RecordFromVideo(video)
	if err != nil {
		return fmt.Errorf("create video: %w", err)
	}
	if _, err := querier(r.db, sess).Exec(ctx, insertVideoSQL, record.Args()...); err != nil {
		r.log.WithContext(ctx).Errorf("create video failed: video_id=%s err=%v", video.ID, err)
		return fmt.Errorf("create video: %w", err)
	}
	r.log.WithContext(ctx).Infof("video created: video_id=%s title=%s", video.ID, video.Title)
	return nil
}

// Update 整体覆盖视频聚合，created_at 不参与更新。
func (r *VideoRepository) Update(ctx context.Context, sess txmanager.Session, video *po.Video) error {
	record, err := mappers.RecordFromVideo(video)
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}
	tag, err := querier(r.db, sess).Exec(ctx, updateVideoSQL, record.UpdateArgs()...)
	if err != nil {
		r.log.WithContext(ctx).Errorf("update video failed: video_id=%s err=%v", video.ID, err)
		return fmt.Errorf("update video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVideoNotFound
	}
	r.log.WithContext(ctx).Infof("video updated: video_id=%s", video.ID)
	return nil
}

// Get 按 ID 读取视频聚合。
func (r *VideoRepository) Get(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.Video, error) {
	return r.get(ctx, sess, selectVideoSQL, videoID)
}

// GetForUpdate 在事务内读取并锁定视频行，必须配合 sess 使用。
func (r *VideoRepository) GetForUpdate(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.Video, error) {
	if sess == nil {
		return nil, fmt.Errorf("get video for update: transaction session required")
	}
	return r.get(ctx, sess, selectVideoSQL+" for update", videoID)
}

func (r *VideoRepository) get(ctx context.Context, sess txmanager.Session, query string, videoID uuid.UUID) (*po.Video, error) {
	var record mappers.VideoRecord
	if err := querier(r.db, sess).QueryRow(ctx, query, videoID).Scan(record.ScanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVideoNotFound
		}
		r.log.WithContext(ctx).Errorf("get video failed: video_id=%s err=%v", videoID, err)
		return nil, fmt.Errorf("get video: %w", err)
	}
	video, err := mappers.VideoFromRecord(record)
	if err != nil {
		r.log.WithContext(ctx).Errorf("decode video failed: video_id=%s err=%v", videoID, err)
		return nil, fmt.Errorf("decode video: %w", err)
	}
	return video, nil
}

// Delete 删除视频聚合，记录不存在时返回 ErrVideoNotFound。
func (r *VideoRepository) Delete(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) error {
	tag, err := querier(r.db, sess).Exec(ctx, deleteVideoSQL, videoID)
	if err != nil {
		r.log.WithContext(ctx).Errorf("delete video failed: video_id=%s err=%v", videoID, err)
		return fmt.Errorf("delete video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVideoNotFound
	}
	r.log.WithContext(ctx).Infof("video deleted: video_id=%s", videoID)
	return nil
}
