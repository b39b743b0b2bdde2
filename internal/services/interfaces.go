package services

import (
	"context"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/bionicotaku/lingo-services-media/internal/models/vo"
	"github.com/bionicotaku/lingo-services-media/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/uuid"
)

// VideoRepository 抽象视频聚合的持久化能力。
type VideoRepository interface {
	Create(ctx context.Context, sess txmanager.Session, video *po.Video) error
	Update(ctx context.Context, sess txmanager.Session, video *po.Video) error
	Get(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.Video, error)
	GetForUpdate(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.Video, error)
	Delete(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) error
}

// ExistenceGateway 返回给定 ids 中实际存在的子集。
type ExistenceGateway interface {
	ExistsByIDs(ctx context.Context, ids []string) ([]string, error)
}

// CategoryGateway 查询分类存在性。
type CategoryGateway interface{ ExistenceGateway }

// GenreGateway 查询流派存在性。
type GenreGateway interface{ ExistenceGateway }

// CastMemberGateway 查询演员存在性。
type CastMemberGateway interface{ ExistenceGateway }

// MediaResourceGateway 抽象原始资源的存取。
type MediaResourceGateway interface {
	StoreAudioVideo(ctx context.Context, videoID uuid.UUID, resource po.VideoResource) (po.AudioVideoMedia, error)
	StoreImage(ctx context.Context, videoID uuid.UUID, resource po.VideoResource) (po.ImageMedia, error)
	GetResource(ctx context.Context, videoID uuid.UUID, mediaType po.MediaType) (*po.Resource, error)
	ClearResources(ctx context.Context, videoID uuid.UUID) error
}

// OutboxEnqueuer 在事务内写入 Outbox 事件。
type OutboxEnqueuer interface {
	Enqueue(ctx context.Context, sess txmanager.Session, msg repositories.OutboxMessage) error
}

// VideoServiceInterface 抽象视频写入/读取用例。
type VideoServiceInterface interface {
	CreateVideo(ctx context.Context, input CreateVideoInput) (*vo.VideoCreated, error)
	UpdateVideo(ctx context.Context, input UpdateVideoInput) (*vo.VideoUpdated, error)
	DeleteVideo(ctx context.Context, videoID uuid.UUID) error
	GetVideo(ctx context.Context, videoID uuid.UUID) (*vo.VideoDetail, error)
	GetMedia(ctx context.Context, videoID uuid.UUID, mediaType po.MediaType) (*vo.MediaResource, error)
}

// MediaStatusServiceInterface 抽象编码回调对媒体状态的推进。
type MediaStatusServiceInterface interface {
	UpdateMediaStatus(ctx context.Context, input UpdateMediaStatusInput) (MediaStatusResult, error)
}

var (
	_ VideoServiceInterface       = (*VideoService)(nil)
	_ MediaStatusServiceInterface = (*MediaStatusService)(nil)
)
