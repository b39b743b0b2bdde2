package services

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/bionicotaku/lingo-services-media/internal/models/vo"
	"github.com/bionicotaku/lingo-services-media/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// VideoInput 描述创建/更新共用的原始输入；Rating 为原始字符串，未知值视为缺失。
type VideoInput struct {
	Title       string
	Description string
	LaunchYear  int
	Duration    float64
	Opened      bool
	Published   bool
	Rating      string
	Categories  []string
	Genres      []string
	CastMembers []string

	Video         *po.Resource
	Trailer       *po.Resource
	Banner        *po.Resource
	Thumbnail     *po.Resource
	ThumbnailHalf *po.Resource
}

// CreateVideoInput 表示创建视频的输入。
type CreateVideoInput struct {
	VideoInput
}

// UpdateVideoInput 表示更新视频的输入；描述字段整体替换，未提供的资源保持原槽位。
type UpdateVideoInput struct {
	VideoID uuid.UUID
	VideoInput
}

func (in VideoInput) props() po.VideoProps {
	rating, _ := po.ParseRating(in.Rating)
	return po.VideoProps{
		Title:       in.Title,
		Description: in.Description,
		LaunchYear:  in.LaunchYear,
		Duration:    in.Duration,
		Opened:      in.Opened,
		Published:   in.Published,
		Rating:      rating,
		Categories:  in.Categories,
		Genres:      in.Genres,
		CastMembers: in.CastMembers,
	}
}

// resources 按槽位顺序返回已提供的资源。
func (in VideoInput) resources() []po.VideoResource {
	slots := []struct {
		t   po.MediaType
		res *po.Resource
	}{
		{po.MediaTypeVideo, in.Video},
		{po.MediaTypeTrailer, in.Trailer},
		{po.MediaTypeBanner, in.Banner},
		{po.MediaTypeThumbnail, in.Thumbnail},
		{po.MediaTypeThumbnailHalf, in.ThumbnailHalf},
	}
	out := make([]po.VideoResource, 0, len(slots))
	for _, s := range slots {
		if s.res != nil {
			out = append(out, po.NewVideoResource(*s.res, s.t))
		}
	}
	return out
}

// storedMedia 记录已写入存储、待挂载到聚合的媒体描述。
type storedMedia struct {
	audioVideo map[po.MediaType]po.AudioVideoMedia
	images     map[po.MediaType]po.ImageMedia
	order      []po.MediaType
}

func (s storedMedia) attach(video *po.Video) {
	for _, t := range s.order {
		switch t {
		case po.MediaTypeVideo:
			m := s.audioVideo[t]
			video.SetVideo(&m)
		case po.MediaTypeTrailer:
			m := s.audioVideo[t]
			video.SetTrailer(&m)
		case po.MediaTypeBanner:
			m := s.images[t]
			video.SetBanner(&m)
		case po.MediaTypeThumbnail:
			m := s.images[t]
			video.SetThumbnail(&m)
		case po.MediaTypeThumbnailHalf:
			m := s.images[t]
			video.SetThumbnailHalf(&m)
		}
	}
}

// VideoService 编排视频聚合的创建、更新、删除与读取。
type VideoService struct {
	repo       VideoRepository
	references *ReferenceValidator
	media      MediaResourceGateway
	encoder    *EncodeRequestWriter
	txManager  txmanager.Manager
	log        *log.Helper
}

// NewVideoService 构造 VideoService。
func NewVideoService(repo VideoRepository, references *ReferenceValidator, media MediaResourceGateway, encoder *EncodeRequestWriter, tx txmanager.Manager, logger log.Logger) *VideoService {
	return &VideoService{
		repo:       repo,
		references: references,
		media:      media,
		encoder:    encoder,
		txManager:  tx,
		log:        log.NewHelper(logger),
	}
}

// CreateVideo 校验输入、存储资源并持久化聚合；存储或持久化失败时清理该视频目录。
func (s *VideoService) CreateVideo(ctx context.Context, input CreateVideoInput) (*vo.VideoCreated, error) {
	video := po.NewVideo(input.props())
	if err := s.validate(ctx, video); err != nil {
		return nil, err
	}

	var eventIDs []uuid.UUID
	err := func() error {
		stored, err := s.storeResources(ctx, video.ID, input.resources())
		if err != nil {
			return err
		}
		stored.attach(video)
		return s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
			if err := s.repo.Create(txCtx, sess, video); err != nil {
				return err
			}
			ids, err := s.encoder.EnqueueAll(txCtx, sess, video, stored.order)
			if err != nil {
				return err
			}
			eventIDs = ids
			return nil
		})
	}()
	if err != nil {
		s.compensate(ctx, video.ID)
		s.log.WithContext(ctx).Errorf("create video failed: video_id=%s err=%v", video.ID, err)
		return nil, errors.InternalServer(ReasonVideoPersistFailed, fmt.Sprintf("failed to create video: video_id=%s", video.ID)).WithCause(fmt.Errorf("create video: %w", err))
	}

	s.log.WithContext(ctx).Infof("CreateVideo: video_id=%s title=%s media=%d", video.ID, video.Title, len(eventIDs))
	return vo.NewVideoCreated(video, eventIDs), nil
}

// UpdateVideo 替换描述字段并覆盖提供的媒体槽位；失败时不回滚已存储资源。
func (s *VideoService) UpdateVideo(ctx context.Context, input UpdateVideoInput) (*vo.VideoUpdated, error) {
	if input.VideoID == uuid.Nil {
		return nil, errors.BadRequest(ReasonVideoInvalid, "video_id is required")
	}

	current, err := s.repo.Get(ctx, nil, input.VideoID)
	if err != nil {
		return nil, s.mapLookupError(ctx, input.VideoID, err)
	}
	props := input.props()
	if err := s.validate(ctx, current.Update(props)); err != nil {
		return nil, err
	}

	var (
		updated  *po.Video
		eventIDs []uuid.UUID
	)
	err = func() error {
		stored, err := s.storeResources(ctx, input.VideoID, input.resources())
		if err != nil {
			return err
		}
		return s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
			// 锁定最新快照，避免覆盖并发的编码回调
			video, err := s.repo.GetForUpdate(txCtx, sess, input.VideoID)
			if err != nil {
				return err
			}
			video.Update(props)
			stored.attach(video)
			if err := s.repo.Update(txCtx, sess, video); err != nil {
				return err
			}
			ids, err := s.encoder.EnqueueAll(txCtx, sess, video, stored.order)
			if err != nil {
				return err
			}
			updated, eventIDs = video, ids
			return nil
		})
	}()
	if err != nil {
		if errors.Is(err, repositories.ErrVideoNotFound) {
			return nil, videoNotFound(input.VideoID)
		}
		s.log.WithContext(ctx).Errorf("update video failed: video_id=%s err=%v", input.VideoID, err)
		return nil, errors.InternalServer(ReasonVideoPersistFailed, fmt.Sprintf("failed to update video: video_id=%s", input.VideoID)).WithCause(fmt.Errorf("update video: %w", err))
	}

	s.log.WithContext(ctx).Infof("UpdateVideo: video_id=%s media=%d", updated.ID, len(eventIDs))
	return vo.NewVideoUpdated(updated, eventIDs), nil
}

// DeleteVideo 删除聚合并清理其存储目录；聚合不存在时仍清理目录。
func (s *VideoService) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	if videoID == uuid.Nil {
		return errors.BadRequest(ReasonVideoInvalid, "video_id is required")
	}
	err := s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		return s.repo.Delete(txCtx, sess, videoID)
	})
	if err != nil && !errors.Is(err, repositories.ErrVideoNotFound) {
		s.log.WithContext(ctx).Errorf("delete video failed: video_id=%s err=%v", videoID, err)
		return errors.InternalServer(ReasonVideoPersistFailed, fmt.Sprintf("failed to delete video: video_id=%s", videoID)).WithCause(fmt.Errorf("delete video: %w", err))
	}
	if err := s.media.ClearResources(ctx, videoID); err != nil {
		s.log.WithContext(ctx).Errorf("clear resources failed: video_id=%s err=%v", videoID, err)
		return errors.InternalServer(ReasonStorageFailed, fmt.Sprintf("failed to clear resources: video_id=%s", videoID)).WithCause(err)
	}
	s.log.WithContext(ctx).Infof("DeleteVideo: video_id=%s", videoID)
	return nil
}

// GetVideo 返回视频的只读视图。
func (s *VideoService) GetVideo(ctx context.Context, videoID uuid.UUID) (*vo.VideoDetail, error) {
	video, err := s.repo.Get(ctx, nil, videoID)
	if err != nil {
		return nil, s.mapLookupError(ctx, videoID, err)
	}
	return vo.NewVideoDetail(video), nil
}

// GetMedia 读取指定槽位的原始资源。
func (s *VideoService) GetMedia(ctx context.Context, videoID uuid.UUID, mediaType po.MediaType) (*vo.MediaResource, error) {
	if _, ok := po.ParseMediaType(string(mediaType)); !ok {
		return nil, errors.BadRequest(ReasonMediaTypeInvalid, fmt.Sprintf("unknown media type %q", mediaType))
	}
	resource, err := s.media.GetResource(ctx, videoID, mediaType)
	if err != nil {
		s.log.WithContext(ctx).Errorf("get media failed: video_id=%s type=%s err=%v", videoID, mediaType, err)
		return nil, errors.InternalServer(ReasonStorageFailed, fmt.Sprintf("failed to get media: video_id=%s", videoID)).WithCause(err)
	}
	if resource == nil {
		return nil, mediaNotFound(videoID, mediaType)
	}
	return vo.NewMediaResource(videoID, mediaType, resource), nil
}

// validate 累积引用与字段错误，一次性返回全部问题。
func (s *VideoService) validate(ctx context.Context, video *po.Video) error {
	n := po.NewNotification()
	if err := s.references.Validate(ctx, video, n); err != nil {
		s.log.WithContext(ctx).Errorf("validate references failed: video_id=%s err=%v", video.ID, err)
		return errors.InternalServer(ReasonReferenceLookup, fmt.Sprintf("failed to validate references: video_id=%s", video.ID)).WithCause(err)
	}
	video.Validate(n)
	if n.HasErrors() {
		return errors.BadRequest(ReasonVideoInvalid, n.Error()).WithCause(n)
	}
	return nil
}

func (s *VideoService) storeResources(ctx context.Context, videoID uuid.UUID, resources []po.VideoResource) (storedMedia, error) {
	stored := storedMedia{
		audioVideo: make(map[po.MediaType]po.AudioVideoMedia),
		images:     make(map[po.MediaType]po.ImageMedia),
	}
	for _, res := range resources {
		if res.Type.IsAudioVideo() {
			m, err := s.media.StoreAudioVideo(ctx, videoID, res)
			if err != nil {
				return stored, err
			}
			stored.audioVideo[res.Type] = m
		} else {
			m, err := s.media.StoreImage(ctx, videoID, res)
			if err != nil {
				return stored, err
			}
			stored.images[res.Type] = m
		}
		stored.order = append(stored.order, res.Type)
	}
	return stored, nil
}

// compensate 尽力清理视频目录，失败只记录日志。
func (s *VideoService) compensate(ctx context.Context, videoID uuid.UUID) {
	if err := s.media.ClearResources(ctx, videoID); err != nil {
		s.log.WithContext(ctx).Warnf("compensate resources failed: video_id=%s err=%v", videoID, err)
	}
}

func (s *VideoService) mapLookupError(ctx context.Context, videoID uuid.UUID, err error) error {
	if errors.Is(err, repositories.ErrVideoNotFound) {
		return videoNotFound(videoID)
	}
	s.log.WithContext(ctx).Errorf("get video failed: video_id=%s err=%v", videoID, err)
	return errors.InternalServer(ReasonVideoPersistFailed, fmt.Sprintf("failed to load video: video_id=%s", videoID)).WithCause(err)
}
