package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/bionicotaku/lingo-services-media/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// MediaStatusResult 描述一次状态推进的结果。
type MediaStatusResult string

const (
	// MediaStatusApplied 表示槽位已更新并持久化。
	MediaStatusApplied MediaStatusResult = "applied"
	// MediaStatusVideoMissing 表示目标视频不存在，事件被丢弃。
	MediaStatusVideoMissing MediaStatusResult = "video_missing"
	// MediaStatusStale 表示没有槽位持有该 resource id，事件被丢弃。
	MediaStatusStale MediaStatusResult = "stale"
)

// UpdateMediaStatusInput 输入参数；Folder/Filename 仅在 COMPLETED 时使用。
type UpdateMediaStatusInput struct {
	VideoID    uuid.UUID
	ResourceID string
	Status     po.MediaStatus
	Folder     string
	Filename   string
}

// MediaStatusService 根据编码器回调推进音视频槽位状态。
type MediaStatusService struct {
	repo      VideoRepository
	txManager txmanager.Manager
	log       *log.Helper
}

// NewMediaStatusService 构造 MediaStatusService。
func NewMediaStatusService(repo VideoRepository, tx txmanager.Manager, logger log.Logger) *MediaStatusService {
	return &MediaStatusService{repo: repo, txManager: tx, log: log.NewHelper(logger)}
}

// UpdateMediaStatus 在行锁内执行 读取 → 匹配 checksum → 推进 → 持久化。
// 视频不存在或 resource id 不匹配时返回对应结果且不报错。
func (s *MediaStatusService) UpdateMediaStatus(ctx context.Context, input UpdateMediaStatusInput) (MediaStatusResult, error) {
	if input.VideoID == uuid.Nil {
		return "", errors.BadRequest(ReasonVideoInvalid, "video_id is required")
	}
	switch input.Status {
	case po.MediaStatusProcessing, po.MediaStatusCompleted, po.MediaStatusError:
	default:
		return "", errors.BadRequest(ReasonMediaStatusInvalid, fmt.Sprintf("unsupported media status %q", input.Status))
	}

	var (
		result    MediaStatusResult
		mediaType po.MediaType
	)
	err := s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		video, err := s.repo.GetForUpdate(txCtx, sess, input.VideoID)
		if err != nil {
			if errors.Is(err, repositories.ErrVideoNotFound) {
				result = MediaStatusVideoMissing
				return nil
			}
			return err
		}

		t, ok := video.MatchAudioVideo(input.ResourceID)
		if !ok {
			result = MediaStatusStale
			return nil
		}
		mediaType = t

		if err := applyMediaStatus(video, t, input); err != nil {
			return err
		}
		if err := s.repo.Update(txCtx, sess, video); err != nil {
			return err
		}
		result = MediaStatusApplied
		return nil
	})
	if err != nil {
		if errors.Is(err, po.ErrInvalidMediaTransition) {
			s.log.WithContext(ctx).Warnf("media status rejected: video_id=%s resource_id=%s status=%s err=%v", input.VideoID, input.ResourceID, input.Status, err)
			return "", errors.Conflict(ReasonMediaStatusInvalid, err.Error()).WithCause(err)
		}
		s.log.WithContext(ctx).Errorf("update media status failed: video_id=%s resource_id=%s err=%v", input.VideoID, input.ResourceID, err)
		return "", errors.InternalServer(ReasonVideoPersistFailed, fmt.Sprintf("failed to update media status: video_id=%s", input.VideoID)).WithCause(fmt.Errorf("update media status: %w", err))
	}

	switch result {
	case MediaStatusApplied:
		s.log.WithContext(ctx).Infof("UpdateMediaStatus: video_id=%s type=%s status=%s", input.VideoID, mediaType, input.Status)
	default:
		s.log.WithContext(ctx).Infof("media status dropped: video_id=%s resource_id=%s reason=%s", input.VideoID, input.ResourceID, result)
	}
	return result, nil
}

func applyMediaStatus(video *po.Video, t po.MediaType, input UpdateMediaStatusInput) error {
	switch input.Status {
	case po.MediaStatusProcessing:
		return video.Processing(t)
	case po.MediaStatusCompleted:
		return video.Completed(t, EncodedLocation(input.Folder, input.Filename))
	default:
		return video.Failed(t)
	}
}

// EncodedLocation 拼接编码产物路径 folder/filename；两者皆空时返回空串。
func EncodedLocation(folder, filename string) string {
	folder = strings.TrimSpace(folder)
	filename = strings.TrimSpace(filename)
	if folder == "" && filename == "" {
		return ""
	}
	return folder + "/" + filename
}
