package services

import (
	"fmt"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/google/uuid"
)

// 错误原因码，随 kratos Error 一并返回给调用方。
const (
	ReasonVideoInvalid       = "MEDIA_VIDEO_INVALID"
	ReasonVideoNotFound      = "MEDIA_VIDEO_NOT_FOUND"
	ReasonMediaNotFound      = "MEDIA_RESOURCE_NOT_FOUND"
	ReasonMediaTypeInvalid   = "MEDIA_TYPE_INVALID"
	ReasonMediaStatusInvalid = "MEDIA_STATUS_INVALID"
	ReasonVideoPersistFailed = "MEDIA_VIDEO_PERSIST_FAILED"
	ReasonReferenceLookup    = "MEDIA_REFERENCE_LOOKUP_FAILED"
	ReasonStorageFailed      = "MEDIA_STORAGE_FAILED"
)

var (
	// ErrVideoNotFound 是当视频未找到时返回的哨兵错误。
	ErrVideoNotFound = errors.NotFound(ReasonVideoNotFound, "video not found")
	// ErrMediaNotFound 表示指定槽位没有已存储的资源。
	ErrMediaNotFound = errors.NotFound(ReasonMediaNotFound, "media resource not found")
)

// videoNotFound 返回携带 video_id 的 NotFound，errors.Is 仍与 ErrVideoNotFound 匹配。
func videoNotFound(videoID uuid.UUID) error {
	return errors.NotFound(ReasonVideoNotFound, fmt.Sprintf("video not found: video_id=%s", videoID))
}

func mediaNotFound(videoID uuid.UUID, mediaType po.MediaType) error {
	return errors.NotFound(ReasonMediaNotFound, fmt.Sprintf("media resource not found: video_id=%s type=%s", videoID, mediaType))
}
