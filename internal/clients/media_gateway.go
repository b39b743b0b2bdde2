package clients

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// FolderOf 返回视频资源所在目录，不含尾部斜杠。
func FolderOf(videoID uuid.UUID) string {
	return "videoId-" + videoID.String()
}

// PathOf 返回 (videoID, mediaType) 对应的确定性存储路径。
func PathOf(videoID uuid.UUID, mediaType po.MediaType) string {
	return FolderOf(videoID) + "/type-" + string(mediaType)
}

// MediaResourceGateway 将原始资源按确定性路径写入存储并产出媒体描述。
type MediaResourceGateway struct {
	storage MediaStorage
	log     *log.Helper
}

// NewMediaResourceGateway 构造 MediaResourceGateway。
func NewMediaResourceGateway(storage MediaStorage, logger log.Logger) *MediaResourceGateway {
	return &MediaResourceGateway{storage: storage, log: log.NewHelper(logger)}
}

// StoreAudioVideo 存储音视频资源，返回 PENDING 状态的媒体描述。
func (g *MediaResourceGateway) StoreAudioVideo(ctx context.Context, videoID uuid.UUID, resource po.VideoResource) (po.AudioVideoMedia, error) {
	if !resource.Type.IsAudioVideo() {
		return po.AudioVideoMedia{}, fmt.Errorf("store audio video: unexpected media type %s", resource.Type)
	}
	path, stored, err := g.store(ctx, videoID, resource)
	if err != nil {
		return po.AudioVideoMedia{}, err
	}
	return po.NewAudioVideoMedia(stored.Checksum, stored.Name, path), nil
}

// StoreImage 存储图片资源。
func (g *MediaResourceGateway) StoreImage(ctx context.Context, videoID uuid.UUID, resource po.VideoResource) (po.ImageMedia, error) {
	if resource.Type.IsAudioVideo() {
		return po.ImageMedia{}, fmt.Errorf("store image: unexpected media type %s", resource.Type)
	}
	path, stored, err := g.store(ctx, videoID, resource)
	if err != nil {
		return po.ImageMedia{}, err
	}
	return po.NewImageMedia(stored.Checksum, stored.Name, path), nil
}

// store 写入资源并返回路径与补全 checksum 后的资源。
func (g *MediaResourceGateway) store(ctx context.Context, videoID uuid.UUID, resource po.VideoResource) (string, po.Resource, error) {
	path := PathOf(videoID, resource.Type)
	res := resource.Resource
	if res.Checksum == "" {
		res.Checksum = po.ComputeChecksum(res.Content)
	}
	if err := g.storage.Store(ctx, path, res); err != nil {
		g.log.WithContext(ctx).Errorf("store resource failed: video_id=%s type=%s err=%v", videoID, resource.Type, err)
		return "", po.Resource{}, fmt.Errorf("store %s: %w", resource.Type, err)
	}
	g.log.WithContext(ctx).Infof("resource stored: video_id=%s type=%s checksum=%s", videoID, resource.Type, res.Checksum)
	return path, res, nil
}

// GetResource 读取指定槽位的原始资源；不存在时返回 (nil, nil)。
func (g *MediaResourceGateway) GetResource(ctx context.Context, videoID uuid.UUID, mediaType po.MediaType) (*po.Resource, error) {
	resource, err := g.storage.Get(ctx, PathOf(videoID, mediaType))
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", mediaType, err)
	}
	return resource, nil
}

// ClearResources 删除视频目录下的全部对象。
func (g *MediaResourceGateway) ClearResources(ctx context.Context, videoID uuid.UUID) error {
	paths, err := g.storage.List(ctx, FolderOf(videoID)+"/")
	if err != nil {
		return fmt.Errorf("list resources: %w", err)
	}
	if len(paths) == 0 {
		return nil
	}
	if err := g.storage.DeleteAll(ctx, paths); err != nil {
		return fmt.Errorf("delete resources: %w", err)
	}
	g.log.WithContext(ctx).Infof("resources cleared: video_id=%s count=%d", videoID, len(paths))
	return nil
}
