package clients_test

import (
	"context"
	"io"
	"testing"

	"github.com/bionicotaku/lingo-services-media/internal/clients"
	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateway(storage clients.MediaStorage) *clients.MediaResourceGateway {
	return clients.NewMediaResourceGateway(storage, log.NewStdLogger(io.Discard))
}

func TestPathOf(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	assert.Equal(t, "videoId-11111111-2222-3333-4444-555555555555", clients.FolderOf(id))
	assert.Equal(t, "videoId-11111111-2222-3333-4444-555555555555/type-THUMBNAIL_HALF", clients.PathOf(id, po.MediaTypeThumbnailHalf))
}

func TestMediaResourceGateway_StoreAudioVideo(t *testing.T) {
	ctx := context.Background()
	storage := newMemoryStorage()
	gw := newGateway(storage)
	videoID := uuid.New()

	resource := po.NewVideoResource(po.NewResource("", []byte("hello"), "video/mp4", "movie.mp4"), po.MediaTypeVideo)
	media, err := gw.StoreAudioVideo(ctx, videoID, resource)
	require.NoError(t, err)

	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", media.Checksum)
	assert.Equal(t, "movie.mp4", media.Name)
	assert.Equal(t, clients.PathOf(videoID, po.MediaTypeVideo), media.RawLocation)
	assert.Equal(t, po.MediaStatusPending, media.Status)
	assert.Empty(t, media.EncodedLocation)

	stored, err := gw.GetResource(ctx, videoID, po.MediaTypeVideo)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, []byte("hello"), stored.Content)

	_, err = gw.StoreAudioVideo(ctx, videoID, po.NewVideoResource(resource.Resource, po.MediaTypeBanner))
	require.Error(t, err)
}

func TestMediaResourceGateway_StoreImage(t *testing.T) {
	ctx := context.Background()
	storage := newMemoryStorage()
	gw := newGateway(storage)
	videoID := uuid.New()

	first := po.NewVideoResource(po.NewResource("c1", []byte("a"), "image/png", "a.png"), po.MediaTypeBanner)
	second := po.NewVideoResource(po.NewResource("c2", []byte("b"), "image/png", "b.png"), po.MediaTypeBanner)

	media, err := gw.StoreImage(ctx, videoID, first)
	require.NoError(t, err)
	assert.Equal(t, po.NewImageMedia("c1", "a.png", clients.PathOf(videoID, po.MediaTypeBanner)), media)

	// 同一槽位重复写入覆盖而非累积
	_, err = gw.StoreImage(ctx, videoID, second)
	require.NoError(t, err)
	paths, err := storage.List(ctx, clients.FolderOf(videoID))
	require.NoError(t, err)
	assert.Len(t, paths, 1)

	_, err = gw.StoreImage(ctx, videoID, po.NewVideoResource(first.Resource, po.MediaTypeTrailer))
	require.Error(t, err)
}

func TestMediaResourceGateway_StoreFailure(t *testing.T) {
	storage := newMemoryStorage()
	gw := newGateway(storage)
	videoID := uuid.New()
	storage.failOn[clients.PathOf(videoID, po.MediaTypeThumbnail)] = errBoom

	_, err := gw.StoreImage(context.Background(), videoID, po.NewVideoResource(po.NewResource("", []byte("x"), "image/png", "x.png"), po.MediaTypeThumbnail))
	require.ErrorIs(t, err, errBoom)
}

func TestMediaResourceGateway_ClearResources(t *testing.T) {
	ctx := context.Background()
	storage := newMemoryStorage()
	gw := newGateway(storage)
	videoID := uuid.New()
	otherID := uuid.New()

	for _, mt := range []po.MediaType{po.MediaTypeBanner, po.MediaTypeThumbnail} {
		_, err := gw.StoreImage(ctx, videoID, po.NewVideoResource(po.NewResource("", []byte(mt), "image/png", "x.png"), mt))
		require.NoError(t, err)
	}
	_, err := gw.StoreImage(ctx, otherID, po.NewVideoResource(po.NewResource("", []byte("o"), "image/png", "o.png"), po.MediaTypeBanner))
	require.NoError(t, err)

	require.NoError(t, gw.ClearResources(ctx, videoID))
	require.Len(t, storage.deleted, 1)
	assert.Equal(t, []string{
		clients.PathOf(videoID, po.MediaTypeBanner),
		clients.PathOf(videoID, po.MediaTypeThumbnail),
	}, storage.deleted[0])

	res, err := gw.GetResource(ctx, otherID, po.MediaTypeBanner)
	require.NoError(t, err)
	assert.NotNil(t, res)

	// 空目录不触发删除
	require.NoError(t, gw.ClearResources(ctx, uuid.New()))
	assert.Len(t, storage.deleted, 1)

	storage.listErr = errBoom
	require.ErrorIs(t, gw.ClearResources(ctx, videoID), errBoom)
}

func TestMediaResourceGateway_ComputesMissingChecksum(t *testing.T) {
	const helloSHA256 = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	ctx := context.Background()
	gw := newGateway(newMemoryStorage())
	videoID := uuid.New()

	t.Run("音视频槽位", func(t *testing.T) {
		media, err := gw.StoreAudioVideo(ctx, videoID, po.VideoResource{
			Resource: po.Resource{Content: []byte("hello"), Name: "raw.mp4"},
			Type:     po.MediaTypeVideo,
		})
		require.NoError(t, err)
		assert.Equal(t, helloSHA256, media.Checksum)

		video := po.NewVideo(po.VideoProps{Title: "T", LaunchYear: 2020, Rating: po.RatingL})
		video.SetVideo(&media)
		slot, ok := video.MatchAudioVideo(media.Checksum)
		require.True(t, ok)
		assert.Equal(t, po.MediaTypeVideo, slot)
	})

	t.Run("图片槽位", func(t *testing.T) {
		media, err := gw.StoreImage(ctx, videoID, po.VideoResource{
			Resource: po.Resource{Content: []byte("hello"), Name: "banner.png"},
			Type:     po.MediaTypeBanner,
		})
		require.NoError(t, err)
		assert.Equal(t, helloSHA256, media.Checksum)
	})
}
