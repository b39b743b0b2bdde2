package services_test

import (
	"context"
	"encoding/json"
	"testing"

	outboxevents "github.com/bionicotaku/lingo-services-media/internal/models/outbox_events"
	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/bionicotaku/lingo-services-media/internal/repositories"
	"github.com/bionicotaku/lingo-services-media/internal/services"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoService_CreateVideo_WithoutResources(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newServiceDeps(ctrl)
	deps.categories.EXPECT().ExistsByIDs(gomock.Any(), []string{"c1"}).Return([]string{"c1"}, nil)

	var persisted *po.Video
	deps.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ txmanager.Session, video *po.Video) error {
			persisted = video
			return nil
		})

	input := validInput()
	input.Categories = []string{"c1"}
	input.Published = false

	created, err := deps.service().CreateVideo(context.Background(), services.CreateVideoInput{VideoInput: input})
	require.NoError(t, err)
	require.NotNil(t, persisted)

	assert.Equal(t, persisted.ID, created.VideoID)
	assert.Empty(t, created.EncodeEventIDs)
	assert.Nil(t, persisted.Video)
	assert.Nil(t, persisted.Trailer)
	assert.Nil(t, persisted.Banner)
	assert.Nil(t, persisted.Thumbnail)
	assert.Nil(t, persisted.ThumbnailHalf)
	assert.False(t, persisted.Published)
	assert.Equal(t, po.RatingL, persisted.Rating)
}

func TestVideoService_CreateVideo_AccumulatesValidationErrors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newServiceDeps(ctrl)
	deps.categories.EXPECT().ExistsByIDs(gomock.Any(), []string{"123", "456", "789"}).Return([]string{"123"}, nil)
	deps.genres.EXPECT().ExistsByIDs(gomock.Any(), []string{"g1"}).Return([]string{}, nil)
	deps.castMembers.EXPECT().ExistsByIDs(gomock.Any(), []string{"m1", "m2"}).Return([]string{"m2"}, nil)

	input := validInput()
	input.Title = ""
	input.Rating = "XX"
	input.Categories = []string{"123", "456", "789"}
	input.Genres = []string{"g1"}
	input.CastMembers = []string{"m1", "m2"}
	input.Video = resource("video")

	_, err := deps.service().CreateVideo(context.Background(), services.CreateVideoInput{VideoInput: input})
	require.Error(t, err)
	assert.True(t, errors.IsBadRequest(err))

	var notification *po.Notification
	require.ErrorAs(t, err, &notification)
	assert.Equal(t, []string{
		"Some categories could not be found: 456, 789",
		"Some genres could not be found: g1",
		"Some cast members could not be found: m1",
		"'title' should not be null",
		"'rating' should not be null",
	}, notification.Errors())
}

func TestVideoService_CreateVideo_InvalidRatingOnly(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newServiceDeps(ctrl)
	input := validInput()
	input.Rating = "unknown"

	_, err := deps.service().CreateVideo(context.Background(), services.CreateVideoInput{VideoInput: input})
	require.Error(t, err)

	var notification *po.Notification
	require.ErrorAs(t, err, &notification)
	assert.Equal(t, []string{"'rating' should not be null"}, notification.Errors())
}

func TestVideoService_CreateVideo_ReferenceLookupFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newServiceDeps(ctrl)
	deps.genres.EXPECT().ExistsByIDs(gomock.Any(), gomock.Any()).Return(nil, errBoom)

	input := validInput()
	input.Genres = []string{"g1"}

	_, err := deps.service().CreateVideo(context.Background(), services.CreateVideoInput{VideoInput: input})
	require.Error(t, err)
	assert.Equal(t, services.ReasonReferenceLookup, errors.Reason(err))
}

func TestVideoService_CreateVideo_StoresMediaAndEnqueuesEncodeRequests(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newServiceDeps(ctrl)
	storage := newMemoryStorage()

	var persisted *po.Video
	deps.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ txmanager.Session, video *po.Video) error {
			persisted = video
			return nil
		})

	var payloads []outboxevents.MediaEncodeRequested
	deps.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
		func(_ context.Context, _ txmanager.Session, msg repositories.OutboxMessage) error {
			assert.Equal(t, "media.encode.requested", msg.EventType)
			assert.Equal(t, outboxevents.AggregateTypeVideo, msg.AggregateType)
			var payload outboxevents.MediaEncodeRequested
			require.NoError(t, json.Unmarshal(msg.Payload, &payload))
			assert.Equal(t, payload.ResourceID, msg.Headers["resource_id"])
			payloads = append(payloads, payload)
			return nil
		})

	input := validInput()
	input.Video = resource("video")
	input.Trailer = resource("trailer")
	input.Banner = resource("banner")

	created, err := deps.serviceWithMedia(newRealGateway(storage)).CreateVideo(context.Background(), services.CreateVideoInput{VideoInput: input})
	require.NoError(t, err)
	require.Len(t, created.EncodeEventIDs, 2)

	require.NotNil(t, persisted.Video)
	require.NotNil(t, persisted.Trailer)
	require.NotNil(t, persisted.Banner)
	assert.Equal(t, po.MediaStatusPending, persisted.Video.Status)
	assert.Equal(t, input.Video.Checksum, persisted.Video.Checksum)
	assert.Nil(t, persisted.Thumbnail)

	require.Len(t, payloads, 2)
	assert.Equal(t, "VIDEO", payloads[0].MediaType)
	assert.Equal(t, persisted.Video.RawLocation, payloads[0].FilePath)
	assert.Equal(t, "TRAILER", payloads[1].MediaType)
	assert.Equal(t, persisted.ID.String(), payloads[1].VideoID)
	assert.Empty(t, storage.deleted)
}

func TestVideoService_CreateVideo_CompensatesOnStoreFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newServiceDeps(ctrl)
	storage := newMemoryStorage()
	storage.failOn["/type-BANNER"] = errBoom

	input := validInput()
	input.Video = resource("video")
	input.Trailer = resource("trailer")
	input.Banner = resource("banner")
	input.Thumbnail = resource("thumbnail")
	input.ThumbnailHalf = resource("thumbnail-half")

	_, err := deps.serviceWithMedia(newRealGateway(storage)).CreateVideo(context.Background(), services.CreateVideoInput{VideoInput: input})
	require.Error(t, err)
	assert.True(t, errors.IsInternalServer(err))
	require.ErrorIs(t, err, errBoom)

	require.Len(t, storage.deleted, 1)
	deleted := storage.deleted[0]
	require.Len(t, deleted, 2)
	folder := deleted[0][:len("videoId-")+36]
	assert.ElementsMatch(t, []string{folder + "/type-VIDEO", folder + "/type-TRAILER"}, deleted)
	assert.Contains(t, errors.FromError(err).Message, folder[len("videoId-"):])
	assert.Empty(t, storage.objects)
}

func TestVideoService_CreateVideo_CompensatesOnPersistFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newServiceDeps(ctrl)
	deps.media.EXPECT().StoreImage(gomock.Any(), gomock.Any(), gomock.Any()).Return(po.NewImageMedia("c", "b.png", "p"), nil)
	deps.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(errBoom)

	var clearedID uuid.UUID
	deps.media.EXPECT().ClearResources(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id uuid.UUID) error {
		clearedID = id
		return errBoom
	})

	input := validInput()
	input.Banner = resource("banner")

	_, err := deps.service().CreateVideo(context.Background(), services.CreateVideoInput{VideoInput: input})
	require.Error(t, err)
	assert.Equal(t, services.ReasonVideoPersistFailed, errors.Reason(err))
	assert.NotEqual(t, uuid.Nil, clearedID)
	assert.Contains(t, errors.FromError(err).Message, clearedID.String())
}

func TestVideoService_UpdateVideo_NotFound(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newServiceDeps(ctrl)
	deps.repo.EXPECT().Get(gomock.Any(), nil, gomock.Any()).Return(nil, repositories.ErrVideoNotFound)

	missingID := uuid.New()
	_, err := deps.service().UpdateVideo(context.Background(), services.UpdateVideoInput{VideoID: missingID, VideoInput: validInput()})
	require.ErrorIs(t, err, services.ErrVideoNotFound)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, "video not found: video_id="+missingID.String(), errors.FromError(err).Message)
}

func TestVideoService_UpdateVideo_ReplacesFieldsAndSlots(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newServiceDeps(ctrl)
	existing := po.NewVideo(po.VideoProps{Title: "old", LaunchYear: 2000, Rating: po.RatingER})
	banner := po.NewImageMedia("keep", "b.png", "videoId-x/type-BANNER")
	existing.SetBanner(&banner)

	snapshot := func() *po.Video {
		c := *existing
		return &c
	}
	deps.repo.EXPECT().Get(gomock.Any(), nil, existing.ID).Return(snapshot(), nil)
	deps.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any(), existing.ID).Return(snapshot(), nil)
	deps.media.EXPECT().StoreAudioVideo(gomock.Any(), existing.ID, gomock.Any()).Return(po.NewAudioVideoMedia("new", "t.mp4", "videoId-x/type-TRAILER"), nil)
	deps.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	var saved *po.Video
	deps.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ txmanager.Session, video *po.Video) error {
			saved = video
			return nil
		})

	input := validInput()
	input.Title = "new title"
	input.Trailer = resource("trailer")

	updated, err := deps.service().UpdateVideo(context.Background(), services.UpdateVideoInput{VideoID: existing.ID, VideoInput: input})
	require.NoError(t, err)
	require.Len(t, updated.EncodeEventIDs, 1)

	require.NotNil(t, saved)
	assert.Equal(t, "new title", saved.Title)
	assert.Equal(t, po.RatingL, saved.Rating)
	require.NotNil(t, saved.Trailer)
	assert.Equal(t, "new", saved.Trailer.Checksum)
	require.NotNil(t, saved.Banner)
	assert.Equal(t, "keep", saved.Banner.Checksum)
}

func TestVideoService_UpdateVideo_StoreFailureDoesNotCompensate(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newServiceDeps(ctrl)
	existing := po.NewVideo(po.VideoProps{Title: "old", LaunchYear: 2000, Rating: po.RatingER})
	deps.repo.EXPECT().Get(gomock.Any(), nil, existing.ID).Return(existing, nil)
	deps.media.EXPECT().StoreImage(gomock.Any(), existing.ID, gomock.Any()).Return(po.ImageMedia{}, errBoom)

	input := validInput()
	input.Thumbnail = resource("thumb")

	_, err := deps.service().UpdateVideo(context.Background(), services.UpdateVideoInput{VideoID: existing.ID, VideoInput: input})
	require.Error(t, err)
	assert.True(t, errors.IsInternalServer(err))
	assert.Contains(t, errors.FromError(err).Message, existing.ID.String())
}

func TestVideoService_UpdateVideo_ValidationFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newServiceDeps(ctrl)
	existing := po.NewVideo(po.VideoProps{Title: "old", LaunchYear: 2000, Rating: po.RatingER})
	deps.repo.EXPECT().Get(gomock.Any(), nil, existing.ID).Return(existing, nil)

	input := validInput()
	input.Duration = -1
	input.LaunchYear = 0

	_, err := deps.service().UpdateVideo(context.Background(), services.UpdateVideoInput{VideoID: existing.ID, VideoInput: input})
	var notification *po.Notification
	require.ErrorAs(t, err, &notification)
	assert.Equal(t, []string{
		"'launchedAt' should not be null",
		"'duration' must be greater than or equal to 0",
	}, notification.Errors())
}

func TestVideoService_DeleteVideo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		deleteErr error
		clearErr  error
		wantErr   bool
	}{
		{name: "删除成功并清理资源"},
		{name: "视频不存在仍清理资源", deleteErr: repositories.ErrVideoNotFound},
		{name: "数据库错误不清理资源", deleteErr: errBoom, wantErr: true},
		{name: "清理失败返回错误", clearErr: errBoom, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			deps := newServiceDeps(ctrl)
			videoID := uuid.New()
			deps.repo.EXPECT().Delete(gomock.Any(), gomock.Any(), videoID).Return(tt.deleteErr)
			if tt.deleteErr == nil || tt.deleteErr == repositories.ErrVideoNotFound {
				deps.media.EXPECT().ClearResources(gomock.Any(), videoID).Return(tt.clearErr)
			}

			err := deps.service().DeleteVideo(context.Background(), videoID)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestVideoService_GetVideoAndMedia(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newServiceDeps(ctrl)
	video := po.NewVideo(po.VideoProps{Title: "T", LaunchYear: 2020, Rating: po.RatingAge16})
	deps.repo.EXPECT().Get(gomock.Any(), nil, video.ID).Return(video, nil)
	deps.repo.EXPECT().Get(gomock.Any(), nil, gomock.Not(video.ID)).Return(nil, repositories.ErrVideoNotFound)

	svc := deps.service()
	detail, err := svc.GetVideo(context.Background(), video.ID)
	require.NoError(t, err)
	assert.Equal(t, "16", detail.Rating)

	missingID := uuid.New()
	_, err = svc.GetVideo(context.Background(), missingID)
	require.ErrorIs(t, err, services.ErrVideoNotFound)
	assert.Contains(t, errors.FromError(err).Message, missingID.String())

	stored := po.NewResource("", []byte("png"), "image/png", "b.png")
	deps.media.EXPECT().GetResource(gomock.Any(), video.ID, po.MediaTypeBanner).Return(&stored, nil)
	deps.media.EXPECT().GetResource(gomock.Any(), video.ID, po.MediaTypeThumbnail).Return(nil, nil)

	media, err := svc.GetMedia(context.Background(), video.ID, po.MediaTypeBanner)
	require.NoError(t, err)
	assert.Equal(t, stored.Checksum, media.Checksum)
	assert.Equal(t, "BANNER", media.MediaType)

	_, err = svc.GetMedia(context.Background(), video.ID, po.MediaTypeThumbnail)
	require.ErrorIs(t, err, services.ErrMediaNotFound)
	assert.Contains(t, errors.FromError(err).Message, video.ID.String())

	_, err = svc.GetMedia(context.Background(), video.ID, po.MediaType("POSTER"))
	assert.True(t, errors.IsBadRequest(err))
}
