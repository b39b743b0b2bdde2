package po_test

import (
	"strings"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProps() po.VideoProps {
	return po.VideoProps{
		Title:       "System Design",
		Description: "A talk",
		LaunchYear:  2024,
		Duration:    120.5,
		Rating:      po.RatingL,
		Categories:  []string{"c1", " c1 ", "c2"},
	}
}

func TestNewVideo(t *testing.T) {
	video := po.NewVideo(validProps())

	assert.NotEqual(t, uuid.Nil, video.ID)
	assert.False(t, video.CreatedAt.IsZero())
	assert.Equal(t, video.CreatedAt, video.UpdatedAt)
	assert.Nil(t, video.Video)
	assert.Nil(t, video.Trailer)
	assert.Nil(t, video.Banner)
	assert.Nil(t, video.Thumbnail)
	assert.Nil(t, video.ThumbnailHalf)
	assert.False(t, video.Published)
	assert.Equal(t, []string{"c1", "c2"}, video.Categories)
	assert.NotNil(t, video.Genres)
	assert.Empty(t, video.Genres)
	assert.NotNil(t, video.CastMembers)
}

func TestVideo_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*po.VideoProps)
		errs   []string
	}{
		{name: "合法输入", mutate: func(*po.VideoProps) {}},
		{name: "标题缺失", mutate: func(p *po.VideoProps) { p.Title = "" }, errs: []string{"'title' should not be null"}},
		{name: "标题空白", mutate: func(p *po.VideoProps) { p.Title = "   " }, errs: []string{"'title' should not be empty"}},
		{name: "标题过长", mutate: func(p *po.VideoProps) { p.Title = strings.Repeat("a", 256) }, errs: []string{"'title' must be between 1 and 255 characters"}},
		{name: "描述过长", mutate: func(p *po.VideoProps) { p.Description = strings.Repeat("d", 4001) }, errs: []string{"'description' must be between 0 and 4000 characters"}},
		{name: "分级缺失", mutate: func(p *po.VideoProps) { p.Rating = "" }, errs: []string{"'rating' should not be null"}},
		{
			name: "多个错误累积",
			mutate: func(p *po.VideoProps) {
				p.LaunchYear = 0
				p.Duration = -1
			},
			errs: []string{"'launchedAt' should not be null", "'duration' must be greater than or equal to 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := validProps()
			tt.mutate(&props)
			n := po.NewNotification()
			po.NewVideo(props).Validate(n)
			if len(tt.errs) == 0 {
				assert.False(t, n.HasErrors())
				return
			}
			assert.Equal(t, tt.errs, n.Errors())
		})
	}
}

func TestVideo_UpdateKeepsIdentityAndMedia(t *testing.T) {
	video := po.NewVideo(validProps())
	id := video.ID
	createdAt := video.CreatedAt
	media := po.NewAudioVideoMedia("sum", "v.mp4", "raw")
	video.SetVideo(&media)

	time.Sleep(time.Millisecond)
	props := validProps()
	props.Title = "Renamed"
	props.Categories = nil
	video.Update(props)

	assert.Equal(t, id, video.ID)
	assert.Equal(t, createdAt, video.CreatedAt)
	assert.True(t, video.UpdatedAt.After(createdAt))
	assert.Equal(t, "Renamed", video.Title)
	assert.NotNil(t, video.Categories)
	assert.Empty(t, video.Categories)
	require.NotNil(t, video.Video)
	assert.Equal(t, "sum", video.Video.Checksum)
}

func TestVideo_SetSlotsReplaceAtomically(t *testing.T) {
	video := po.NewVideo(validProps())

	banner := po.NewImageMedia("b1", "banner.png", "loc")
	video.SetBanner(&banner)
	banner.Checksum = "mutated"
	require.NotNil(t, video.Banner)
	assert.Equal(t, "b1", video.Banner.Checksum, "槽位应持有副本")

	video.SetBanner(nil)
	assert.Nil(t, video.Banner)

	thumb := po.NewImageMedia("t1", "thumb.png", "loc")
	video.SetThumbnail(&thumb).SetThumbnailHalf(&thumb)
	assert.Equal(t, "t1", video.Image(po.MediaTypeThumbnail).Checksum)
	assert.Equal(t, "t1", video.Image(po.MediaTypeThumbnailHalf).Checksum)
	assert.Nil(t, video.Image(po.MediaTypeVideo))
}

func TestVideo_StatusTransitions(t *testing.T) {
	video := po.NewVideo(validProps())

	require.NoError(t, video.Completed(po.MediaTypeTrailer, "enc/t.mp4"), "空槽位应为 no-op")
	assert.Nil(t, video.Trailer)

	media := po.NewAudioVideoMedia("sum", "v.mp4", "raw")
	video.SetVideo(&media)

	require.NoError(t, video.Processing(po.MediaTypeVideo))
	assert.Equal(t, po.MediaStatusProcessing, video.Video.Status)

	require.NoError(t, video.Completed(po.MediaTypeVideo, "enc/f.mp4"))
	assert.Equal(t, po.MediaStatusCompleted, video.Video.Status)
	assert.Equal(t, "enc/f.mp4", video.Video.EncodedLocation)

	require.ErrorIs(t, video.Failed(po.MediaTypeVideo), po.ErrInvalidMediaTransition)
	require.Error(t, video.Completed(po.MediaTypeBanner, "x"))
}

func TestVideo_MatchAudioVideo(t *testing.T) {
	video := po.NewVideo(validProps())
	v := po.NewAudioVideoMedia("A", "v.mp4", "raw")
	tr := po.NewAudioVideoMedia("T", "t.mp4", "raw")
	video.SetVideo(&v).SetTrailer(&tr)

	got, ok := video.MatchAudioVideo("A")
	require.True(t, ok)
	assert.Equal(t, po.MediaTypeVideo, got)

	got, ok = video.MatchAudioVideo("T")
	require.True(t, ok)
	assert.Equal(t, po.MediaTypeTrailer, got)

	_, ok = video.MatchAudioVideo("B")
	assert.False(t, ok)
	_, ok = video.MatchAudioVideo("")
	assert.False(t, ok)
}

func TestNotification_Accumulates(t *testing.T) {
	n := po.NewNotification()
	n.Append("first").Append("").Append("second")

	assert.True(t, n.HasErrors())
	assert.Equal(t, []string{"first", "second"}, n.Errors())
	assert.Equal(t, "first; second", n.Error())
}
