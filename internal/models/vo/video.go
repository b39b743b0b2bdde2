// Package vo 定义视图对象（View Objects），用于向上层传递业务数据。
// VO 对象由 Service 层返回，隔离内部聚合的可变结构。
package vo

import (
	"time"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/google/uuid"
)

// VideoCreated 封装视频创建结果。
type VideoCreated struct {
	VideoID        uuid.UUID   `json:"video_id"`
	CreatedAt      time.Time   `json:"created_at"`
	EncodeEventIDs []uuid.UUID `json:"encode_event_ids,omitempty"`
}

// NewVideoCreated 从聚合构造创建结果。
func NewVideoCreated(video *po.Video, eventIDs []uuid.UUID) *VideoCreated {
	if video == nil {
		return nil
	}
	return &VideoCreated{
		VideoID:        video.ID,
		CreatedAt:      video.CreatedAt,
		EncodeEventIDs: eventIDs,
	}
}

// VideoUpdated 封装视频更新结果。
type VideoUpdated struct {
	VideoID        uuid.UUID   `json:"video_id"`
	UpdatedAt      time.Time   `json:"updated_at"`
	EncodeEventIDs []uuid.UUID `json:"encode_event_ids,omitempty"`
}

// NewVideoUpdated 从聚合构造更新结果。
func NewVideoUpdated(video *po.Video, eventIDs []uuid.UUID) *VideoUpdated {
	if video == nil {
		return nil
	}
	return &VideoUpdated{
		VideoID:        video.ID,
		UpdatedAt:      video.UpdatedAt,
		EncodeEventIDs: eventIDs,
	}
}

// AudioVideoView 是音视频槽位的只读视图。
type AudioVideoView struct {
	Checksum        string `json:"checksum"`
	Name            string `json:"name"`
	RawLocation     string `json:"raw_location"`
	EncodedLocation string `json:"encoded_location"`
	Status          string `json:"status"`
}

// ImageView 是图片槽位的只读视图。
type ImageView struct {
	Checksum string `json:"checksum"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// VideoDetail 封装视频聚合的完整只读视图。
type VideoDetail struct {
	VideoID       uuid.UUID       `json:"video_id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	LaunchYear    int             `json:"launch_year"`
	Duration      float64         `json:"duration"`
	Opened        bool            `json:"opened"`
	Published     bool            `json:"published"`
	Rating        string          `json:"rating,omitempty"`
	Categories    []string        `json:"categories"`
	Genres        []string        `json:"genres"`
	CastMembers   []string        `json:"cast_members"`
	Video         *AudioVideoView `json:"video,omitempty"`
	Trailer       *AudioVideoView `json:"trailer,omitempty"`
	Banner        *ImageView      `json:"banner,omitempty"`
	Thumbnail     *ImageView      `json:"thumbnail,omitempty"`
	ThumbnailHalf *ImageView      `json:"thumbnail_half,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewVideoDetail 从聚合构造只读视图，切片均为副本。
func NewVideoDetail(video *po.Video) *VideoDetail {
	if video == nil {
		return nil
	}
	return &VideoDetail{
		VideoID:       video.ID,
		Title:         video.Title,
		Description:   video.Description,
		LaunchYear:    video.LaunchYear,
		Duration:      video.Duration,
		Opened:        video.Opened,
		Published:     video.Published,
		Rating:        string(video.Rating),
		Categories:    append([]string{}, video.Categories...),
		Genres:        append([]string{}, video.Genres...),
		CastMembers:   append([]string{}, video.CastMembers...),
		Video:         audioVideoView(video.Video),
		Trailer:       audioVideoView(video.Trailer),
		Banner:        imageView(video.Banner),
		Thumbnail:     imageView(video.Thumbnail),
		ThumbnailHalf: imageView(video.ThumbnailHalf),
		CreatedAt:     video.CreatedAt,
		UpdatedAt:     video.UpdatedAt,
	}
}

func audioVideoView(m *po.AudioVideoMedia) *AudioVideoView {
	if m == nil {
		return nil
	}
	return &AudioVideoView{
		Checksum:        m.Checksum,
		Name:            m.Name,
		RawLocation:     m.RawLocation,
		EncodedLocation: m.EncodedLocation,
		Status:          string(m.Status),
	}
}

func imageView(m *po.ImageMedia) *ImageView {
	if m == nil {
		return nil
	}
	return &ImageView{Checksum: m.Checksum, Name: m.Name, Location: m.Location}
}

// MediaResource 是 GetMedia 返回的资源内容。
type MediaResource struct {
	VideoID     uuid.UUID `json:"video_id"`
	MediaType   string    `json:"media_type"`
	Checksum    string    `json:"checksum"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Content     []byte    `json:"-"`
}

// NewMediaResource 构造资源视图。
func NewMediaResource(videoID uuid.UUID, mediaType po.MediaType, resource *po.Resource) *MediaResource {
	if resource == nil {
		return nil
	}
	return &MediaResource{
		VideoID:     videoID,
		MediaType:   string(mediaType),
		Checksum:    resource.Checksum,
		Name:        resource.Name,
		ContentType: resource.ContentType,
		Content:     resource.Content,
	}
}
