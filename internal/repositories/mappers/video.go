// Package mappers 提供仓储层的模型转换工具，将存储层结果映射为领域实体。
package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// VideoRecord 对应 media.videos 的一行；媒体槽位以 JSONB 存储，空槽位为 NULL。
type VideoRecord struct {
	VideoID            uuid.UUID
	Title              string
	Description        string
	LaunchYear         int32
	DurationSeconds    float64
	Opened             bool
	Published          bool
	Rating             pgtype.Text
	VideoMedia         []byte
	TrailerMedia       []byte
	BannerMedia        []byte
	ThumbnailMedia     []byte
	ThumbnailHalfMedia []byte
	CategoryIDs        []string
	GenreIDs           []string
	CastMemberIDs      []string
	CreatedAt          pgtype.Timestamptz
	UpdatedAt          pgtype.Timestamptz
}

// ScanTargets 返回与 VideoColumns 顺序一致的扫描目标。
func (r *VideoRecord) ScanTargets() []any {
	return []any{
		&r.VideoID,
		&r.Title,
		&r.Description,
		&r.LaunchYear,
		&r.DurationSeconds,
		&r.Opened,
		&r.Published,
		&r.Rating,
		&r.VideoMedia,
		&r.TrailerMedia,
		&r.BannerMedia,
		&r.ThumbnailMedia,
		&r.ThumbnailHalfMedia,
		&r.CategoryIDs,
		&r.GenreIDs,
		&r.CastMemberIDs,
		&r.CreatedAt,
		&r.UpdatedAt,
	}
}

// Args 返回与 VideoColumns 顺序一致的写入参数。
func (r *VideoRecord) Args() []any {
	return []any{
		r.VideoID,
		r.Title,
		r.Description,
		r.LaunchYear,
		r.DurationSeconds,
		r.Opened,
		r.Published,
		r.Rating,
		jsonbArg(r.VideoMedia),
		jsonbArg(r.TrailerMedia),
		jsonbArg(r.BannerMedia),
		jsonbArg(r.ThumbnailMedia),
		jsonbArg(r.ThumbnailHalfMedia),
		r.CategoryIDs,
		r.GenreIDs,
		r.CastMemberIDs,
		r.CreatedAt,
		r.UpdatedAt,
	}
}

// UpdateArgs 返回整体更新所需参数：与 Args 相同但不含 created_at。
func (r *VideoRecord) UpdateArgs() []any {
	args := r.Args()
	return append(args[:16:16], r.UpdatedAt)
}

// VideoColumns 是 media.videos 的列顺序，读写共用。
const VideoColumns = `video_id, title, description, launch_year, duration_seconds, opened, published, rating,
	video_media, trailer_media, banner_media, thumbnail_media, thumbnail_half_media,
	category_ids, genre_ids, cast_member_ids, created_at, updated_at`

// RecordFromVideo 将聚合转换为行记录。
func RecordFromVideo(v *po.Video) (VideoRecord, error) {
	if v == nil {
		return VideoRecord{}, fmt.Errorf("mappers: nil video")
	}
	videoMedia, err := marshalMedia(v.Video)
	if err != nil {
		return VideoRecord{}, fmt.Errorf("mappers: marshal video media: %w", err)
	}
	trailerMedia, err := marshalMedia(v.Trailer)
	if err != nil {
		return VideoRecord{}, fmt.Errorf("mappers: marshal trailer media: %w", err)
	}
	bannerMedia, err := marshalMedia(v.Banner)
	if err != nil {
		return VideoRecord{}, fmt.Errorf("mappers: marshal banner media: %w", err)
	}
	thumbnailMedia, err := marshalMedia(v.Thumbnail)
	if err != nil {
		return VideoRecord{}, fmt.Errorf("mappers: marshal thumbnail media: %w", err)
	}
	thumbnailHalfMedia, err := marshalMedia(v.ThumbnailHalf)
	if err != nil {
		return VideoRecord{}, fmt.Errorf("mappers: marshal thumbnail half media: %w", err)
	}

	return VideoRecord{
		VideoID:            v.ID,
		Title:              v.Title,
		Description:        v.Description,
		LaunchYear:         int32(v.LaunchYear),
		DurationSeconds:    v.Duration,
		Opened:             v.Opened,
		Published:          v.Published,
		Rating:             ToPgText(string(v.Rating)),
		VideoMedia:         videoMedia,
		TrailerMedia:       trailerMedia,
		BannerMedia:        bannerMedia,
		ThumbnailMedia:     thumbnailMedia,
		ThumbnailHalfMedia: thumbnailHalfMedia,
		CategoryIDs:        po.NormalizeIDs(v.Categories),
		GenreIDs:           po.NormalizeIDs(v.Genres),
		CastMemberIDs:      po.NormalizeIDs(v.CastMembers),
		CreatedAt:          ToPgTimestamptz(v.CreatedAt),
		UpdatedAt:          ToPgTimestamptz(v.UpdatedAt),
	}, nil
}

// VideoFromRecord 将行记录还原为聚合。
func VideoFromRecord(r VideoRecord) (*po.Video, error) {
	video := &po.Video{
		ID:          r.VideoID,
		Title:       r.Title,
		Description: r.Description,
		LaunchYear:  int(r.LaunchYear),
		Duration:    r.DurationSeconds,
		Opened:      r.Opened,
		Published:   r.Published,
		CreatedAt:   mustTimestamp(r.CreatedAt),
		UpdatedAt:   mustTimestamp(r.UpdatedAt),
		Categories:  po.NormalizeIDs(r.CategoryIDs),
		Genres:      po.NormalizeIDs(r.GenreIDs),
		CastMembers: po.NormalizeIDs(r.CastMemberIDs),
	}
	if r.Rating.Valid {
		if rating, ok := po.ParseRating(r.Rating.String); ok {
			video.Rating = rating
		}
	}

	var err error
	if video.Video, err = unmarshalMedia[po.AudioVideoMedia](r.VideoMedia); err != nil {
		return nil, fmt.Errorf("mappers: video media: %w", err)
	}
	if video.Trailer, err = unmarshalMedia[po.AudioVideoMedia](r.TrailerMedia); err != nil {
		return nil, fmt.Errorf("mappers: trailer media: %w", err)
	}
	if video.Banner, err = unmarshalMedia[po.ImageMedia](r.BannerMedia); err != nil {
		return nil, fmt.Errorf("mappers: banner media: %w", err)
	}
	if video.Thumbnail, err = unmarshalMedia[po.ImageMedia](r.ThumbnailMedia); err != nil {
		return nil, fmt.Errorf("mappers: thumbnail media: %w", err)
	}
	if video.ThumbnailHalf, err = unmarshalMedia[po.ImageMedia](r.ThumbnailHalfMedia); err != nil {
		return nil, fmt.Errorf("mappers: thumbnail half media: %w", err)
	}
	return video, nil
}

func marshalMedia[T any](media *T) ([]byte, error) {
	if media == nil {
		return nil, nil
	}
	return json.Marshal(media)
}

func unmarshalMedia[T any](raw []byte) (*T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var media T
	if err := json.Unmarshal(raw, &media); err != nil {
		return nil, err
	}
	return &media, nil
}

// jsonbArg 保证空槽位写入 SQL NULL，而非 JSON null。
func jsonbArg(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

// ToPgText 将字符串转换为 pgtype.Text，空字符串视为 NULL。
func ToPgText(val string) pgtype.Text {
	if val == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: val, Valid: true}
}

// ToPgTimestamptz 将时间转换为 pgtype.Timestamptz，零值视为 NULL。
func ToPgTimestamptz(val time.Time) pgtype.Timestamptz {
	if val.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: val.UTC(), Valid: true}
}

func mustTimestamp(ts pgtype.Timestamptz) time.Time {
	if !ts.Valid {
		return time.Time{}
	}
	return ts.Time.UTC()
}
