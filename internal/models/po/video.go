// Package po 定义面向持久化的领域对象（Persistent Objects），由 Repository 与 Service 层共享。
//
// Video 是媒体目录的聚合根：描述字段、五个可选媒体槽位以及对分类/流派/演员的引用集合
// 作为同一个一致性边界被加载、修改并整体持久化。
package po

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	titleMaxLength       = 255
	descriptionMaxLength = 4000
)

// VideoProps 描述创建/更新聚合时由调用方提供的全部描述字段。
type VideoProps struct {
	Title       string
	Description string
	LaunchYear  int
	Duration    float64
	Opened      bool
	Published   bool
	Rating      Rating
	Categories  []string
	Genres      []string
	CastMembers []string
}

// Video 表示 media.videos 表对应的聚合根。
type Video struct {
	ID          uuid.UUID // 主键，创建后不再变化
	Title       string
	Description string
	LaunchYear  int
	Duration    float64 // 秒
	Opened      bool
	Published   bool
	Rating      Rating // 空值表示缺失
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Video         *AudioVideoMedia
	Trailer       *AudioVideoMedia
	Banner        *ImageMedia
	Thumbnail     *ImageMedia
	ThumbnailHalf *ImageMedia

	Categories  []string
	Genres      []string
	CastMembers []string
}

// NewVideo 构造新的聚合：生成 ID，媒体槽位全部为空。
func NewVideo(props VideoProps) *Video {
	now := time.Now().UTC()
	v := &Video{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	v.applyProps(props)
	return v
}

// Update 以 props 整体替换描述字段与引用集合，媒体槽位保持不变。
func (v *Video) Update(props VideoProps) *Video {
	v.applyProps(props)
	v.touch()
	return v
}

func (v *Video) applyProps(props VideoProps) {
	v.Title = props.Title
	v.Description = props.Description
	v.LaunchYear = props.LaunchYear
	v.Duration = props.Duration
	v.Opened = props.Opened
	v.Published = props.Published
	v.Rating = props.Rating
	v.Categories = NormalizeIDs(props.Categories)
	v.Genres = NormalizeIDs(props.Genres)
	v.CastMembers = NormalizeIDs(props.CastMembers)
}

// Validate 将字段级错误追加到 n。
func (v *Video) Validate(n *Notification) {
	title := strings.TrimSpace(v.Title)
	switch {
	case v.Title == "":
		n.Append("'title' should not be null")
	case title == "":
		n.Append("'title' should not be empty")
	case utf8.RuneCountInString(title) > titleMaxLength:
		n.Append(fmt.Sprintf("'title' must be between 1 and %d characters", titleMaxLength))
	}
	if utf8.RuneCountInString(strings.TrimSpace(v.Description)) > descriptionMaxLength {
		n.Append(fmt.Sprintf("'description' must be between 0 and %d characters", descriptionMaxLength))
	}
	if v.LaunchYear <= 0 {
		n.Append("'launchedAt' should not be null")
	}
	if v.Rating == "" {
		n.Append("'rating' should not be null")
	}
	if v.Duration < 0 {
		n.Append("'duration' must be greater than or equal to 0")
	}
}

// SetVideo 整体替换主视频槽位，nil 表示清空。
func (v *Video) SetVideo(media *AudioVideoMedia) *Video {
	v.Video = cloneAudioVideo(media)
	v.touch()
	return v
}

// SetTrailer 整体替换预告片槽位。
func (v *Video) SetTrailer(media *AudioVideoMedia) *Video {
	v.Trailer = cloneAudioVideo(media)
	v.touch()
	return v
}

// SetBanner 整体替换横幅槽位。
func (v *Video) SetBanner(media *ImageMedia) *Video {
	v.Banner = cloneImage(media)
	v.touch()
	return v
}

// SetThumbnail 整体替换缩略图槽位。
func (v *Video) SetThumbnail(media *ImageMedia) *Video {
	v.Thumbnail = cloneImage(media)
	v.touch()
	return v
}

// SetThumbnailHalf 整体替换半尺寸缩略图槽位。
func (v *Video) SetThumbnailHalf(media *ImageMedia) *Video {
	v.ThumbnailHalf = cloneImage(media)
	v.touch()
	return v
}

// AudioVideo 返回指定音视频槽位的当前值。
func (v *Video) AudioVideo(t MediaType) *AudioVideoMedia {
	switch t {
	case MediaTypeVideo:
		return v.Video
	case MediaTypeTrailer:
		return v.Trailer
	default:
		return nil
	}
}

// Image 返回指定图片槽位的当前值。
func (v *Video) Image(t MediaType) *ImageMedia {
	switch t {
	case MediaTypeBanner:
		return v.Banner
	case MediaTypeThumbnail:
		return v.Thumbnail
	case MediaTypeThumbnailHalf:
		return v.ThumbnailHalf
	default:
		return nil
	}
}

// MatchAudioVideo 查找当前 checksum 等于 resourceID 的音视频槽位。
func (v *Video) MatchAudioVideo(resourceID string) (MediaType, bool) {
	if resourceID == "" {
		return "", false
	}
	for _, t := range []MediaType{MediaTypeVideo, MediaTypeTrailer} {
		if media := v.AudioVideo(t); media != nil && media.Checksum == resourceID {
			return t, true
		}
	}
	return "", false
}

// Processing 将槽位推进至 PROCESSING；槽位为空时为 no-op。
func (v *Video) Processing(t MediaType) error {
	return v.advance(t, AudioVideoMedia.Processing)
}

// Completed 将槽位推进至 COMPLETED；槽位为空时为 no-op。
func (v *Video) Completed(t MediaType, encodedLocation string) error {
	return v.advance(t, func(m AudioVideoMedia) (AudioVideoMedia, error) {
		return m.Completed(encodedLocation)
	})
}

// Failed 将槽位推进至 ERROR；槽位为空时为 no-op。
func (v *Video) Failed(t MediaType) error {
	return v.advance(t, AudioVideoMedia.Failed)
}

func (v *Video) advance(t MediaType, step func(AudioVideoMedia) (AudioVideoMedia, error)) error {
	if !t.IsAudioVideo() {
		return fmt.Errorf("media type %s is not encodable", t)
	}
	current := v.AudioVideo(t)
	if current == nil {
		return nil
	}
	next, err := step(*current)
	if err != nil {
		return err
	}
	if t == MediaTypeVideo {
		v.SetVideo(&next)
	} else {
		v.SetTrailer(&next)
	}
	return nil
}

func (v *Video) touch() {
	now := time.Now().UTC()
	if now.Before(v.CreatedAt) {
		now = v.CreatedAt
	}
	if now.After(v.UpdatedAt) {
		v.UpdatedAt = now
	}
}

// NormalizeIDs 去除空白与重复，保留首次出现的顺序；结果永不为 nil。
func NormalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func cloneAudioVideo(m *AudioVideoMedia) *AudioVideoMedia {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

func cloneImage(m *ImageMedia) *ImageMedia {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}
