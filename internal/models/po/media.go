package po

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMediaTransition 表示媒体状态机拒绝了本次状态推进。
var ErrInvalidMediaTransition = errors.New("invalid media status transition")

// MediaStatus 表示音视频媒体的编码状态。
type MediaStatus string

// 媒体状态常量定义
const (
	MediaStatusPending    MediaStatus = "PENDING"    // 已存储，等待编码
	MediaStatusProcessing MediaStatus = "PROCESSING" // 编码中
	MediaStatusCompleted  MediaStatus = "COMPLETED"  // 编码完成（终态）
	MediaStatusError      MediaStatus = "ERROR"      // 编码失败（终态）
)

// ParseMediaStatus 将字符串解析为 MediaStatus，大小写不敏感。
func ParseMediaStatus(raw string) (MediaStatus, bool) {
	switch MediaStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case MediaStatusPending:
		return MediaStatusPending, true
	case MediaStatusProcessing:
		return MediaStatusProcessing, true
	case MediaStatusCompleted:
		return MediaStatusCompleted, true
	case MediaStatusError:
		return MediaStatusError, true
	default:
		return "", false
	}
}

// IsTerminal 判断是否为终态。
func (s MediaStatus) IsTerminal() bool {
	return s == MediaStatusCompleted || s == MediaStatusError
}

// CanTransitionTo 描述状态机允许的迁移。
// 终态不可迁出；COMPLETED -> COMPLETED 视为重复投递的幂等覆盖。
func (s MediaStatus) CanTransitionTo(next MediaStatus) bool {
	switch s {
	case MediaStatusPending:
		return next == MediaStatusProcessing || next == MediaStatusCompleted || next == MediaStatusError
	case MediaStatusProcessing:
		return next == MediaStatusProcessing || next == MediaStatusCompleted || next == MediaStatusError
	case MediaStatusCompleted:
		return next == MediaStatusCompleted
	default:
		return false
	}
}

// MediaType 标识视频聚合上的媒体槽位。
type MediaType string

// 媒体槽位常量定义
const (
	MediaTypeVideo         MediaType = "VIDEO"
	MediaTypeTrailer       MediaType = "TRAILER"
	MediaTypeBanner        MediaType = "BANNER"
	MediaTypeThumbnail     MediaType = "THUMBNAIL"
	MediaTypeThumbnailHalf MediaType = "THUMBNAIL_HALF"
)

// MediaTypes 按槽位顺序列出全部媒体类型。
var MediaTypes = []MediaType{
	MediaTypeVideo,
	MediaTypeTrailer,
	MediaTypeBanner,
	MediaTypeThumbnail,
	MediaTypeThumbnailHalf,
}

// ParseMediaType 将字符串解析为 MediaType。
func ParseMediaType(raw string) (MediaType, bool) {
	candidate := MediaType(strings.ToUpper(strings.TrimSpace(raw)))
	for _, t := range MediaTypes {
		if t == candidate {
			return t, true
		}
	}
	return "", false
}

// IsAudioVideo 仅 VIDEO 与 TRAILER 需要异步编码。
func (t MediaType) IsAudioVideo() bool {
	return t == MediaTypeVideo || t == MediaTypeTrailer
}

// ImageMedia 描述已存储的图片资源，存储即完成。
type ImageMedia struct {
	Checksum string `json:"checksum"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// NewImageMedia 构造 ImageMedia。
func NewImageMedia(checksum, name, location string) ImageMedia {
	return ImageMedia{Checksum: checksum, Name: name, Location: location}
}

// Equal 以 checksum 判等。
func (m ImageMedia) Equal(other ImageMedia) bool {
	return m.Checksum == other.Checksum
}

// AudioVideoMedia 描述需要编码的音视频资源。
// 值对象不可变：状态推进总是返回新值，由聚合替换槽位。
type AudioVideoMedia struct {
	Checksum        string      `json:"checksum"`
	Name            string      `json:"name"`
	RawLocation     string      `json:"raw_location"`
	EncodedLocation string      `json:"encoded_location"`
	Status          MediaStatus `json:"status"`
}

// NewAudioVideoMedia 构造处于 PENDING 的音视频媒体。
func NewAudioVideoMedia(checksum, name, rawLocation string) AudioVideoMedia {
	return AudioVideoMedia{
		Checksum:    checksum,
		Name:        name,
		RawLocation: rawLocation,
		Status:      MediaStatusPending,
	}
}

// Processing 推进至 PROCESSING，EncodedLocation 保持不变。
func (m AudioVideoMedia) Processing() (AudioVideoMedia, error) {
	if m.Status == MediaStatusProcessing {
		return m, nil
	}
	if m.Status != MediaStatusPending {
		return m, fmt.Errorf("%w: %s -> %s", ErrInvalidMediaTransition, m.Status, MediaStatusProcessing)
	}
	next := m
	next.Status = MediaStatusProcessing
	return next, nil
}

// Completed 推进至 COMPLETED 并记录编码产物路径，空路径同样接受。
func (m AudioVideoMedia) Completed(encodedLocation string) (AudioVideoMedia, error) {
	if !m.Status.CanTransitionTo(MediaStatusCompleted) {
		return m, fmt.Errorf("%w: %s -> %s", ErrInvalidMediaTransition, m.Status, MediaStatusCompleted)
	}
	next := m
	next.Status = MediaStatusCompleted
	next.EncodedLocation = strings.TrimSpace(encodedLocation)
	return next, nil
}

// Failed 推进至 ERROR。
func (m AudioVideoMedia) Failed() (AudioVideoMedia, error) {
	if m.Status == MediaStatusError || !m.Status.CanTransitionTo(MediaStatusError) {
		return m, fmt.Errorf("%w: %s -> %s", ErrInvalidMediaTransition, m.Status, MediaStatusError)
	}
	next := m
	next.Status = MediaStatusError
	return next, nil
}
