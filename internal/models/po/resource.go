package po

import (
	"crypto/sha256"
	"encoding/hex"
)

// Resource 表示一段待存储或已读取的原始字节。
type Resource struct {
	Checksum    string
	Content     []byte
	ContentType string
	Name        string
}

// NewResource 构造 Resource；未提供 checksum 时以内容的 SHA-256 计算。
func NewResource(checksum string, content []byte, contentType, name string) Resource {
	if checksum == "" {
		checksum = ComputeChecksum(content)
	}
	return Resource{
		Checksum:    checksum,
		Content:     content,
		ContentType: contentType,
		Name:        name,
	}
}

// ComputeChecksum 返回内容的十六进制 SHA-256。
func ComputeChecksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// VideoResource 将 Resource 与目标槽位绑定，仅在上传流程中存在。
type VideoResource struct {
	Resource Resource
	Type     MediaType
}

// NewVideoResource 构造 VideoResource。
func NewVideoResource(resource Resource, mediaType MediaType) VideoResource {
	return VideoResource{Resource: resource, Type: mediaType}
}
