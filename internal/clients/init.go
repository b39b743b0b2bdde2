// Package clients 封装与外部服务的交互客户端。
// 当前包含对象存储（Cloud Storage）及其上的媒体资源网关。
package clients

import "github.com/google/wire"

// ProviderSet 暴露 Clients 层的构造函数供 Wire 依赖注入使用。
var ProviderSet = wire.NewSet(
	NewGCSStorage,
	wire.Bind(new(MediaStorage), new(*GCSStorage)),
	NewMediaResourceGateway,
)
