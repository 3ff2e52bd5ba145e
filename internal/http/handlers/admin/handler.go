package admin

import "github.com/linkmart/internal/provider"

// Handler 后台 API 处理器，直接内嵌容器取用各服务
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
