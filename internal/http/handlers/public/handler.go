package public

import "github.com/linkmart/internal/provider"

// Handler 面向游客与顾客的前台 API 处理器
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
