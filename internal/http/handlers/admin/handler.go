package admin

import "github.com/dujiao-next/storefront/internal/provider"

// Handler 管理端接口，路由组已挂载角色授权中间件
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
