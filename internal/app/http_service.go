package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

const readHeaderTimeout = 10 * time.Second

// HTTPService 对外 API 服务，实现 Service
type HTTPService struct {
	server *http.Server
	// listener 非空时 Start 直接在其上提供服务
	listener net.Listener
}

// NewHTTPService 创建监听 addr 的 HTTP 服务
func NewHTTPService(addr string, handler http.Handler) *HTTPService {
	return &HTTPService{server: &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}}
}

// Name 服务名称
func (s *HTTPService) Name() string { return "http" }

// Start 阻塞提供服务，Stop 触发的关闭视为正常退出
func (s *HTTPService) Start(_ context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	var err error
	if s.listener != nil {
		err = s.server.Serve(s.listener)
	} else {
		err = s.server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http serve %s: %w", s.server.Addr, err)
	}
	return nil
}

// Stop 在 ctx 截止前等待请求处理完毕
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
