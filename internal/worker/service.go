package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/queue"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

var (
	// ErrQueueDisabled 队列未启用
	ErrQueueDisabled = errors.New("queue disabled")
	// ErrNilConsumer 消费者为空
	ErrNilConsumer = errors.New("consumer is nil")
)

// Service 评价统计队列的后台服务，实现 app.Service
type Service struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewService 按队列配置创建服务，并把任务处理注册到消费者
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, ErrQueueDisabled
	}
	if consumer == nil {
		return nil, ErrNilConsumer
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	log := logger.S().Named("worker")
	serverCfg.Logger = zapAsynqLogger{log}
	serverCfg.ErrorHandler = asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
		retried, _ := asynq.GetRetryCount(ctx)
		log.Warnw("worker_task_failed", "type", task.Type(), "retried", retried, "error", err)
	})

	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{server: asynq.NewServer(opt, serverCfg), mux: mux}, nil
}

// Name 服务名称
func (s *Service) Name() string { return "worker" }

// Start 阻塞运行直到 Stop
func (s *Service) Start(_ context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("worker not initialized")
	}
	if err := s.server.Run(s.mux); err != nil && !errors.Is(err, asynq.ErrServerClosed) {
		return fmt.Errorf("worker run: %w", err)
	}
	return nil
}

// Stop 等待进行中的任务结束后退出
func (s *Service) Stop(_ context.Context) error {
	if s != nil && s.server != nil {
		s.server.Shutdown()
	}
	return nil
}

// zapAsynqLogger 把 asynq 内部日志转到 zap
type zapAsynqLogger struct {
	log *zap.SugaredLogger
}

func (l zapAsynqLogger) Debug(args ...any) { l.log.Debug(args...) }
func (l zapAsynqLogger) Info(args ...any)  { l.log.Info(args...) }
func (l zapAsynqLogger) Warn(args ...any)  { l.log.Warn(args...) }
func (l zapAsynqLogger) Error(args ...any) { l.log.Error(args...) }
func (l zapAsynqLogger) Fatal(args ...any) { l.log.Fatal(args...) }
