package queue

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
	// AnalyticsQueue 统计队列名称
	AnalyticsQueue = constants.QueueAnalytics

	reviewTaskMaxRetry = 3
)

// Client 队列客户端封装
type Client struct {
	client         *asynq.Client
	enabled        bool
	defaultQueue   string
	analyticsQueue string
}

// NewClient 创建队列客户端，未启用时返回空实现
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false, defaultQueue: DefaultQueue, analyticsQueue: AnalyticsQueue}, nil
	}
	opt := buildRedisOpt(cfg)
	client := asynq.NewClient(opt)
	return &Client{
		client:         client,
		enabled:        true,
		defaultQueue:   DefaultQueue,
		analyticsQueue: resolveAnalyticsQueue(cfg),
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueReviewSubmitted 推送评价提交任务
func (c *Client) EnqueueReviewSubmitted(payload ReviewSubmittedPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewReviewSubmittedTask(payload)
	if err != nil {
		return err
	}
	return c.enqueueAnalytics(task, opts)
}

// EnqueueReviewViewed 推送评价浏览任务，Count 非正数时忽略
func (c *Client) EnqueueReviewViewed(payload ReviewViewedPayload, opts ...asynq.Option) error {
	if !c.Enabled() || payload.Count <= 0 {
		return nil
	}
	task, err := NewReviewViewedTask(payload)
	if err != nil {
		return err
	}
	return c.enqueueAnalytics(task, opts)
}

func (c *Client) enqueueAnalytics(task *asynq.Task, opts []asynq.Option) error {
	base := []asynq.Option{asynq.Queue(c.analyticsQueue), asynq.MaxRetry(reviewTaskMaxRetry)}
	if _, err := c.client.Enqueue(task, append(base, opts...)...); err != nil {
		return fmt.Errorf("enqueue %s: %w", task.Type(), err)
	}
	return nil
}

// BuildServerConfig 生成队列服务配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	opt := buildRedisOpt(cfg)
	concurrency := 10
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	queues := map[string]int{DefaultQueue: 1}
	if cfg != nil && len(cfg.Queues) > 0 {
		queues = cfg.Queues
	}
	return opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func resolveAnalyticsQueue(cfg *config.QueueConfig) string {
	if cfg == nil || len(cfg.Queues) == 0 {
		return DefaultQueue
	}
	if _, ok := cfg.Queues[AnalyticsQueue]; ok {
		return AnalyticsQueue
	}
	return DefaultQueue
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host, port := strings.TrimSpace(cfg.Host), cfg.Port
	if host == "" {
		host = "127.0.0.1"
	}
	if port <= 0 {
		port = 6379
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
