package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/provider"
	"github.com/dujiao-next/storefront/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskReviewSubmitted, c.handleReviewSubmitted)
	mux.HandleFunc(queue.TaskReviewViewed, c.handleReviewViewed)
}

func (c *Consumer) handleReviewSubmitted(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_review_submitted_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ReviewSubmittedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_review_submitted_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.ProductID) == "" {
		logger.Debugw("worker_review_submitted_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}
	if c.ReviewAnalytics == nil {
		logger.Warnw("worker_review_submitted_skip_analytics_nil", "product_id", payload.ProductID)
		return nil
	}
	if err := c.ReviewAnalytics.HandleSubmitted(ctx, payload); err != nil {
		logger.Warnw("worker_review_submitted_failed",
			"product_id", payload.ProductID,
			"user_id", payload.UserID,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleReviewViewed(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_review_viewed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ReviewViewedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_review_viewed_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.ProductID) == "" || payload.Count <= 0 {
		logger.Debugw("worker_review_viewed_skip_invalid_payload", "product_id", payload.ProductID, "count", payload.Count)
		return nil
	}
	if c.ReviewAnalytics == nil {
		logger.Warnw("worker_review_viewed_skip_analytics_nil", "product_id", payload.ProductID)
		return nil
	}
	if err := c.ReviewAnalytics.HandleViewed(ctx, payload); err != nil {
		logger.Warnw("worker_review_viewed_failed", "product_id", payload.ProductID, "error", err)
		return err
	}
	return nil
}
