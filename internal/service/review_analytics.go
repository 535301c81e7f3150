package service

import (
	"context"
	"strings"

	"github.com/dujiao-next/storefront/internal/cache"
	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/queue"

	"go.uber.org/zap"
)

// ReviewAnalytics 评价统计：队列可用时异步处理，否则同步写入缓存计数
type ReviewAnalytics struct {
	queue         *queue.Client
	notifications *NotificationService
	enabled       bool
	log           *zap.SugaredLogger
}

// NewReviewAnalytics 创建评价统计
func NewReviewAnalytics(enabled bool, queueClient *queue.Client, notifications *NotificationService, log *zap.SugaredLogger) *ReviewAnalytics {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ReviewAnalytics{queue: queueClient, notifications: notifications, enabled: enabled, log: log}
}

// TrackSubmission 记录一次成功提交
func (a *ReviewAnalytics) TrackSubmission(ctx context.Context, productID string, rating int) error {
	if a == nil || !a.enabled {
		return nil
	}
	payload := queue.ReviewSubmittedPayload{ProductID: productID, Rating: rating}
	if author := reviewAuthorFrom(ctx); author != nil {
		payload.UserID = *author
	}
	if a.queue.Enabled() {
		return a.queue.EnqueueReviewSubmitted(payload)
	}
	return a.HandleSubmitted(ctx, payload)
}

// TrackView 记录评价列表被浏览
func (a *ReviewAnalytics) TrackView(ctx context.Context, productID string, count int) error {
	if a == nil || !a.enabled {
		return nil
	}
	payload := queue.ReviewViewedPayload{ProductID: productID, Count: count}
	if a.queue.Enabled() {
		return a.queue.EnqueueReviewViewed(payload)
	}
	return a.HandleViewed(ctx, payload)
}

// HandleSubmitted 累加提交计数并通知评价作者
func (a *ReviewAnalytics) HandleSubmitted(ctx context.Context, payload queue.ReviewSubmittedPayload) error {
	productID := strings.TrimSpace(payload.ProductID)
	if productID == "" {
		return nil
	}
	if err := cache.RecordReviewSubmission(ctx, productID, payload.Rating); err != nil {
		return err
	}
	if payload.UserID == 0 || a.notifications == nil {
		return nil
	}
	_, err := a.notifications.Create(ctx, NotificationInput{
		UserID:  payload.UserID,
		Type:    models.NotificationTypeSuccess,
		Title:   "Review published",
		Message: "Thanks! Your {{rating}}-star review is now live.",
		Link:    constants.NotificationLinkProduct + productID,
		Variables: map[string]any{
			"rating": payload.Rating,
		},
	})
	if err != nil {
		a.log.Warnw("review_notification_create_failed", "product_id", productID, "user_id", payload.UserID, "error", err)
	}
	return nil
}

// HandleViewed 累加浏览计数
func (a *ReviewAnalytics) HandleViewed(ctx context.Context, payload queue.ReviewViewedPayload) error {
	return cache.RecordReviewViews(ctx, strings.TrimSpace(payload.ProductID), payload.Count)
}

// Stats 读取商品评价统计，未启用缓存时 ok 为 false
func (a *ReviewAnalytics) Stats(ctx context.Context, productID string) (cache.ReviewStats, bool, error) {
	return cache.GetReviewStats(ctx, strings.TrimSpace(productID))
}
