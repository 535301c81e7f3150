package review

import (
	"context"

	"go.uber.org/zap"
)

// Tracker 评价行为统计
type Tracker interface {
	TrackSubmission(ctx context.Context, productID string, rating int) error
	TrackView(ctx context.Context, productID string, count int) error
}

// TrackingService 为任意 Service 增加提交/浏览统计，不改变结果
type TrackingService struct {
	next    Service
	tracker Tracker
	log     *zap.SugaredLogger
}

// NewTrackingService 包装评价服务
func NewTrackingService(next Service, tracker Tracker, log *zap.SugaredLogger) *TrackingService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &TrackingService{next: next, tracker: tracker, log: log}
}

// SubmitReview 提交成功后记录统计
func (s *TrackingService) SubmitReview(ctx context.Context, form FormData) SubmissionResult {
	result := s.next.SubmitReview(ctx, form)
	if result.Success && s.tracker != nil {
		if err := s.tracker.TrackSubmission(ctx, form.ProductID, form.Rating); err != nil {
			s.log.Warnw("review_track_submission_failed", "product_id", form.ProductID, "error", err)
		}
	}
	return result
}

// GetProductReviews 查询后记录浏览统计
func (s *TrackingService) GetProductReviews(ctx context.Context, productID string) []Review {
	reviews := s.next.GetProductReviews(ctx, productID)
	if s.tracker != nil {
		if err := s.tracker.TrackView(ctx, productID, len(reviews)); err != nil {
			s.log.Warnw("review_track_view_failed", "product_id", productID, "error", err)
		}
	}
	return reviews
}

// LogTracker 将统计写入日志
type LogTracker struct {
	Log *zap.SugaredLogger
}

// TrackSubmission 记录提交
func (t LogTracker) TrackSubmission(_ context.Context, productID string, rating int) error {
	t.Log.Infow("review_submitted", "product_id", productID, "rating", rating)
	return nil
}

// TrackView 记录浏览
func (t LogTracker) TrackView(_ context.Context, productID string, count int) error {
	t.Log.Infow("reviews_viewed", "product_id", productID, "count", count)
	return nil
}
