package review

import (
	"context"

	"github.com/dujiao-next/storefront/internal/logger"

	"go.uber.org/zap"
)

// BaseService 评价服务：校验后写入后端
type BaseService struct {
	backend    Backend
	validators []Validator
	log        *zap.SugaredLogger
}

// NewService 创建评价服务
func NewService(backend Backend, validators []Validator, log *zap.SugaredLogger) *BaseService {
	if log == nil {
		log = logger.Named("review")
	}
	return &BaseService{backend: backend, validators: validators, log: log}
}

// Validate 只执行校验管线
func (s *BaseService) Validate(ctx context.Context, form FormData) (ValidationResult, error) {
	return RunValidators(ctx, s.validators, form)
}

// SubmitReview 校验并保存评价，失败时返回第一个错误
func (s *BaseService) SubmitReview(ctx context.Context, form FormData) SubmissionResult {
	trace := ContextSubmitTrace(ctx)
	trace.phase(PhaseValidating)

	result, err := RunValidators(ctx, s.validators, form)
	if err != nil {
		trace.phase(PhaseIdle)
		s.log.Warnw("review_validation_failed", "product_id", form.ProductID, "error", err)
		return SubmissionResult{Success: false, Error: err.Error()}
	}
	trace.validated(result)
	if !result.IsValid {
		trace.phase(PhaseIdle)
		return SubmissionResult{Success: false, Error: result.Errors.First()}
	}

	trace.phase(PhaseSubmitting)
	saved, err := s.backend.Create(ctx, form.ToReview())
	if err != nil {
		trace.phase(PhaseIdle)
		s.log.Warnw("review_create_failed", "product_id", form.ProductID, "error", err)
		return SubmissionResult{Success: false, Error: err.Error()}
	}
	trace.phase(PhaseSuccess)
	return SubmissionResult{Success: true, Review: &saved}
}

// GetProductReviews 获取商品评价，后端失败时记录日志并返回空列表
func (s *BaseService) GetProductReviews(ctx context.Context, productID string) []Review {
	reviews, err := s.backend.GetByProductID(ctx, productID)
	if err != nil {
		s.log.Warnw("review_fetch_failed", "product_id", productID, "error", err)
		return []Review{}
	}
	if reviews == nil {
		return []Review{}
	}
	return reviews
}
