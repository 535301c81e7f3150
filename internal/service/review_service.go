package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/contracts"
	"github.com/dujiao-next/storefront/internal/repository"
	"github.com/dujiao-next/storefront/internal/review"

	"go.uber.org/zap"
)

// ReviewService 服务端评价业务：与客户端共用校验管线
type ReviewService struct {
	backend  review.Backend
	reviews  review.Service
	products *ProductService
	log      *zap.SugaredLogger
}

// NewReviewService 创建评价服务，tracker 为空时不做统计
func NewReviewService(cfg *config.Config, repo repository.ReviewRepository, products *ProductService, tracker review.Tracker, log *zap.SugaredLogger) *ReviewService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	var denylist []string
	if cfg != nil {
		denylist = cfg.Review.Denylist
	}
	backend := NewRepositoryReviewBackend(repo)
	validators := []review.Validator{
		review.FieldValidator{},
		review.NewBusinessRulesValidator(denylist, ReviewDuplicateChecker(repo)),
	}
	var svc review.Service = review.NewService(backend, validators, log)
	if tracker != nil {
		svc = review.NewTrackingService(svc, tracker, log)
	}
	return &ReviewService{backend: backend, reviews: svc, products: products, log: log}
}

// Submit 校验并保存评价，校验失败时返回字段错误
func (s *ReviewService) Submit(ctx context.Context, form review.FormData, userID uint) (*contracts.Review, review.FieldErrors, error) {
	form.ProductID = strings.TrimSpace(form.ProductID)
	if s.products != nil {
		exists, err := s.products.Exists(form.ProductID)
		if err != nil {
			return nil, nil, err
		}
		if !exists {
			return nil, nil, ErrProductNotFound
		}
	}

	var validation review.ValidationResult
	ctx = review.WithSubmitTrace(withReviewAuthor(ctx, userID), &review.SubmitTrace{
		Validated: func(r review.ValidationResult) { validation = r },
	})
	result := s.reviews.SubmitReview(ctx, form)
	if result.Success && result.Review != nil {
		return result.Review, nil, nil
	}
	if len(validation.Errors) > 0 {
		return nil, validation.Errors, ErrReviewInvalid
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrReviewRejected, result.Error)
}

// ListByProduct 商品评价列表
func (s *ReviewService) ListByProduct(ctx context.Context, productID string) []contracts.Review {
	return s.reviews.GetProductReviews(ctx, strings.TrimSpace(productID))
}

// Update 局部更新评价，更新后的内容需通过字段校验
func (s *ReviewService) Update(ctx context.Context, id string, patch review.Patch) (*contracts.Review, review.FieldErrors, error) {
	if result := (review.FieldValidator{}).ValidatePatch(patch); !result.IsValid {
		return nil, result.Errors, ErrReviewInvalid
	}

	updated, err := s.backend.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, review.ErrNotFound) {
			return nil, nil, ErrReviewNotFound
		}
		return nil, nil, err
	}
	s.log.Infow("review_updated", "review_id", id)
	return &updated, nil, nil
}

// Delete 删除评价
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	if err := s.backend.Delete(ctx, id); err != nil {
		if errors.Is(err, review.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	s.log.Infow("review_deleted", "review_id", id)
	return nil
}
