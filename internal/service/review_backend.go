package service

import (
	"context"
	"time"

	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"
	"github.com/dujiao-next/storefront/internal/review"

	"github.com/google/uuid"
)

type reviewAuthorKey struct{}

// withReviewAuthor 在 context 中记录提交评价的登录用户
func withReviewAuthor(ctx context.Context, userID uint) context.Context {
	if userID == 0 {
		return ctx
	}
	return context.WithValue(ctx, reviewAuthorKey{}, userID)
}

func reviewAuthorFrom(ctx context.Context) *uint {
	if id, ok := ctx.Value(reviewAuthorKey{}).(uint); ok && id > 0 {
		return &id
	}
	return nil
}

// RepositoryReviewBackend 基于数据库的评价后端
type RepositoryReviewBackend struct {
	repo repository.ReviewRepository
}

// NewRepositoryReviewBackend 创建数据库评价后端
func NewRepositoryReviewBackend(repo repository.ReviewRepository) *RepositoryReviewBackend {
	return &RepositoryReviewBackend{repo: repo}
}

// Create 保存评价，分配 ID 与创建时间
func (b *RepositoryReviewBackend) Create(ctx context.Context, r review.Review) (review.Review, error) {
	kind := r.Type
	if kind == "" {
		kind = models.ReviewTypeText
	}
	record := &models.Review{
		ID:          uuid.NewString(),
		ProductID:   r.ProductID,
		UserID:      reviewAuthorFrom(ctx),
		Type:        kind,
		Rating:      r.Rating,
		Comment:     r.Comment,
		VideoURL:    r.VideoURL,
		AuthorName:  r.AuthorName,
		AuthorEmail: r.AuthorEmail,
		CreatedAt:   time.Now(),
	}
	if err := b.repo.Create(record); err != nil {
		return review.Review{}, err
	}
	return ToContractReview(record), nil
}

// GetByProductID 商品评价列表
func (b *RepositoryReviewBackend) GetByProductID(_ context.Context, productID string) ([]review.Review, error) {
	records, _, err := b.repo.List(repository.ReviewListFilter{ProductID: productID})
	if err != nil {
		return nil, err
	}
	out := make([]review.Review, 0, len(records))
	for i := range records {
		out = append(out, ToContractReview(&records[i]))
	}
	return out, nil
}

// Update 局部更新评价
func (b *RepositoryReviewBackend) Update(_ context.Context, id string, patch review.Patch) (review.Review, error) {
	record, err := b.repo.GetByID(id)
	if err != nil {
		return review.Review{}, err
	}
	if record == nil {
		return review.Review{}, review.ErrNotFound
	}
	if patch.Rating != nil {
		record.Rating = *patch.Rating
	}
	if patch.Comment != nil {
		record.Comment = *patch.Comment
	}
	if patch.AuthorName != nil {
		record.AuthorName = *patch.AuthorName
	}
	if patch.VideoURL != nil {
		record.VideoURL = *patch.VideoURL
	}
	record.UpdatedAt = time.Now()
	if err := b.repo.Update(record); err != nil {
		return review.Review{}, err
	}
	return ToContractReview(record), nil
}

// Delete 删除评价
func (b *RepositoryReviewBackend) Delete(_ context.Context, id string) error {
	deleted, err := b.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return review.ErrNotFound
	}
	return nil
}

// ReviewDuplicateChecker 同一邮箱对同一商品只能评价一次
func ReviewDuplicateChecker(repo repository.ReviewRepository) review.DuplicateChecker {
	return review.DuplicateCheckerFunc(func(_ context.Context, form review.FormData) (bool, error) {
		return repo.ExistsByProductAndEmail(form.ProductID, form.AuthorEmail)
	})
}
