package repository

import (
	"strings"

	"github.com/dujiao-next/storefront/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository 评价数据访问接口
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(id string) (*models.Review, error)
	List(filter ReviewListFilter) ([]models.Review, int64, error)
	Update(review *models.Review) error
	Delete(id string) (bool, error)
	ExistsByProductAndEmail(productID, email string) (bool, error)
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create 创建评价
func (r *GormReviewRepository) Create(review *models.Review) error {
	review.AuthorEmail = strings.ToLower(strings.TrimSpace(review.AuthorEmail))
	return r.db.Create(review).Error
}

// GetByID 获取评价
func (r *GormReviewRepository) GetByID(id string) (*models.Review, error) {
	return firstOrNil[models.Review](r.db.Where("id = ?", id))
}

// List 评价列表，按创建时间升序
func (r *GormReviewRepository) List(filter ReviewListFilter) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{})
	if filter.ProductID != "" {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	return findPage[models.Review](query, filter.Page, filter.PageSize, "created_at ASC, id ASC")
}

// Update 更新评价
func (r *GormReviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

// Delete 删除评价，返回是否存在
func (r *GormReviewRepository) Delete(id string) (bool, error) {
	result := r.db.Where("id = ?", id).Delete(&models.Review{})
	return result.RowsAffected > 0, result.Error
}

// ExistsByProductAndEmail 同一邮箱是否已评价过该商品
func (r *GormReviewRepository) ExistsByProductAndEmail(productID, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("product_id = ? AND author_email = ?", productID, strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}
