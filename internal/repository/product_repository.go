package repository

import (
	"strings"

	"github.com/dujiao-next/storefront/internal/contracts"
	"github.com/dujiao-next/storefront/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id string, onlyActive bool) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Count() (int64, error)
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	dialect := dbDialectName(r.db)
	query := r.db.Model(&models.Product{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeConditionByDialect(dialect,
			[]string{"title", "description", "short_description", "category", "sku"},
			[]string{"tags"})
		query = query.Where(condition, repeatLikeArgs("%"+escapeLike(search)+"%", argCount)...)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if filter.PriceMin != nil {
		query = query.Where("price >= ?", filter.PriceMin.StringFixed(2))
	}
	if filter.PriceMax != nil {
		query = query.Where("price <= ?", filter.PriceMax.StringFixed(2))
	}
	if filter.InStock != nil {
		if *filter.InStock {
			query = query.Where("stock_quantity > 0")
		} else {
			query = query.Where("stock_quantity <= 0")
		}
	}
	if filter.IsNew != nil {
		query = query.Where("is_new = ?", *filter.IsNew)
	}
	if filter.Discount != nil {
		query = query.Where("discount = ?", *filter.Discount)
	}
	for _, tag := range filter.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		condition, _ := buildLikeConditionByDialect(dialect, nil, []string{"tags"})
		query = query.Where(condition, `%"`+escapeLike(tag)+`"%`)
	}

	return findPage[models.Product](query, filter.Page, filter.PageSize, productOrder(filter.Sort))
}

func productOrder(sort string) string {
	switch sort {
	case contracts.SortPriceAsc:
		return "price ASC, id ASC"
	case contracts.SortPriceDesc:
		return "price DESC, id ASC"
	case contracts.SortNameAsc:
		return "title ASC, id ASC"
	case contracts.SortNameDesc:
		return "title DESC, id ASC"
	case contracts.SortPopular:
		return "(SELECT COUNT(*) FROM reviews WHERE reviews.product_id = products.id) DESC, id ASC"
	default:
		return "created_at DESC, id ASC"
	}
}

// GetByID 获取商品
func (r *GormProductRepository) GetByID(id string, onlyActive bool) (*models.Product, error) {
	query := r.db.Where("id = ?", id)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	return firstOrNil[models.Product](query)
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Count 商品总数
func (r *GormProductRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Product{}).Count(&total).Error
	return total, err
}
