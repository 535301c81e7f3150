package service

import (
	"strings"
	"time"

	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/contracts"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductService 商品业务服务
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// CreateProductInput 创建商品输入
type CreateProductInput struct {
	ID               string
	Title            string
	Description      string
	ShortDescription string
	Price            decimal.Decimal
	OldPrice         *decimal.Decimal
	Images           []string
	IsNew            bool
	Discount         bool
	StockQuantity    int
	Specifications   map[string]string
	Options          models.OptionGroups
	Category         string
	Tags             []string
	SKU              string
}

// ListPublic 获取公开商品列表
func (s *ProductService) ListPublic(params contracts.SearchParams) (contracts.Page[contracts.Product], error) {
	page, limit := normalizePage(params.Page, params.Limit)
	filter := buildProductFilter(params.Query, params.Filters)
	filter.Page = page
	filter.PageSize = limit
	filter.Sort = params.Sort

	products, total, err := s.repo.List(filter)
	if err != nil {
		return contracts.Page[contracts.Product]{}, err
	}
	return contracts.Page[contracts.Product]{
		Items:      toContractProducts(products),
		Pagination: contracts.NewPagination(page, limit, total),
	}, nil
}

// Search 全文搜索，结果数量有上限
func (s *ProductService) Search(query string, filters contracts.SearchFilters) ([]contracts.Product, error) {
	filter := buildProductFilter(query, filters)
	filter.Page = 1
	filter.PageSize = constants.SearchResultLimit
	products, _, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}
	return toContractProducts(products), nil
}

// GetPublic 获取公开商品详情
func (s *ProductService) GetPublic(id string) (contracts.Product, error) {
	product, err := s.repo.GetByID(strings.TrimSpace(id), true)
	if err != nil {
		return contracts.Product{}, err
	}
	if product == nil {
		return contracts.Product{}, ErrProductNotFound
	}
	return ToContractProduct(product), nil
}

// Exists 商品是否存在且上架
func (s *ProductService) Exists(id string) (bool, error) {
	product, err := s.repo.GetByID(strings.TrimSpace(id), true)
	return product != nil, err
}

// Create 创建商品
func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now()
	product := &models.Product{
		ID:               id,
		Title:            strings.TrimSpace(input.Title),
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		Price:            models.NewMoneyFromDecimal(input.Price),
		Images:           models.StringArray(input.Images),
		IsNew:            input.IsNew,
		Discount:         input.Discount,
		StockQuantity:    input.StockQuantity,
		Specifications:   models.StringMap(input.Specifications),
		Options:          input.Options,
		Category:         input.Category,
		Tags:             models.StringArray(input.Tags),
		SKU:              input.SKU,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if input.OldPrice != nil {
		old := models.NewMoneyFromDecimal(*input.OldPrice)
		product.OldPrice = &old
	}
	if len(input.Images) > 0 {
		product.MainImage = input.Images[0]
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Count 商品数量
func (s *ProductService) Count() (int64, error) {
	return s.repo.Count()
}

func buildProductFilter(query string, filters contracts.SearchFilters) repository.ProductListFilter {
	filter := repository.ProductListFilter{
		Search:     strings.TrimSpace(query),
		Category:   strings.TrimSpace(filters.Category),
		InStock:    filters.InStock,
		IsNew:      filters.IsNew,
		Discount:   filters.Discount,
		Tags:       filters.Tags,
		OnlyActive: true,
	}
	if filters.PriceMin != nil {
		v := filters.PriceMin.Decimal
		filter.PriceMin = &v
	}
	if filters.PriceMax != nil {
		v := filters.PriceMax.Decimal
		filter.PriceMax = &v
	}
	return filter
}

func toContractProducts(products []models.Product) []contracts.Product {
	out := make([]contracts.Product, 0, len(products))
	for i := range products {
		out = append(out, ToContractProduct(&products[i]))
	}
	return out
}

// normalizePage 规范化分页参数
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}
	return page, limit
}
