package contracts

import (
	"time"

	"github.com/dujiao-next/storefront/internal/models"
)

// ProductOption 商品选项取值
type ProductOption struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Price       models.Money `json:"price"`
	Description string       `json:"description,omitempty"`
}

// Product 商品
type Product struct {
	ID               string                     `json:"id"`
	Title            string                     `json:"title"`
	Description      string                     `json:"description"`
	ShortDescription string                     `json:"shortDescription,omitempty"`
	Price            models.Money               `json:"price"`
	OldPrice         *models.Money              `json:"oldPrice,omitempty"`
	Images           []string                   `json:"images"`
	MainImage        string                     `json:"mainImage,omitempty"`
	IsNew            bool                       `json:"isNew,omitempty"`
	Discount         bool                       `json:"discount,omitempty"`
	InStock          bool                       `json:"inStock"`
	StockQuantity    int                        `json:"stockQuantity"`
	Specifications   map[string]string          `json:"specifications,omitempty"`
	Options          map[string][]ProductOption `json:"options,omitempty"`
	Category         string                     `json:"category"`
	Tags             []string                   `json:"tags,omitempty"`
	SKU              string                     `json:"sku,omitempty"`
	CreatedAt        time.Time                  `json:"createdAt"`
	UpdatedAt        time.Time                  `json:"updatedAt"`
}

// 商品排序方式
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
	SortNewest    = "newest"
	SortPopular   = "popular"
)

// SearchFilters 商品筛选条件
type SearchFilters struct {
	Category string        `json:"category,omitempty"`
	PriceMin *models.Money `json:"priceMin,omitempty"`
	PriceMax *models.Money `json:"priceMax,omitempty"`
	InStock  *bool         `json:"inStock,omitempty"`
	IsNew    *bool         `json:"isNew,omitempty"`
	Discount *bool         `json:"discount,omitempty"`
	Tags     []string      `json:"tags,omitempty"`
}

// SearchParams 商品查询参数
type SearchParams struct {
	Query   string        `json:"query,omitempty"`
	Filters SearchFilters `json:"filters,omitempty"`
	Sort    string        `json:"sort,omitempty"`
	Page    int           `json:"page,omitempty"`
	Limit   int           `json:"limit,omitempty"`
}
