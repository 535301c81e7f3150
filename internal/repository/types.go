package repository

import "github.com/shopspring/decimal"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	Search     string
	Category   string
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	InStock    *bool
	IsNew      *bool
	Discount   *bool
	Tags       []string
	Sort       string
	OnlyActive bool
}

// ReviewListFilter 查询评价列表的过滤条件
type ReviewListFilter struct {
	Page      int
	PageSize  int
	ProductID string
}

// NotificationListFilter 查询通知列表的过滤条件
type NotificationListFilter struct {
	Page       int
	PageSize   int
	UserID     uint
	UnreadOnly bool
}
