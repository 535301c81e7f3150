package cart

import "github.com/dujiao-next/storefront/internal/models"

// Summary 购物车汇总
type Summary struct {
	ItemsCount int          `json:"itemsCount"`
	TotalPrice models.Money `json:"totalPrice"`
}

// Total 购物车总金额
func Total(items []LineItem) models.Money {
	var total models.Money
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Count 购物车商品总件数
func Count(items []LineItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// Summarize 汇总
func Summarize(items []LineItem) Summary {
	return Summary{ItemsCount: Count(items), TotalPrice: Total(items)}
}
