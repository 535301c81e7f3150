// Package cart 购物车状态：行项目、身份键、增删改动作与派生汇总
package cart

import (
	"errors"
	"fmt"
	"maps"

	"github.com/dujiao-next/storefront/internal/contracts"
	"github.com/dujiao-next/storefront/internal/models"
)

// ErrUnknownOption 选择了商品不存在的选项
var ErrUnknownOption = errors.New("unknown product option")

// LineItem 购物车行项目，商品信息在加入时复制
type LineItem struct {
	ProductID       string            `json:"productId"`
	Title           string            `json:"title"`
	Description     string            `json:"description,omitempty"`
	Price           models.Money      `json:"price"`
	OldPrice        *models.Money     `json:"oldPrice,omitempty"`
	Images          []string          `json:"images,omitempty"`
	MainImage       string            `json:"mainImage,omitempty"`
	InStock         bool              `json:"inStock,omitempty"`
	Quantity        int               `json:"quantity"`
	SelectedOptions map[string]string `json:"selectedOptions,omitempty"`
	TotalPrice      *models.Money     `json:"totalPrice,omitempty"`
}

// Key 行项目身份键
func (i LineItem) Key() string {
	return DeriveKey(i.ProductID, i.SelectedOptions)
}

// LineTotal 行金额：优先使用 TotalPrice，否则 Price*Quantity
func (i LineItem) LineTotal() models.Money {
	if i.TotalPrice != nil {
		return *i.TotalPrice
	}
	return i.Price.Times(i.Quantity)
}

func (i LineItem) clone() LineItem {
	out := i
	if i.SelectedOptions != nil {
		out.SelectedOptions = maps.Clone(i.SelectedOptions)
	}
	if i.Images != nil {
		out.Images = append([]string(nil), i.Images...)
	}
	if i.TotalPrice != nil {
		v := *i.TotalPrice
		out.TotalPrice = &v
	}
	if i.OldPrice != nil {
		v := *i.OldPrice
		out.OldPrice = &v
	}
	return out
}

// FromProduct 由商品构造行项目，单价包含所选选项的加价
func FromProduct(p contracts.Product, quantity int, selected map[string]string) (LineItem, error) {
	unit := p.Price
	for group, optionID := range selected {
		if optionID == "" {
			continue
		}
		opt, ok := findOption(p.Options[group], optionID)
		if !ok {
			return LineItem{}, fmt.Errorf("%w: %s=%s", ErrUnknownOption, group, optionID)
		}
		unit = unit.Add(opt.Price)
	}
	total := unit.Times(quantity)
	item := LineItem{
		ProductID:       p.ID,
		Title:           p.Title,
		Description:     p.ShortDescription,
		Price:           p.Price,
		OldPrice:        p.OldPrice,
		Images:          p.Images,
		MainImage:       p.MainImage,
		InStock:         p.InStock,
		Quantity:        quantity,
		SelectedOptions: selected,
		TotalPrice:      &total,
	}
	return item.clone(), nil
}

func findOption(options []contracts.ProductOption, id string) (contracts.ProductOption, bool) {
	for _, opt := range options {
		if opt.ID == id {
			return opt, true
		}
	}
	return contracts.ProductOption{}, false
}
