package service

import (
	"strconv"

	"github.com/dujiao-next/storefront/internal/contracts"
	"github.com/dujiao-next/storefront/internal/models"
)

// ToContractUser 用户模型转接口结构
func ToContractUser(u *models.User) contracts.User {
	if u == nil {
		return contracts.User{}
	}
	return contracts.User{
		ID:        strconv.FormatUint(uint64(u.ID), 10),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToContractProduct 商品模型转接口结构
func ToContractProduct(p *models.Product) contracts.Product {
	if p == nil {
		return contracts.Product{}
	}
	out := contracts.Product{
		ID:               p.ID,
		Title:            p.Title,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Price:            p.Price,
		OldPrice:         p.OldPrice,
		Images:           append([]string{}, p.Images...),
		MainImage:        p.MainImage,
		IsNew:            p.IsNew,
		Discount:         p.Discount,
		InStock:          p.InStock(),
		StockQuantity:    p.StockQuantity,
		Category:         p.Category,
		Tags:             append([]string(nil), p.Tags...),
		SKU:              p.SKU,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if len(p.Specifications) > 0 {
		out.Specifications = make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			out.Specifications[k] = v
		}
	}
	if len(p.Options) > 0 {
		out.Options = make(map[string][]contracts.ProductOption, len(p.Options))
		for group, values := range p.Options {
			opts := make([]contracts.ProductOption, 0, len(values))
			for _, v := range values {
				opts = append(opts, contracts.ProductOption{ID: v.ID, Name: v.Name, Price: v.Price, Description: v.Description})
			}
			out.Options[group] = opts
		}
	}
	return out
}

// ToContractReview 评价模型转接口结构，作者邮箱不对外输出
func ToContractReview(r *models.Review) contracts.Review {
	if r == nil {
		return contracts.Review{}
	}
	return contracts.Review{
		ID:         r.ID,
		ProductID:  r.ProductID,
		Type:       r.Type,
		Rating:     r.Rating,
		Comment:    r.Comment,
		VideoURL:   r.VideoURL,
		AuthorName: r.AuthorName,
		CreatedAt:  r.CreatedAt,
	}
}

// ToContractNotification 通知模型转接口结构
func ToContractNotification(n *models.Notification) contracts.Notification {
	if n == nil {
		return contracts.Notification{}
	}
	return contracts.Notification{
		ID:        n.ID,
		UserID:    strconv.FormatUint(uint64(n.UserID), 10),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
