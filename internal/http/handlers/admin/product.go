package admin

import (
	"strings"

	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	ID               string              `json:"id"`
	Title            string              `json:"title" binding:"required"`
	Description      string              `json:"description"`
	ShortDescription string              `json:"shortDescription"`
	Price            decimal.Decimal     `json:"price"`
	OldPrice         *decimal.Decimal    `json:"oldPrice"`
	Images           []string            `json:"images"`
	IsNew            bool                `json:"isNew"`
	Discount         bool                `json:"discount"`
	StockQuantity    int                 `json:"stockQuantity"`
	Specifications   map[string]string   `json:"specifications"`
	Options          models.OptionGroups `json:"options"`
	Category         string              `json:"category"`
	Tags             []string            `json:"tags"`
	SKU              string              `json:"sku"`
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Title) == "" || req.Price.IsNegative() {
		respondError(c, response.CodeBadRequest, "Title and a non-negative price are required", nil)
		return
	}
	product, err := h.ProductService.Create(service.CreateProductInput{
		ID:               req.ID,
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            req.Price,
		OldPrice:         req.OldPrice,
		Images:           req.Images,
		IsNew:            req.IsNew,
		Discount:         req.Discount,
		StockQuantity:    req.StockQuantity,
		Specifications:   req.Specifications,
		Options:          req.Options,
		Category:         req.Category,
		Tags:             req.Tags,
		SKU:              req.SKU,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to create product", err)
		return
	}
	response.Created(c, service.ToContractProduct(product))
}
