package public

import (
	"strconv"

	"github.com/dujiao-next/storefront/internal/cart"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CartQuantityRequest 修改数量请求
type CartQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	items, summary, err := h.CartService.Items(c.Request.Context(), uid)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "Failed to load cart")
		return
	}
	c.Header("X-Cart-Items-Count", strconv.Itoa(summary.ItemsCount))
	c.Header("X-Cart-Total", summary.TotalPrice.String())
	response.Success(c, items)
}

// AddCartItem 加入购物车，价格以服务端商品为准
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req cart.LineItem
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	items, err := h.CartService.Add(c.Request.Context(), uid, service.AddCartItemInput{
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		SelectedOptions: req.SelectedOptions,
	})
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "Failed to update cart")
		return
	}
	response.Success(c, items)
}

// UpdateCartItem 修改行数量，0 表示移除
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Quantity is required", err)
		return
	}
	items, err := h.CartService.UpdateQuantity(c.Request.Context(), uid, c.Param("key"), *req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "Failed to update cart")
		return
	}
	response.Success(c, items)
}

// RemoveCartItem 删除行
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	items, err := h.CartService.Remove(c.Request.Context(), uid, c.Param("key"))
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "Failed to update cart")
		return
	}
	response.Success(c, items)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(c.Request.Context(), uid); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "Failed to clear cart")
		return
	}
	response.Success(c, []cart.LineItem{})
}
