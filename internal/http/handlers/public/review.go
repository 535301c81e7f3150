package public

import (
	"errors"
	"strings"

	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/review"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// GetReviews 按 productId 查询评价
func (h *Handler) GetReviews(c *gin.Context) {
	productID := strings.TrimSpace(c.Query("productId"))
	if productID == "" {
		respondError(c, response.CodeBadRequest, "productId is required", nil)
		return
	}
	response.Success(c, h.ReviewService.ListByProduct(c.Request.Context(), productID))
}

// GetProductReviews 商品评价列表
func (h *Handler) GetProductReviews(c *gin.Context) {
	response.Success(c, h.ReviewService.ListByProduct(c.Request.Context(), c.Param("id")))
}

// SubmitReview 提交评价，登录可选
func (h *Handler) SubmitReview(c *gin.Context) {
	var form review.FormData
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	h.submitReview(c, form)
}

// SubmitProductReview 为路径中的商品提交评价
func (h *Handler) SubmitProductReview(c *gin.Context) {
	var form review.FormData
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	form.ProductID = c.Param("id")
	h.submitReview(c, form)
}

func (h *Handler) submitReview(c *gin.Context, form review.FormData) {
	created, fieldErrors, err := h.ReviewService.Submit(c.Request.Context(), form, optionalUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrReviewInvalid) && len(fieldErrors) > 0 {
			handlershared.RespondFieldErrors(c, fieldErrors)
			return
		}
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "Failed to submit review")
		return
	}
	response.Created(c, created)
}
