package admin

import (
	"errors"
	"strings"

	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/review"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

var reviewModerationErrorRules = []mappedHandlerError{
	{target: service.ErrReviewNotFound, code: response.CodeNotFound, msg: "Review not found"},
}

// UpdateReview 局部更新评价
func (h *Handler) UpdateReview(c *gin.Context) {
	var patch review.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	updated, fieldErrors, err := h.ReviewService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, service.ErrReviewInvalid) && len(fieldErrors) > 0 {
			handlershared.RespondFieldErrors(c, fieldErrors)
			return
		}
		respondWithMappedError(c, err, reviewModerationErrorRules, response.CodeInternal, "Failed to update review")
		return
	}
	requestLog(c).Infow("admin_review_updated", "review_id", updated.ID, "operator_id", currentUserID(c), "role", currentRole(c))
	response.Success(c, updated)
}

// DeleteReview 删除评价
func (h *Handler) DeleteReview(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := h.ReviewService.Delete(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, reviewModerationErrorRules, response.CodeInternal, "Failed to delete review")
		return
	}
	requestLog(c).Infow("admin_review_deleted", "review_id", id, "operator_id", currentUserID(c), "role", currentRole(c))
	response.Success(c, nil)
}

// GetReviewStats 商品评价统计
func (h *Handler) GetReviewStats(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("productId"))
	stats, found, err := h.ReviewAnalytics.Stats(c.Request.Context(), productID)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load review stats", err)
		return
	}
	response.Success(c, gin.H{
		"productId":   productID,
		"available":   found,
		"submissions": stats.Submissions,
		"views":       stats.Views,
		"average":     stats.Average(),
		"byRating":    stats.ByRating,
	})
}
