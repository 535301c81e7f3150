package public

import (
	"strconv"

	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetNotifications 当前用户通知列表
func (h *Handler) GetNotifications(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, limit := handlershared.PageQuery(c)
	unreadOnly, _ := strconv.ParseBool(c.DefaultQuery("unread", "false"))
	result, err := h.NotificationService.List(uid, page, limit, unreadOnly)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load notifications", err)
		return
	}
	response.SuccessWithPage(c, result.Items, result.Pagination)
}

// MarkNotificationRead 标记单条已读
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	notification, err := h.NotificationService.MarkRead(uid, c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, notificationErrorRules, response.CodeInternal, "Failed to update notification")
		return
	}
	response.Success(c, notification)
}

// MarkAllNotificationsRead 全部标记已读
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	updated, err := h.NotificationService.MarkAllRead(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to update notifications", err)
		return
	}
	response.Success(c, gin.H{"updated": updated})
}

// DeleteNotification 删除通知
func (h *Handler) DeleteNotification(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.NotificationService.Delete(uid, c.Param("id")); err != nil {
		respondWithMappedError(c, err, notificationErrorRules, response.CodeInternal, "Failed to delete notification")
		return
	}
	response.Success(c, nil)
}
