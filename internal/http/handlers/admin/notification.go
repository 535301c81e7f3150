package admin

import (
	"errors"

	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// SendNotificationRequest 发送站内通知请求，title/message 支持 {{var}} 占位符
type SendNotificationRequest struct {
	UserID    uint           `json:"userId" binding:"required"`
	Type      string         `json:"type"`
	Title     string         `json:"title" binding:"required"`
	Message   string         `json:"message" binding:"required"`
	Link      string         `json:"link"`
	Variables map[string]any `json:"variables"`
}

// SendNotification 向用户发送通知
func (h *Handler) SendNotification(c *gin.Context) {
	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	user, err := h.UserRepo.GetByID(req.UserID)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load user", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "User not found", nil)
		return
	}
	created, err := h.NotificationService.Create(c.Request.Context(), service.NotificationInput{
		UserID:    req.UserID,
		Type:      req.Type,
		Title:     req.Title,
		Message:   req.Message,
		Link:      req.Link,
		Variables: req.Variables,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "User not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to send notification", err)
		return
	}
	response.Created(c, created)
}
