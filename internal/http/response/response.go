package response

import (
	"net/http"

	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/contracts"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构 {data, success, message, errors, pagination}
type Response struct {
	Data       interface{}           `json:"data"`
	Success    bool                  `json:"success"`
	Message    string                `json:"message,omitempty"`
	Errors     []string              `json:"errors,omitempty"`
	Pagination *contracts.Pagination `json:"pagination,omitempty"`
	RequestID  string                `json:"requestId,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Data: data, Success: true})
}

// SuccessWithMsg 成功响应（自定义消息）
func SuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Data: data, Success: true, Message: msg})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Data: data, Success: true})
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, pagination contracts.Pagination) {
	c.JSON(http.StatusOK, Response{Data: data, Success: true, Pagination: &pagination})
}

// Error 错误响应
func Error(c *gin.Context, statusCode int, msg string) {
	ErrorWithData(c, statusCode, msg, nil)
}

// ErrorWithData 错误响应（带数据），如字段校验错误
func ErrorWithData(c *gin.Context, statusCode int, msg string, data interface{}) {
	body := Response{
		Data:      data,
		Success:   false,
		Message:   msg,
		RequestID: requestIDFrom(c),
	}
	if msg != "" {
		body.Errors = []string{msg}
	}
	c.JSON(statusCode, body)
}

// ErrorWithMessages 错误响应（多条错误信息）
func ErrorWithMessages(c *gin.Context, statusCode int, msg string, messages []string, data interface{}) {
	body := Response{
		Data:      data,
		Success:   false,
		Message:   msg,
		Errors:    messages,
		RequestID: requestIDFrom(c),
	}
	c.JSON(statusCode, body)
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// Unauthorized 401响应
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// Forbidden 403响应
func Forbidden(c *gin.Context, msg string) {
	Error(c, CodeForbidden, msg)
}

// BadRequest 400响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg)
}

func requestIDFrom(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get(constants.ContextKeyRequestID); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
