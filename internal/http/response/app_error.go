package response

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// AppError 携带 HTTP 状态码与错误信息的错误，Messages 对应响应中的 errors 列表
type AppError struct {
	Code     int
	Message  string
	Messages []string
	Data     interface{}
	Err      error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError 字段校验错误，data 保留字段到消息的映射
func ValidationError(message string, messages []string, data interface{}) *AppError {
	return &AppError{
		Code:     CodeUnprocessableEntity,
		Message:  message,
		Messages: messages,
		Data:     data,
	}
}

// AsAppError 从错误链中取出 AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Respond 写出错误响应
func (e *AppError) Respond(c *gin.Context) {
	if len(e.Messages) > 0 {
		ErrorWithMessages(c, e.Code, e.Message, e.Messages, e.Data)
		return
	}
	ErrorWithData(c, e.Code, e.Message, e.Data)
}
