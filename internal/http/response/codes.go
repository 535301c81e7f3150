package response

import "net/http"

// 错误响应使用的 HTTP 状态码
const (
	CodeBadRequest          = http.StatusBadRequest
	CodeUnauthorized        = http.StatusUnauthorized
	CodeForbidden           = http.StatusForbidden
	CodeNotFound            = http.StatusNotFound
	CodeConflict            = http.StatusConflict
	CodeUnprocessableEntity = http.StatusUnprocessableEntity
	CodeTooManyRequests     = http.StatusTooManyRequests
	CodeInternal            = http.StatusInternalServerError
)
