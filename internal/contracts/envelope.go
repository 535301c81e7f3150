// Package contracts 定义 storefront REST 接口的传输结构（JSON 字段为 camelCase）
package contracts

import "encoding/json"

// Envelope 统一响应包装
type Envelope struct {
	Data       json.RawMessage `json:"data"`
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Errors     []string        `json:"errors,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// Pagination 列表分页信息
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination 根据总数计算分页
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// Page 分页列表
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}
