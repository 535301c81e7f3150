// Package review 商品评价：校验管线、提交服务、可替换的持久化后端与状态容器
package review

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/dujiao-next/storefront/internal/contracts"
)

var (
	// ErrNotFound 评价不存在
	ErrNotFound = errors.New("review not found")
)

// Review 已保存的评价
type Review = contracts.Review

// Patch 评价局部更新
type Patch = contracts.ReviewPatch

// 评价类型
const (
	TypeText  = "text"
	TypeVideo = "video"
)

// FormData 用户提交的评价表单
type FormData struct {
	ProductID   string `json:"productId"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	AuthorName  string `json:"authorName"`
	AuthorEmail string `json:"authorEmail"`
	Type        string `json:"type,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty"`
}

// ToReview 转换为待保存的评价
func (f FormData) ToReview() Review {
	kind := f.Type
	if kind == "" {
		kind = TypeText
	}
	return Review{
		ProductID:   f.ProductID,
		Type:        kind,
		Rating:      f.Rating,
		Comment:     f.Comment,
		VideoURL:    f.VideoURL,
		AuthorName:  f.AuthorName,
		AuthorEmail: f.AuthorEmail,
	}
}

// DisplayText 评价展示文本
func DisplayText(r Review) string {
	if r.Type == TypeVideo && r.VideoURL != "" {
		return "Video review: " + r.VideoURL
	}
	return r.Comment
}

// FieldError 字段错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors 有序字段错误集合
//
// 字段保持首次写入的位置，同一字段后写入的消息覆盖先前的消息。
type FieldErrors []FieldError

// Set 写入字段错误
func (e *FieldErrors) Set(field, message string) {
	for i := range *e {
		if (*e)[i].Field == field {
			(*e)[i].Message = message
			return
		}
	}
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Get 读取字段错误
func (e FieldErrors) Get(field string) (string, bool) {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message, true
		}
	}
	return "", false
}

// Merge 按顺序合并另一组错误
func (e *FieldErrors) Merge(other FieldErrors) {
	for _, fe := range other {
		e.Set(fe.Field, fe.Message)
	}
}

// First 第一个错误消息
func (e FieldErrors) First() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Message
}

// MarshalJSON 编码为保持顺序的 JSON 对象
func (e FieldErrors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fe := range e {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(fe.Field)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(fe.Message)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ValidationResult 校验结果
type ValidationResult struct {
	IsValid bool        `json:"isValid"`
	Errors  FieldErrors `json:"errors"`
}

// SubmissionResult 提交结果
type SubmissionResult struct {
	Success bool    `json:"success"`
	Review  *Review `json:"review,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// Backend 评价持久化后端
type Backend interface {
	Create(ctx context.Context, review Review) (Review, error)
	GetByProductID(ctx context.Context, productID string) ([]Review, error)
	Update(ctx context.Context, id string, patch Patch) (Review, error)
	Delete(ctx context.Context, id string) error
}

// Service 评价服务
type Service interface {
	SubmitReview(ctx context.Context, form FormData) SubmissionResult
	GetProductReviews(ctx context.Context, productID string) []Review
}
