package review

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryBackend 内存评价后端，用于本地演示与测试
type MemoryBackend struct {
	mu      sync.RWMutex
	reviews []Review
	now     func() time.Time
}

// SampleReviews 演示数据
func SampleReviews() []Review {
	return []Review{{
		ID:          "1",
		ProductID:   "product-1",
		Type:        TypeText,
		Rating:      5,
		Comment:     "Great product, highly recommend it!",
		AuthorName:  "Ivan Petrov",
		AuthorEmail: "ivan@example.com",
		CreatedAt:   time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
	}}
}

// NewMemoryBackend 创建内存后端
func NewMemoryBackend(seed ...Review) *MemoryBackend {
	return &MemoryBackend{reviews: slices.Clone(seed), now: time.Now}
}

// Create 保存评价并生成 ID
func (m *MemoryBackend) Create(_ context.Context, r Review) (Review, error) {
	r.ID = uuid.NewString()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = m.now().UTC()
	}
	m.mu.Lock()
	m.reviews = append(m.reviews, r)
	m.mu.Unlock()
	return r, nil
}

// GetByProductID 按商品查询
func (m *MemoryBackend) GetByProductID(_ context.Context, productID string) ([]Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Review, 0)
	for _, r := range m.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

// Update 合并更新
func (m *MemoryBackend) Update(_ context.Context, id string, patch Patch) (Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.reviews {
		if r.ID == id {
			m.reviews[i] = patch.Apply(r)
			return m.reviews[i], nil
		}
	}
	return Review{}, ErrNotFound
}

// Delete 删除评价，不存在时忽略
func (m *MemoryBackend) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews = slices.DeleteFunc(m.reviews, func(r Review) bool { return r.ID == id })
	return nil
}
