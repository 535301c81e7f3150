package review

import (
	"context"
	"math"
	"slices"
	"sync/atomic"

	"github.com/dujiao-next/storefront/internal/store"
)

// State 评价状态
type State struct {
	Reviews      []Review
	IsLoading    bool
	IsSubmitting bool
	Phase        Phase
	Error        string
}

func initialState() State {
	return State{Reviews: []Review{}, Phase: PhaseIdle}
}

// Store 评价状态容器
type Store struct {
	state   *store.Writable[State]
	service Service
	// loadGen 只采用最后一次发起的加载结果
	loadGen atomic.Uint64
}

// NewStore 创建评价状态容器
func NewStore(service Service) *Store {
	return &Store{state: store.New(initialState()), service: service}
}

// State 当前快照
func (s *Store) State() State {
	return s.state.Get()
}

// Subscribe 订阅状态变化
func (s *Store) Subscribe(fn func(State)) func() {
	return s.state.Subscribe(fn)
}

// LoadProductReviews 加载商品评价，被新的加载请求取代的结果会被丢弃
func (s *Store) LoadProductReviews(ctx context.Context, productID string) {
	gen := s.loadGen.Add(1)
	s.state.Update(func(st State) State {
		st.IsLoading = true
		st.Error = ""
		return st
	})

	reviews := s.service.GetProductReviews(ctx, productID)

	s.state.Update(func(st State) State {
		if s.loadGen.Load() != gen {
			return st
		}
		st.Reviews = slices.Clone(reviews)
		st.IsLoading = false
		return st
	})
}

// SubmitReview 提交评价，成功后追加到列表
func (s *Store) SubmitReview(ctx context.Context, form FormData) SubmissionResult {
	s.state.Update(func(st State) State {
		st.IsSubmitting = true
		st.Error = ""
		return st
	})

	ctx = WithSubmitTrace(ctx, &SubmitTrace{
		PhaseChanged: func(p Phase) {
			s.state.Update(func(st State) State {
				st.Phase = p
				return st
			})
		},
	})
	result := s.service.SubmitReview(ctx, form)

	s.state.Update(func(st State) State {
		st.IsSubmitting = false
		if result.Success && result.Review != nil {
			st.Reviews = append(slices.Clone(st.Reviews), *result.Review)
		} else if result.Error != "" {
			st.Error = result.Error
		}
		return st
	})
	return result
}

// Reset 恢复初始状态，进行中的加载结果将被丢弃
func (s *Store) Reset() {
	s.loadGen.Add(1)
	s.state.Set(initialState())
}

// Reviews 评价列表视图
func (s *Store) Reviews() store.Readable[[]Review] {
	return store.Derive[State, []Review](s.state, func(st State) []Review { return st.Reviews })
}

// ReviewCount 评价数量视图
func (s *Store) ReviewCount() store.Readable[int] {
	return store.Derive[State, int](s.state, func(st State) int { return len(st.Reviews) })
}

// AverageRating 平均评分视图（保留 1 位小数）
func (s *Store) AverageRating() store.Readable[float64] {
	return store.Derive[State, float64](s.state, func(st State) float64 { return AverageRating(st.Reviews) })
}

// ReviewsByRating 指定评分的评价视图
func (s *Store) ReviewsByRating(rating int) store.Readable[[]Review] {
	return store.Derive[State, []Review](s.state, func(st State) []Review {
		out := make([]Review, 0)
		for _, r := range st.Reviews {
			if r.Rating == rating {
				out = append(out, r)
			}
		}
		return out
	})
}

// AverageRating 计算平均评分，无评价时为 0
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return math.Round(float64(sum)/float64(len(reviews))*10) / 10
}
