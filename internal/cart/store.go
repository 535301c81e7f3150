package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/storage"
	"github.com/dujiao-next/storefront/internal/store"

	"go.uber.org/zap"
)

const (
	// DefaultStorageKey 购物车持久化键
	DefaultStorageKey = storage.KeyCart

	persistTimeout = 5 * time.Second
)

// Store 购物车状态容器
type Store struct {
	state   *store.Writable[[]LineItem]
	storage storage.Storage
	key     string
	log     *zap.SugaredLogger
	stop    func()
	// onStorageErr 读写存储失败时回调，数据损坏不算
	onStorageErr func(error)
}

// Option 构造选项
type Option func(*Store)

// WithStorageKey 指定持久化键（服务端按用户区分）
func WithStorageKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithStorageErrorHandler 存储读写失败时额外回调 fn，服务端据此拒绝未落盘的修改
func WithStorageErrorHandler(fn func(error)) Option {
	return func(s *Store) {
		s.onStorageErr = fn
	}
}

// WithLogger 指定日志
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore 创建购物车并从持久化存储恢复
//
// 持久化数据缺失或损坏时以空购物车启动，不返回错误。
func NewStore(ctx context.Context, st storage.Storage, opts ...Option) *Store {
	s := &Store{storage: st, key: DefaultStorageKey}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Named("cart")
	}
	s.state = store.New(s.load(ctx))

	primed := false
	s.stop = s.state.Subscribe(func(items []LineItem) {
		if !primed {
			primed = true
			return
		}
		s.persist(items)
	})
	return s
}

// Close 停止持久化订阅
func (s *Store) Close() {
	if s.stop != nil {
		s.stop()
	}
}

// Items 返回当前行项目副本
func (s *Store) Items() []LineItem {
	return cloneItems(s.state.Get())
}

// Subscribe 订阅行项目变化
func (s *Store) Subscribe(fn func([]LineItem)) func() {
	return s.state.Subscribe(fn)
}

// TotalView 总金额派生视图
func (s *Store) TotalView() store.Readable[models.Money] {
	return store.Derive[[]LineItem, models.Money](s.state, Total)
}

// CountView 总件数派生视图
func (s *Store) CountView() store.Readable[int] {
	return store.Derive[[]LineItem, int](s.state, Count)
}

// Summary 当前汇总
func (s *Store) Summary() Summary {
	return Summarize(s.state.Get())
}

// AddItem 加入购物车，相同身份键的行合并数量并按原单价比例重算总价
func (s *Store) AddItem(item LineItem) {
	item = item.clone()
	key := item.Key()
	s.state.Update(func(items []LineItem) []LineItem {
		matched := false
		next := make([]LineItem, 0, len(items)+1)
		for _, existing := range items {
			if existing.Key() != key {
				next = append(next, existing)
				continue
			}
			matched = true
			merged := existing.clone()
			merged.Quantity = existing.Quantity + item.Quantity
			total := mergedTotal(existing, item.Price, merged.Quantity)
			merged.TotalPrice = &total
			next = append(next, merged)
		}
		if !matched {
			next = append(next, item)
		}
		return next
	})
}

// RemoveItem 删除身份键匹配的行
func (s *Store) RemoveItem(key string) {
	s.state.Update(func(items []LineItem) []LineItem {
		next := make([]LineItem, 0, len(items))
		for _, item := range items {
			if item.Key() != key {
				next = append(next, item)
			}
		}
		return next
	})
}

// UpdateQuantity 修改数量，负数按 0 处理，数量为 0 的行被移除
func (s *Store) UpdateQuantity(key string, quantity int) {
	quantity = max(quantity, 0)
	s.state.Update(func(items []LineItem) []LineItem {
		next := make([]LineItem, 0, len(items))
		for _, item := range items {
			if item.Key() == key {
				updated := item.clone()
				updated.Quantity = quantity
				total := mergedTotal(item, item.Price, quantity)
				updated.TotalPrice = &total
				item = updated
			}
			if item.Quantity > 0 {
				next = append(next, item)
			}
		}
		return next
	})
}

// Clear 清空购物车
func (s *Store) Clear() {
	s.state.Set([]LineItem{})
}

// Replace 用给定行项目整体替换（与服务端同步时使用）
func (s *Store) Replace(items []LineItem) {
	s.state.Set(cloneItems(items))
}

// mergedTotal 有缓存总价时按原单价换算，否则使用 price*quantity
//
// 缓存总价为 0（如免费赠品）同样视为已设置，与 LineTotal 一致。
func mergedTotal(existing LineItem, price models.Money, quantity int) models.Money {
	if existing.TotalPrice != nil && existing.Quantity > 0 {
		return existing.TotalPrice.Rescale(existing.Quantity, quantity)
	}
	return price.Times(quantity)
}

func (s *Store) load(ctx context.Context) []LineItem {
	var items []LineItem
	ok, err := storage.GetJSON(ctx, s.storage, s.key, &items)
	if err != nil {
		s.log.Warnw("cart_load_failed", "key", s.key, "error", err)
		if !errors.Is(err, storage.ErrMalformed) {
			s.reportStorageErr(fmt.Errorf("load cart: %w", err))
		}
		return []LineItem{}
	}
	if !ok || items == nil {
		return []LineItem{}
	}
	return items
}

func (s *Store) persist(items []LineItem) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := storage.SetJSON(ctx, s.storage, s.key, items); err != nil {
		s.log.Warnw("cart_persist_failed", "key", s.key, "error", err)
		s.reportStorageErr(fmt.Errorf("persist cart: %w", err))
	}
}

func (s *Store) reportStorageErr(err error) {
	if s.onStorageErr != nil {
		s.onStorageErr(err)
	}
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = item.clone()
	}
	return out
}
