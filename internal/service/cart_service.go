package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dujiao-next/storefront/internal/cart"
	"github.com/dujiao-next/storefront/internal/storage"

	"go.uber.org/zap"
)

// AddCartItemInput 加入购物车输入，价格与商品信息以服务端商品为准
type AddCartItemInput struct {
	ProductID       string
	Quantity        int
	SelectedOptions map[string]string
}

// cartLockStripes 按用户 ID 取模的锁数量
const cartLockStripes = 64

// CartService 购物车服务：每个用户一个 cart.Store，持久化键为 cart:{userID}
type CartService struct {
	storage  storage.Storage
	products *ProductService
	log      *zap.SugaredLogger
	locks    [cartLockStripes]sync.Mutex
}

// NewCartService 创建购物车服务
func NewCartService(st storage.Storage, products *ProductService, log *zap.SugaredLogger) *CartService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &CartService{storage: st, products: products, log: log}
}

// CartStorageKey 用户购物车持久化键
func CartStorageKey(userID uint) string {
	return fmt.Sprintf("%s:%d", storage.KeyCart, userID)
}

// withCart 串行化同一用户的操作；读取或写回存储失败时返回 ErrCartStorage
func (s *CartService) withCart(ctx context.Context, userID uint, fn func(st *cart.Store) error) ([]cart.LineItem, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	mu := &s.locks[userID%cartLockStripes]
	mu.Lock()
	defer mu.Unlock()

	var storageErrs []error
	st := cart.NewStore(ctx, s.storage,
		cart.WithStorageKey(CartStorageKey(userID)),
		cart.WithLogger(s.log.With("user_id", userID)),
		cart.WithStorageErrorHandler(func(err error) { storageErrs = append(storageErrs, err) }),
	)
	defer st.Close()
	if len(storageErrs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrCartStorage, errors.Join(storageErrs...))
	}
	if fn != nil {
		if err := fn(st); err != nil {
			return nil, err
		}
	}
	if len(storageErrs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrCartStorage, errors.Join(storageErrs...))
	}
	return st.Items(), nil
}

// Items 用户购物车
func (s *CartService) Items(ctx context.Context, userID uint) ([]cart.LineItem, cart.Summary, error) {
	items, err := s.withCart(ctx, userID, nil)
	if err != nil {
		return nil, cart.Summary{}, err
	}
	return items, cart.Summarize(items), nil
}

// Add 加入商品，同一身份键合并数量
func (s *CartService) Add(ctx context.Context, userID uint, input AddCartItemInput) ([]cart.LineItem, error) {
	if input.ProductID == "" || input.Quantity <= 0 {
		return nil, ErrInvalidCartItem
	}
	product, err := s.products.GetPublic(input.ProductID)
	if err != nil {
		return nil, err
	}
	item, err := cart.FromProduct(product, input.Quantity, input.SelectedOptions)
	if err != nil {
		if errors.Is(err, cart.ErrUnknownOption) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCartItem, err)
		}
		return nil, err
	}
	return s.withCart(ctx, userID, func(st *cart.Store) error {
		st.AddItem(item)
		return nil
	})
}

// UpdateQuantity 修改数量，0 表示移除
func (s *CartService) UpdateQuantity(ctx context.Context, userID uint, key string, quantity int) ([]cart.LineItem, error) {
	return s.withCart(ctx, userID, func(st *cart.Store) error {
		if !containsKey(st.Items(), key) {
			return ErrCartItemNotFound
		}
		st.UpdateQuantity(key, quantity)
		return nil
	})
}

// Remove 删除行项目，键不存在时不做任何修改
func (s *CartService) Remove(ctx context.Context, userID uint, key string) ([]cart.LineItem, error) {
	return s.withCart(ctx, userID, func(st *cart.Store) error {
		st.RemoveItem(key)
		return nil
	})
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, userID uint) error {
	_, err := s.withCart(ctx, userID, func(st *cart.Store) error {
		st.Clear()
		return nil
	})
	return err
}

func containsKey(items []cart.LineItem, key string) bool {
	for _, item := range items {
		if item.Key() == key {
			return true
		}
	}
	return false
}
