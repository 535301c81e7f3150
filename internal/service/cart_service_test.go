package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dujiao-next/storefront/internal/cart"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"
	"github.com/dujiao-next/storefront/internal/storage"

	"github.com/shopspring/decimal"
)

func newCartServiceForTest(t *testing.T) (*CartService, *storage.DB) {
	t.Helper()
	db := setupServiceTestDB(t)
	products := NewProductService(repository.NewProductRepository(db))
	_, err := products.Create(CreateProductInput{
		ID:            "desk",
		Title:         "Standing Desk",
		Price:         decimal.NewFromInt(300),
		StockQuantity: 4,
		Options: models.OptionGroups{
			"height": {{ID: "tall", Name: "Tall", Price: models.NewMoney(50)}},
		},
	})
	if err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	st := storage.NewDB(db)
	return NewCartService(st, products, nil), st
}

func TestCartServiceAddRepricesFromCatalog(t *testing.T) {
	svc, st := newCartServiceForTest(t)
	ctx := context.Background()

	items, err := svc.Add(ctx, 7, AddCartItemInput{ProductID: "desk", Quantity: 2, SelectedOptions: map[string]string{"height": "tall"}})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(items) != 1 || !items[0].LineTotal().Equal(models.NewMoney(700)) {
		t.Fatalf("unexpected items: %+v", items)
	}
	items, err = svc.Add(ctx, 7, AddCartItemInput{ProductID: "desk", Quantity: 1, SelectedOptions: map[string]string{"height": "tall"}})
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 3 || !items[0].LineTotal().Equal(models.NewMoney(1050)) {
		t.Fatalf("merge failed: %+v", items)
	}

	raw, ok, err := st.Get(ctx, CartStorageKey(7))
	if err != nil || !ok || raw == "" {
		t.Fatalf("cart not persisted under per-user key: ok=%v err=%v", ok, err)
	}
	other, _, err := svc.Items(ctx, 8)
	if err != nil || len(other) != 0 {
		t.Fatalf("carts must be isolated per user: %+v", other)
	}
}

func TestCartServiceRejectsInvalidInput(t *testing.T) {
	svc, _ := newCartServiceForTest(t)
	ctx := context.Background()
	if _, err := svc.Add(ctx, 1, AddCartItemInput{ProductID: "desk", Quantity: 0}); !errors.Is(err, ErrInvalidCartItem) {
		t.Fatalf("expected ErrInvalidCartItem, got %v", err)
	}
	if _, err := svc.Add(ctx, 1, AddCartItemInput{ProductID: "desk", Quantity: 1, SelectedOptions: map[string]string{"height": "giant"}}); !errors.Is(err, ErrInvalidCartItem) {
		t.Fatalf("expected ErrInvalidCartItem for unknown option, got %v", err)
	}
	if _, err := svc.Add(ctx, 1, AddCartItemInput{ProductID: "nope", Quantity: 1}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := svc.UpdateQuantity(ctx, 1, "nope|x", 2); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestCartServiceUpdateRemoveClear(t *testing.T) {
	svc, _ := newCartServiceForTest(t)
	ctx := context.Background()
	if _, err := svc.Add(ctx, 3, AddCartItemInput{ProductID: "desk", Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	key := cart.DeriveKey("desk", nil)

	items, err := svc.UpdateQuantity(ctx, 3, key, 5)
	if err != nil || items[0].Quantity != 5 || !items[0].LineTotal().Equal(models.NewMoney(1500)) {
		t.Fatalf("update failed: %+v err=%v", items, err)
	}
	items, err = svc.Remove(ctx, 3, "unknown")
	if err != nil || len(items) != 1 {
		t.Fatalf("removing an unknown key must be a no-op: %+v err=%v", items, err)
	}
	items, err = svc.UpdateQuantity(ctx, 3, key, 0)
	if err != nil || len(items) != 0 {
		t.Fatalf("quantity 0 must drop the line: %+v err=%v", items, err)
	}

	if _, err := svc.Add(ctx, 3, AddCartItemInput{ProductID: "desk", Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Clear(ctx, 3); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	items, summary, err := svc.Items(ctx, 3)
	if err != nil || len(items) != 0 || summary.ItemsCount != 0 {
		t.Fatalf("cart not cleared: %+v %+v err=%v", items, summary, err)
	}
}

// diskFullStorage 读取正常，打开 full 后写入失败
type diskFullStorage struct {
	storage.Storage
	full atomic.Bool
}

func (d *diskFullStorage) Set(ctx context.Context, key, value string) error {
	if d.full.Load() {
		return errors.New("disk full")
	}
	return d.Storage.Set(ctx, key, value)
}

func TestCartServiceReportsLostWrites(t *testing.T) {
	svc, st := newCartServiceForTest(t)
	disk := &diskFullStorage{Storage: st}
	svc = NewCartService(disk, svc.products, nil)
	ctx := context.Background()
	if _, err := svc.Add(ctx, 5, AddCartItemInput{ProductID: "desk", Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	key := cart.DeriveKey("desk", nil)

	disk.full.Store(true)
	if _, err := svc.Add(ctx, 5, AddCartItemInput{ProductID: "desk", Quantity: 1}); !errors.Is(err, ErrCartStorage) {
		t.Fatalf("add on full disk: expected ErrCartStorage, got %v", err)
	}
	if _, err := svc.UpdateQuantity(ctx, 5, key, 4); !errors.Is(err, ErrCartStorage) {
		t.Fatalf("update on full disk: expected ErrCartStorage, got %v", err)
	}
	if _, err := svc.Remove(ctx, 5, key); !errors.Is(err, ErrCartStorage) {
		t.Fatalf("remove on full disk: expected ErrCartStorage, got %v", err)
	}
	if err := svc.Clear(ctx, 5); !errors.Is(err, ErrCartStorage) {
		t.Fatalf("clear on full disk: expected ErrCartStorage, got %v", err)
	}

	disk.full.Store(false)
	items, _, err := svc.Items(ctx, 5)
	if err != nil || len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("failed writes must not change the stored cart: %+v err=%v", items, err)
	}
}

// unreadableStorage 读取总是失败
type unreadableStorage struct {
	storage.Storage
}

func (unreadableStorage) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}

func TestCartServiceRejectsUnreadableCart(t *testing.T) {
	svc, st := newCartServiceForTest(t)
	svc = NewCartService(unreadableStorage{Storage: st}, svc.products, nil)
	if _, _, err := svc.Items(context.Background(), 5); !errors.Is(err, ErrCartStorage) {
		t.Fatalf("expected ErrCartStorage, got %v", err)
	}
}

func TestCartServiceSerializesSameUser(t *testing.T) {
	svc, _ := newCartServiceForTest(t)
	svc = NewCartService(storage.NewMemory(), svc.products, nil)
	ctx := context.Background()
	// 65 与 1 落在同一把锁上，交错执行也不能丢失数量
	users := []uint{1, 1 + cartLockStripes}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		for _, userID := range users {
			wg.Add(1)
			go func(userID uint) {
				defer wg.Done()
				if _, err := svc.Add(ctx, userID, AddCartItemInput{ProductID: "desk", Quantity: 1}); err != nil {
					t.Errorf("add for user %d failed: %v", userID, err)
				}
			}(userID)
		}
	}
	wg.Wait()

	for _, userID := range users {
		items, _, err := svc.Items(ctx, userID)
		if err != nil || len(items) != 1 || items[0].Quantity != 20 {
			t.Fatalf("user %d: lost updates: %+v err=%v", userID, items, err)
		}
	}
}
