package repository

import (
	"testing"
	"time"

	"github.com/dujiao-next/storefront/internal/contracts"
	"github.com/dujiao-next/storefront/internal/models"

	"github.com/shopspring/decimal"
)

func seedProducts(t *testing.T, repo *GormProductRepository) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	products := []models.Product{
		{ID: "p-1", Title: "Wireless Headphones", Price: models.NewMoney(99.99), StockQuantity: 5, IsNew: true, Category: "audio", Tags: models.StringArray{"wireless", "audio"}, IsActive: true, CreatedAt: base},
		{ID: "p-2", Title: "Bluetooth Speaker", Price: models.NewMoney(49.5), StockQuantity: 0, Discount: true, Category: "audio", Tags: models.StringArray{"bluetooth"}, IsActive: true, CreatedAt: base.Add(time.Hour)},
		{ID: "p-3", Title: "Smart Watch", Price: models.NewMoney(199), StockQuantity: 2, Category: "wearables", Tags: models.StringArray{"wireless"}, IsActive: true, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "p-4", Title: "Old Cable 100%_pure", Price: models.NewMoney(5), StockQuantity: 10, Category: "accessories", IsActive: false, CreatedAt: base.Add(3 * time.Hour)},
	}
	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}
	// is_active 带默认值，零值需要在创建后单独写入
	products[3].IsActive = false
	if err := repo.Update(&products[3]); err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}
}

func productIDs(products []models.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestProductRepositoryListFilters(t *testing.T) {
	repo := NewProductRepository(setupRepositoryTestDB(t))
	seedProducts(t, repo)

	yes := true
	items, total, err := repo.List(ProductListFilter{OnlyActive: true, InStock: &yes, Sort: contracts.SortPriceAsc})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("total want 2 got %d", total)
	}
	if ids := productIDs(items); ids[0] != "p-1" || ids[1] != "p-3" {
		t.Fatalf("unexpected order: %v", ids)
	}

	min := decimal.NewFromInt(40)
	max := decimal.NewFromInt(100)
	items, _, err = repo.List(ProductListFilter{OnlyActive: true, PriceMin: &min, PriceMax: &max, Sort: contracts.SortNameAsc})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if ids := productIDs(items); len(ids) != 2 || ids[0] != "p-2" || ids[1] != "p-1" {
		t.Fatalf("unexpected price range result: %v", ids)
	}

	items, _, err = repo.List(ProductListFilter{OnlyActive: true, Tags: []string{"wireless"}})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if ids := productIDs(items); len(ids) != 2 || ids[0] != "p-3" {
		t.Fatalf("unexpected tag result (newest first): %v", ids)
	}
}

func TestProductRepositorySearchAndPagination(t *testing.T) {
	repo := NewProductRepository(setupRepositoryTestDB(t))
	seedProducts(t, repo)

	items, total, err := repo.List(ProductListFilter{OnlyActive: true, Search: "speaker"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || items[0].ID != "p-2" {
		t.Fatalf("unexpected search result: %v", productIDs(items))
	}

	items, total, err = repo.List(ProductListFilter{Search: "100%_"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || items[0].ID != "p-4" {
		t.Fatalf("wildcards should be literal: %v", productIDs(items))
	}

	items, total, err = repo.List(ProductListFilter{OnlyActive: true, Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("page failed: %v", err)
	}
	if total != 3 || len(items) != 1 || items[0].ID != "p-1" {
		t.Fatalf("unexpected page 2: total=%d ids=%v", total, productIDs(items))
	}
}

func TestProductRepositoryGetByID(t *testing.T) {
	repo := NewProductRepository(setupRepositoryTestDB(t))
	seedProducts(t, repo)

	got, err := repo.GetByID("p-4", true)
	if err != nil || got != nil {
		t.Fatalf("inactive product should be hidden, got %+v err=%v", got, err)
	}
	got, err = repo.GetByID("p-1", true)
	if err != nil || got == nil {
		t.Fatalf("get failed: %v", err)
	}
	if !got.Price.Equal(models.NewMoney(99.99)) || len(got.Tags) != 2 {
		t.Fatalf("unexpected product: %+v", got)
	}
}
