package repository

import (
	"fmt"
	"testing"

	"github.com/dujiao-next/storefront/internal/models"

	"gorm.io/gorm"
)

func TestFindPageClampsPage(t *testing.T) {
	db := setupRepositoryTestDB(t)
	for i := 1; i <= 5; i++ {
		n := &models.Notification{ID: fmt.Sprintf("n%d", i), UserID: 1, Type: models.NotificationTypeInfo, Title: "hello"}
		if err := db.Create(n).Error; err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	forUser := func(userID uint) *gorm.DB {
		return db.Model(&models.Notification{}).Where("user_id = ?", userID)
	}

	items, total, err := findPage[models.Notification](forUser(1), 0, 2, "id ASC")
	if err != nil || total != 5 || len(items) != 2 || items[0].ID != "n1" {
		t.Fatalf("page 0: items=%+v total=%d err=%v", items, total, err)
	}
	items, _, _ = findPage[models.Notification](forUser(1), 3, 2, "id ASC")
	if len(items) != 1 || items[0].ID != "n5" {
		t.Fatalf("last page: %+v", items)
	}
	items, _, _ = findPage[models.Notification](forUser(1), 1, 0, "id ASC")
	if len(items) != 5 {
		t.Fatalf("zero page size should return all, got %d", len(items))
	}

	empty, total, err := findPage[models.Notification](forUser(99), 1, 10, "id ASC")
	if err != nil || total != 0 || empty == nil {
		t.Fatalf("empty page should be non-nil: %v %d %v", empty, total, err)
	}
}
