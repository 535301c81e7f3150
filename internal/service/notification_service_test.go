package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dujiao-next/storefront/internal/repository"
)

func TestRenderNotificationTemplate(t *testing.T) {
	got := renderNotificationTemplate("Thanks {{ name }}, {{rating}}/5 {{unknown}}", map[string]any{"name": "Ivy", "rating": 4})
	if got != "Thanks Ivy, 4/5 {{unknown}}" {
		t.Fatalf("unexpected render: %s", got)
	}
	if renderNotificationTemplate("plain", nil) != "plain" {
		t.Fatalf("plain text should be untouched")
	}
}

func TestNotificationServiceLifecycle(t *testing.T) {
	svc := NewNotificationService(repository.NewNotificationRepository(setupServiceTestDB(t)), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, NotificationInput{UserID: 5, Title: "Review for {{product}}", Message: "Rated {{rating}}", Variables: map[string]any{"product": "Lamp", "rating": 5}})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Title != "Review for Lamp" || created.Type != "info" || created.UserID != "5" {
		t.Fatalf("unexpected notification: %+v", created)
	}
	if _, err := svc.Create(ctx, NotificationInput{UserID: 5, Title: "Second"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	page, err := svc.List(5, 0, 0, false)
	if err != nil || page.Pagination.Total != 2 || page.Pagination.Limit != 20 {
		t.Fatalf("unexpected page: %+v err=%v", page.Pagination, err)
	}
	if _, err := svc.MarkRead(5, created.ID); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	if _, err := svc.MarkRead(6, created.ID); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound for other user, got %v", err)
	}
	unread, _ := svc.List(5, 1, 10, true)
	if unread.Pagination.Total != 1 {
		t.Fatalf("unread want 1 got %d", unread.Pagination.Total)
	}
	if err := svc.Delete(5, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(5, created.ID); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
}
