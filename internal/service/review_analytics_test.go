package service

import (
	"context"
	"testing"

	"github.com/dujiao-next/storefront/internal/queue"
	"github.com/dujiao-next/storefront/internal/repository"
)

func TestReviewAnalyticsNotifiesAuthorWithoutQueue(t *testing.T) {
	db := setupServiceTestDB(t)
	notifications := NewNotificationService(repository.NewNotificationRepository(db), nil)
	client, _ := queue.NewClient(nil)
	analytics := NewReviewAnalytics(true, client, notifications, nil)

	ctx := withReviewAuthor(context.Background(), 9)
	if err := analytics.TrackSubmission(ctx, "p-1", 4); err != nil {
		t.Fatalf("track submission failed: %v", err)
	}
	if err := analytics.TrackView(ctx, "p-1", 3); err != nil {
		t.Fatalf("track view failed: %v", err)
	}

	page, err := notifications.List(9, 1, 10, false)
	if err != nil {
		t.Fatalf("list notifications failed: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected one notification, got %d", len(page.Items))
	}
	n := page.Items[0]
	if n.Message != "Thanks! Your 4-star review is now live." || n.Type != "success" || n.UserID != "9" {
		t.Fatalf("unexpected notification: %+v", n)
	}
}

func TestReviewAnalyticsAnonymousAndDisabled(t *testing.T) {
	db := setupServiceTestDB(t)
	notifications := NewNotificationService(repository.NewNotificationRepository(db), nil)
	client, _ := queue.NewClient(nil)

	if err := NewReviewAnalytics(true, client, notifications, nil).TrackSubmission(context.Background(), "p-1", 5); err != nil {
		t.Fatalf("anonymous submission failed: %v", err)
	}
	if err := NewReviewAnalytics(false, client, notifications, nil).TrackSubmission(withReviewAuthor(context.Background(), 3), "p-1", 5); err != nil {
		t.Fatalf("disabled analytics should be noop: %v", err)
	}
	for _, userID := range []uint{0, 3} {
		page, err := notifications.List(userID, 1, 10, false)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(page.Items) != 0 {
			t.Fatalf("user %d should have no notifications, got %d", userID, len(page.Items))
		}
	}
}
