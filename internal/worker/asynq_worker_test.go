package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/provider"
	"github.com/dujiao-next/storefront/internal/queue"
	"github.com/dujiao-next/storefront/internal/repository"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupWorkerTest(t *testing.T) (*Consumer, *service.NotificationService) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	notifications := service.NewNotificationService(repository.NewNotificationRepository(db), nil)
	client, _ := queue.NewClient(nil)
	container := &provider.Container{
		ReviewAnalytics: service.NewReviewAnalytics(true, client, notifications, nil),
	}
	return NewConsumer(container), notifications
}

func TestHandleReviewSubmittedNotifiesAuthor(t *testing.T) {
	consumer, notifications := setupWorkerTest(t)
	task, err := queue.NewReviewSubmittedTask(queue.ReviewSubmittedPayload{ProductID: "p-1", Rating: 5, UserID: 4})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := consumer.handleReviewSubmitted(context.Background(), task); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	page, err := notifications.List(4, 1, 10, false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Title != "Review published" {
		t.Fatalf("unexpected notifications: %+v", page.Items)
	}
}

func TestHandleReviewTasksSkipInvalidPayload(t *testing.T) {
	consumer, _ := setupWorkerTest(t)
	if err := consumer.handleReviewSubmitted(context.Background(), asynq.NewTask(queue.TaskReviewSubmitted, []byte(`{"product_id":"  "}`))); err != nil {
		t.Fatalf("blank product should be skipped: %v", err)
	}
	if err := consumer.handleReviewViewed(context.Background(), asynq.NewTask(queue.TaskReviewViewed, []byte(`{"product_id":"p-1","count":0}`))); err != nil {
		t.Fatalf("zero count should be skipped: %v", err)
	}
	if err := consumer.handleReviewViewed(context.Background(), asynq.NewTask(queue.TaskReviewViewed, []byte(`not-json`))); err == nil {
		t.Fatalf("malformed payload should fail")
	}
}

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	if _, err := NewService(nil, &Consumer{}); !errors.Is(err, ErrQueueDisabled) {
		t.Fatalf("nil config err = %v", err)
	}
	if _, err := NewService(&config.QueueConfig{Enabled: true}, nil); !errors.Is(err, ErrNilConsumer) {
		t.Fatalf("nil consumer err = %v", err)
	}
	var svc *Service
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("stop on nil service should be noop: %v", err)
	}
}
