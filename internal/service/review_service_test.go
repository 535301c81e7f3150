package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"
	"github.com/dujiao-next/storefront/internal/review"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type recordingTracker struct {
	mu          sync.Mutex
	submissions []string
	views       []int
}

func (r *recordingTracker) TrackSubmission(_ context.Context, productID string, _ int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions = append(r.submissions, productID)
	return nil
}

func (r *recordingTracker) TrackView(_ context.Context, _ string, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, count)
	return nil
}

func newReviewServiceForTest(t *testing.T) (*ReviewService, *recordingTracker, *gorm.DB) {
	t.Helper()
	db := setupServiceTestDB(t)
	products := NewProductService(repository.NewProductRepository(db))
	if _, err := products.Create(CreateProductInput{ID: "p-1", Title: "Desk Lamp", Price: decimal.NewFromInt(30), StockQuantity: 3}); err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	tracker := &recordingTracker{}
	svc := NewReviewService(testConfig(), repository.NewReviewRepository(db), products, tracker, nil)
	return svc, tracker, db
}

func validReviewForm() review.FormData {
	return review.FormData{
		ProductID:   "p-1",
		Rating:      5,
		Comment:     "Bright and sturdy, works well",
		AuthorName:  "Nora",
		AuthorEmail: "nora@example.com",
	}
}

func TestReviewServiceSubmitAndList(t *testing.T) {
	svc, tracker, db := newReviewServiceForTest(t)
	ctx := context.Background()

	saved, fieldErrs, err := svc.Submit(ctx, validReviewForm(), 42)
	if err != nil {
		t.Fatalf("submit failed: %v (%v)", err, fieldErrs)
	}
	if saved.ID == "" || saved.Type != review.TypeText || saved.AuthorEmail != "" {
		t.Fatalf("unexpected saved review: %+v", saved)
	}

	var stored models.Review
	if err := db.Where("id = ?", saved.ID).First(&stored).Error; err != nil {
		t.Fatalf("load stored review failed: %v", err)
	}
	if stored.UserID == nil || *stored.UserID != 42 {
		t.Fatalf("review author not recorded: %+v", stored.UserID)
	}

	list := svc.ListByProduct(ctx, "p-1")
	if len(list) != 1 || list[0].ID != saved.ID {
		t.Fatalf("unexpected list: %+v", list)
	}
	if len(tracker.submissions) != 1 || len(tracker.views) != 1 || tracker.views[0] != 1 {
		t.Fatalf("unexpected tracking: %+v", tracker)
	}
}

func TestReviewServiceRejectsDuplicatesAndDenylist(t *testing.T) {
	svc, _, _ := newReviewServiceForTest(t)
	ctx := context.Background()
	if _, _, err := svc.Submit(ctx, validReviewForm(), 0); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	dup := validReviewForm()
	dup.AuthorEmail = "NORA@example.com"
	_, fieldErrs, err := svc.Submit(ctx, dup, 0)
	if !errors.Is(err, ErrReviewInvalid) {
		t.Fatalf("expected ErrReviewInvalid, got %v", err)
	}
	if msg, _ := fieldErrs.Get("general"); msg != "You have already reviewed this product" {
		t.Fatalf("unexpected duplicate message: %v", fieldErrs)
	}

	spam := validReviewForm()
	spam.AuthorEmail = "other@example.com"
	spam.Comment = "Buy now, totally not SPAM here"
	_, fieldErrs, err = svc.Submit(ctx, spam, 0)
	if !errors.Is(err, ErrReviewInvalid) {
		t.Fatalf("expected ErrReviewInvalid, got %v", err)
	}
	if msg, _ := fieldErrs.Get("comment"); msg != "Comment contains forbidden content" {
		t.Fatalf("unexpected denylist message: %v", fieldErrs)
	}
}

func TestReviewServiceUnknownProduct(t *testing.T) {
	svc, _, _ := newReviewServiceForTest(t)
	form := validReviewForm()
	form.ProductID = "missing"
	if _, _, err := svc.Submit(context.Background(), form, 0); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestReviewServiceUpdateAndDelete(t *testing.T) {
	svc, _, _ := newReviewServiceForTest(t)
	ctx := context.Background()
	saved, _, err := svc.Submit(ctx, validReviewForm(), 0)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	bad := 9
	if _, fieldErrs, err := svc.Update(ctx, saved.ID, review.Patch{Rating: &bad}); !errors.Is(err, ErrReviewInvalid) || len(fieldErrs) != 1 {
		t.Fatalf("expected rating validation error, got %v %v", err, fieldErrs)
	}
	rating := 3
	updated, _, err := svc.Update(ctx, saved.ID, review.Patch{Rating: &rating})
	if err != nil || updated.Rating != 3 || updated.Comment != saved.Comment {
		t.Fatalf("unexpected update: %+v err=%v", updated, err)
	}
	if _, _, err := svc.Update(ctx, "missing", review.Patch{Rating: &rating}); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}

	if err := svc.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(ctx, saved.ID); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound on second delete, got %v", err)
	}
}
