package review

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type failingBackend struct {
	Backend
}

func (failingBackend) Create(context.Context, Review) (Review, error) {
	return Review{}, errors.New("backend offline")
}

func (failingBackend) GetByProductID(context.Context, string) ([]Review, error) {
	return nil, errors.New("backend offline")
}

type recordingTracker struct {
	submissions []int
	views       []int
	err         error
}

func (r *recordingTracker) TrackSubmission(_ context.Context, _ string, rating int) error {
	r.submissions = append(r.submissions, rating)
	return r.err
}

func (r *recordingTracker) TrackView(_ context.Context, _ string, count int) error {
	r.views = append(r.views, count)
	return r.err
}

func newTestService(b Backend) *BaseService {
	return NewService(b, DefaultValidators(nil, nil), zap.NewNop().Sugar())
}

func TestSubmitThenFetchIncludesReview(t *testing.T) {
	svc := newTestService(NewMemoryBackend(SampleReviews()...))
	form := validForm()

	var phases []Phase
	ctx := WithSubmitTrace(context.Background(), &SubmitTrace{
		PhaseChanged: func(p Phase) { phases = append(phases, p) },
	})
	result := svc.SubmitReview(ctx, form)
	if !result.Success || result.Review == nil || result.Review.ID == "" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(phases) != 3 || phases[0] != PhaseValidating || phases[1] != PhaseSubmitting || phases[2] != PhaseSuccess {
		t.Fatalf("unexpected phases: %v", phases)
	}

	reviews := svc.GetProductReviews(context.Background(), form.ProductID)
	found := false
	for _, r := range reviews {
		if r.ID == result.Review.ID {
			found = true
		}
	}
	if !found || len(reviews) != 2 {
		t.Fatalf("submitted review missing from %+v", reviews)
	}
}

func TestSubmitInvalidReturnsFirstError(t *testing.T) {
	svc := newTestService(NewMemoryBackend())
	form := validForm()
	form.Rating = 0
	form.Comment = "tiny"

	var phases []Phase
	ctx := WithSubmitTrace(context.Background(), &SubmitTrace{
		PhaseChanged: func(p Phase) { phases = append(phases, p) },
	})
	result := svc.SubmitReview(ctx, form)
	if result.Success || result.Error != "Rating must be between 1 and 5" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if phases[len(phases)-1] != PhaseIdle {
		t.Fatalf("invalid submission should end idle, got %v", phases)
	}
}

func TestSubmitBackendFailure(t *testing.T) {
	result := newTestService(failingBackend{}).SubmitReview(context.Background(), validForm())
	if result.Success || result.Error != "backend offline" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestGetProductReviewsSwallowsErrors(t *testing.T) {
	reviews := newTestService(failingBackend{}).GetProductReviews(context.Background(), "p1")
	if reviews == nil || len(reviews) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", reviews)
	}
}

func TestTrackingServiceKeepsResults(t *testing.T) {
	tracker := &recordingTracker{err: errors.New("analytics down")}
	svc := NewTrackingService(newTestService(NewMemoryBackend()), tracker, nil)

	ok := svc.SubmitReview(context.Background(), validForm())
	bad := validForm()
	bad.Rating = 9
	rejected := svc.SubmitReview(context.Background(), bad)
	reviews := svc.GetProductReviews(context.Background(), "product-1")

	if !ok.Success || rejected.Success {
		t.Fatalf("decorator changed results: %+v %+v", ok, rejected)
	}
	if len(tracker.submissions) != 1 || tracker.submissions[0] != 5 {
		t.Fatalf("only successful submissions are tracked: %v", tracker.submissions)
	}
	if len(tracker.views) != 1 || tracker.views[0] != len(reviews) {
		t.Fatalf("unexpected views: %v", tracker.views)
	}
}

func TestMemoryBackendUpdateDelete(t *testing.T) {
	b := NewMemoryBackend(SampleReviews()...)
	ctx := context.Background()
	rating := 3
	updated, err := b.Update(ctx, "1", Patch{Rating: &rating})
	if err != nil || updated.Rating != 3 || updated.AuthorName != "Ivan Petrov" {
		t.Fatalf("unexpected update: %+v %v", updated, err)
	}
	if _, err := b.Update(ctx, "missing", Patch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := b.Delete(ctx, "1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got, _ := b.GetByProductID(ctx, "product-1"); len(got) != 0 {
		t.Fatalf("review should be deleted")
	}
}

func TestDisplayText(t *testing.T) {
	if DisplayText(Review{Type: TypeVideo, VideoURL: "https://v/1"}) != "Video review: https://v/1" {
		t.Fatalf("unexpected video display text")
	}
	if DisplayText(Review{Comment: "nice"}) != "nice" {
		t.Fatalf("unexpected text display text")
	}
}
