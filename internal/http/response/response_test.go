package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dujiao-next/storefront/internal/contracts"

	"github.com/gin-gonic/gin"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestSuccessWithPage(t *testing.T) {
	c, w := newTestContext()
	SuccessWithPage(c, []string{"a"}, contracts.NewPagination(1, 20, 41))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	var env contracts.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !env.Success || env.Pagination == nil || env.Pagination.TotalPages != 3 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestErrorCarriesStatusAndRequestID(t *testing.T) {
	c, w := newTestContext()
	c.Set("request_id", "req-1")
	ErrorWithData(c, CodeUnprocessableEntity, "Rating is required", map[string]string{"rating": "Rating is required"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Success || body.RequestID != "req-1" || len(body.Errors) != 1 || body.Message != "Rating is required" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestAppErrorRespond(t *testing.T) {
	c, w := newTestContext()
	appErr := ValidationError("Rating is required", []string{"Rating is required", "Comment is too short"}, map[string]string{"rating": "Rating is required"})
	wrapped := fmt.Errorf("submit: %w", appErr)

	got, ok := AsAppError(wrapped)
	if !ok || got.Code != CodeUnprocessableEntity {
		t.Fatalf("expected validation app error, got %+v", got)
	}
	got.Respond(c)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	var env contracts.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if env.Success || len(env.Errors) != 2 || env.Message != "Rating is required" {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	if _, ok := AsAppError(errors.New("plain")); ok {
		t.Fatalf("plain error should not be an app error")
	}
}
