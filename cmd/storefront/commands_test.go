package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dujiao-next/storefront/internal/config"
)

func newTestApp(t *testing.T, apiURL string) (*clientApp, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Storefront.APIBaseURL = apiURL
	cfg.Storefront.StorageDriver = "memory"
	cfg.Storefront.ReviewBackend = "mock"
	out := &bytes.Buffer{}
	a, err := newClientApp(context.Background(), cfg, out)
	if err != nil {
		t.Fatalf("new client app failed: %v", err)
	}
	t.Cleanup(a.Close)
	return a, out
}

func productServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/kb" {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Product not found"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"id":      "kb",
				"title":   "Keyboard",
				"price":   "100.00",
				"inStock": true,
				"options": map[string]interface{}{
					"switch": []map[string]interface{}{
						{"id": "linear", "name": "Linear", "price": "0"},
						{"id": "tactile", "name": "Tactile", "price": "5"},
					},
				},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCartAddMergesAndPrintsSummary(t *testing.T) {
	srv := productServer(t)
	a, out := newTestApp(t, srv.URL)
	ctx := context.Background()

	args := []string{"cart", "add", "--product", "kb", "--quantity", "2", "--option", "switch=tactile"}
	if err := a.Run(ctx, args); err != nil {
		t.Fatalf("cart add failed: %v", err)
	}
	if err := a.Run(ctx, args); err != nil {
		t.Fatalf("second cart add failed: %v", err)
	}

	items := a.cart.Items()
	if len(items) != 1 {
		t.Fatalf("expected merged single line, got %d", len(items))
	}
	if items[0].Quantity != 4 || items[0].Key() != "kb_switch:tactile" {
		t.Fatalf("unexpected line: %+v", items[0])
	}
	if got := a.cart.Summary().TotalPrice.String(); got != "420.00" {
		t.Fatalf("total = %s, want 420.00", got)
	}
	if !strings.Contains(out.String(), "kb_switch:tactile") {
		t.Fatalf("expected key in output, got %q", out.String())
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	srv := productServer(t)
	a, _ := newTestApp(t, srv.URL)

	err := a.Run(context.Background(), []string{"cart", "add", "--product", "missing"})
	if err == nil || !strings.Contains(err.Error(), "Product not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
	if len(a.cart.Items()) != 0 {
		t.Fatalf("cart should stay empty")
	}
}

func TestCartUpdateRemoveClear(t *testing.T) {
	srv := productServer(t)
	a, out := newTestApp(t, srv.URL)
	ctx := context.Background()

	if err := a.Run(ctx, []string{"cart", "add", "--product", "kb"}); err != nil {
		t.Fatalf("cart add failed: %v", err)
	}
	if err := a.Run(ctx, []string{"cart", "update", "kb_no_options", "3"}); err != nil {
		t.Fatalf("cart update failed: %v", err)
	}
	if got := a.cart.Items()[0].Quantity; got != 3 {
		t.Fatalf("quantity = %d, want 3", got)
	}
	if err := a.Run(ctx, []string{"cart", "update", "kb_no_options", "abc"}); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if err := a.Run(ctx, []string{"cart", "clear"}); err != nil {
		t.Fatalf("cart clear failed: %v", err)
	}
	if !strings.Contains(out.String(), "cart is empty") {
		t.Fatalf("expected empty cart output, got %q", out.String())
	}
}

func TestReviewsWithMockBackend(t *testing.T) {
	a, out := newTestApp(t, "http://127.0.0.1:0")
	ctx := context.Background()

	if err := a.Run(ctx, []string{"reviews", "list", "product-1"}); err != nil {
		t.Fatalf("reviews list failed: %v", err)
	}
	if !strings.Contains(out.String(), "1 reviews, average 5.0") {
		t.Fatalf("unexpected list output: %q", out.String())
	}

	err := a.Run(ctx, []string{"reviews", "submit", "--product", "product-1", "--rating", "4",
		"--comment", "short", "--name", "Ann", "--email", "ann@example.com"})
	if err == nil {
		t.Fatalf("expected validation error for short comment")
	}

	err = a.Run(ctx, []string{"reviews", "submit", "--product", "product-1", "--rating", "4",
		"--comment", "Solid build and quiet switches.", "--name", "Ann", "--email", "ann@example.com"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if got := a.reviews.ReviewCount().Get(); got != 2 {
		t.Fatalf("review count = %d, want 2", got)
	}
}

func TestWhoamiAndUsage(t *testing.T) {
	a, out := newTestApp(t, "http://127.0.0.1:0")
	ctx := context.Background()

	if err := a.Run(ctx, []string{"whoami"}); err != nil {
		t.Fatalf("whoami failed: %v", err)
	}
	if !strings.Contains(out.String(), "not logged in") {
		t.Fatalf("unexpected whoami output: %q", out.String())
	}
	if err := a.Run(ctx, nil); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if err := a.Run(ctx, []string{"bogus"}); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error for unknown command, got %v", err)
	}
	if err := a.Run(ctx, []string{"login", "--email", "a@b.co"}); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error for missing password, got %v", err)
	}
}

func TestUnsupportedDrivers(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storefront.StorageDriver = "floppy"
	if _, err := newClientApp(context.Background(), cfg, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unsupported storage driver")
	}
	cfg.Storefront.StorageDriver = "memory"
	cfg.Storefront.ReviewBackend = "carrier-pigeon"
	if _, err := newClientApp(context.Background(), cfg, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unsupported review backend")
	}
}
