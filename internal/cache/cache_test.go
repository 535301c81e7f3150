package cache

import (
	"context"
	"testing"
	"time"

	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/models"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if Enabled() {
		t.Fatalf("cache should be disabled")
	}
	ctx := context.Background()
	var dest map[string]string
	hit, err := GetJSON(ctx, "any", &dest)
	if err != nil || hit {
		t.Fatalf("expected miss without error, got hit=%v err=%v", hit, err)
	}
	if err := SetJSON(ctx, "any", "v", 0); err != nil {
		t.Fatalf("set should be noop: %v", err)
	}
	if err := RecordReviewSubmission(ctx, "p1", 5); err != nil {
		t.Fatalf("record should be noop: %v", err)
	}
	stats, hit, err := GetReviewStats(ctx, "p1")
	if err != nil || hit || stats.Submissions != 0 {
		t.Fatalf("unexpected stats: %+v hit=%v err=%v", stats, hit, err)
	}
}

func TestBuildKeyUsesPrefix(t *testing.T) {
	Use(nil, "shop")
	defer Use(nil, "")
	if got := BuildKey("auth:user:1"); got != "shop:auth:user:1" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := BuildKey("  "); got != "shop" {
		t.Fatalf("unexpected empty key: %s", got)
	}
}

func TestBuildUserAuthState(t *testing.T) {
	if BuildUserAuthState(nil) != nil {
		t.Fatalf("nil user should give nil state")
	}
	state := BuildUserAuthState(&models.User{ID: 7, Role: models.RoleAdmin, Status: models.UserStatusActive, TokenVersion: 3})
	if state.UserID != 7 || state.TokenVersion != 3 || state.Role != models.RoleAdmin || !state.Active || state.InvalidBefore != 0 {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestUserAuthStateCheck(t *testing.T) {
	cutoff := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	state := BuildUserAuthState(&models.User{ID: 1, Status: models.UserStatusActive, TokenVersion: 2, TokenInvalidBefore: &cutoff})

	cases := []struct {
		name     string
		version  uint64
		issuedAt time.Time
		want     TokenVerdict
	}{
		{"fresh token", 2, cutoff.Add(time.Minute), TokenAccepted},
		{"issued at cutoff", 2, cutoff, TokenAccepted},
		{"issued before cutoff", 2, cutoff.Add(-time.Second), TokenRevoked},
		{"missing issued at", 2, time.Time{}, TokenRevoked},
		{"stale version", 1, cutoff.Add(time.Minute), TokenRevoked},
	}
	for _, tc := range cases {
		if got := state.Check(tc.version, tc.issuedAt); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}

	disabled := BuildUserAuthState(&models.User{ID: 2, Status: models.UserStatusDisabled})
	if got := disabled.Check(0, time.Now()); got != TokenUserDisabled {
		t.Fatalf("disabled user verdict = %v", got)
	}
}

func TestReviewStatsAverage(t *testing.T) {
	if (ReviewStats{}).Average() != 0 {
		t.Fatalf("empty average should be 0")
	}
	if got := (ReviewStats{Submissions: 4, RatingSum: 18}).Average(); got != 4.5 {
		t.Fatalf("average = %v", got)
	}
}
