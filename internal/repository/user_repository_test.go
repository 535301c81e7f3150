package repository

import (
	"testing"
	"time"

	"github.com/dujiao-next/storefront/internal/models"
)

func TestUserRepositoryRevokeTokens(t *testing.T) {
	repo := NewUserRepository(setupRepositoryTestDB(t))
	user := &models.User{Email: " Jane@Example.com ", PasswordHash: "x", Role: models.RoleUser, Status: models.UserStatusActive}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	got, err := repo.GetByEmail("JANE@example.com")
	if err != nil || got == nil || got.ID != user.ID {
		t.Fatalf("lookup by email failed: %+v err=%v", got, err)
	}

	at := time.Now()
	version, err := repo.RevokeTokens(user.ID, at)
	if err != nil || version != 1 {
		t.Fatalf("revoke version=%d err=%v", version, err)
	}
	got, _ = repo.GetByID(user.ID)
	if got.TokenVersion != 1 || got.TokenInvalidBefore == nil {
		t.Fatalf("unexpected user after revoke: %+v", got)
	}
	if _, err := repo.RevokeTokens(9999, at); err == nil {
		t.Fatalf("revoking unknown user should fail")
	}
}
