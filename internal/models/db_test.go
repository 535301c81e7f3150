package models

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestEnsureAdminUserCreatesOnce(t *testing.T) {
	db, err := Open("sqlite", "file::memory:?cache=shared&_test=admin", false)
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	if err := EnsureAdminUser(db, "Owner@Example.com", "s3cret-pass"); err != nil {
		t.Fatalf("ensure admin failed: %v", err)
	}
	if err := EnsureAdminUser(db, "owner@example.com", "other"); err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}

	var users []User
	if err := db.Find(&users).Error; err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if len(users) != 1 || !users[0].IsAdmin() {
		t.Fatalf("unexpected users: %+v", users)
	}
	if bcrypt.CompareHashAndPassword([]byte(users[0].PasswordHash), []byte("s3cret-pass")) != nil {
		t.Fatalf("password hash mismatch")
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("mysql", "", false); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}
