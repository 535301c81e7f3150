package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Database.Driver != "sqlite" {
		t.Fatalf("unexpected defaults: %+v", cfg.Server)
	}
	if cfg.UserJWT.RefreshTTL() != 720*time.Hour {
		t.Fatalf("refresh ttl = %v", cfg.UserJWT.RefreshTTL())
	}
	if len(cfg.Review.Denylist) == 0 {
		t.Fatalf("review denylist default missing")
	}
	if cfg.Storefront.Timeout() != 10*time.Second {
		t.Fatalf("storefront timeout = %v", cfg.Storefront.Timeout())
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	content := []byte("server:\n  port: \"9090\"\nreview:\n  denylist: [\"casino\"]\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o600); err != nil {
		t.Fatalf("write config failed: %v", err)
	}
	t.Setenv("SERVER_MODE", "release")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Server.Mode != "release" {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if len(cfg.Review.Denylist) != 1 || cfg.Review.Denylist[0] != "casino" {
		t.Fatalf("unexpected denylist: %v", cfg.Review.Denylist)
	}
	if cfg.Server.Addr() != "0.0.0.0:9090" {
		t.Fatalf("addr = %s", cfg.Server.Addr())
	}
}
