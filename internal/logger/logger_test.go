package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestLogFilePathDefaultsUnderWorkdir(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWD) })
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	got, err := logFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve log path failed: %v", err)
	}
	if filepath.Base(got) != defaultFilename {
		t.Fatalf("unexpected filename: %s", filepath.Base(got))
	}
	if filepath.Base(filepath.Dir(got)) != defaultDirName {
		t.Fatalf("unexpected dir: %s", filepath.Dir(got))
	}
}

func TestReleaseModeWritesJSONFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir, Filename: "api.log"})
	log.Sugar().Warnw("cart_persist_failed", "key", "cart")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "api.log"))
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	if !strings.Contains(string(content), `"message":"cart_persist_failed"`) {
		t.Fatalf("unexpected log content: %s", content)
	}
}

func TestDebugModeSkipsFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("debug", Options{Dir: tmpDir, Filename: "debug.log"})
	log.Info("debug-only")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create a log file")
	}
}

func TestParseLevel(t *testing.T) {
	if got := parseLevel("", true).Level(); got != zap.DebugLevel {
		t.Fatalf("debug default level = %v", got)
	}
	if got := parseLevel("WARN", false).Level(); got != zap.WarnLevel {
		t.Fatalf("explicit level = %v", got)
	}
	if got := parseLevel("bogus", false).Level(); got != zap.InfoLevel {
		t.Fatalf("invalid level should fall back to info, got %v", got)
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatalf("OrNop(nil) must not be nil")
	}
}
