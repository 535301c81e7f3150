package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type stubService struct {
	name     string
	startErr error
	block    bool
	stopped  atomic.Bool
	done     chan struct{}
}

func newStubService(name string, block bool, startErr error) *stubService {
	return &stubService{name: name, block: block, startErr: startErr, done: make(chan struct{})}
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Start(_ context.Context) error {
	if s.block {
		<-s.done
	}
	return s.startErr
}

func (s *stubService) Stop(_ context.Context) error {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.done)
	}
	return nil
}

func TestRunnerStopsOthersWhenServiceFails(t *testing.T) {
	failing := newStubService("failing", false, errors.New("boom"))
	blocking := newStubService("blocking", true, nil)
	runner := NewRunner(failing, blocking)

	err := runner.Run(context.Background(), time.Second, nil)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom error, got %v", err)
	}
	if !blocking.stopped.Load() {
		t.Fatalf("expected blocking service to be stopped")
	}
}

func TestRunnerStopsOnContextCancel(t *testing.T) {
	blocking := newStubService("blocking", true, nil)
	runner := NewRunner(blocking)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := runner.Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
	if !blocking.stopped.Load() {
		t.Fatalf("expected service to be stopped")
	}
}

func TestRunnerWithoutServices(t *testing.T) {
	if err := NewRunner().Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("expected error for empty runner")
	}
}

func TestBuildRunnerRejectsNilInputs(t *testing.T) {
	if _, err := BuildRunner(nil, nil, ModeAll); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]string{"": ModeAll, " API ": ModeAPI, "worker": ModeWorker}
	for raw, want := range cases {
		got, err := ParseMode(raw)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := ParseMode("cron"); err == nil {
		t.Fatalf("expected unknown mode error")
	}
}

func TestNormalizeOptionsDefaults(t *testing.T) {
	opts, err := normalizeOptions(Options{})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if opts.Mode != ModeAll || opts.ShutdownTimeout != defaultShutdownTimeout || opts.Logger == nil || len(opts.Signals) != 2 {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
}
