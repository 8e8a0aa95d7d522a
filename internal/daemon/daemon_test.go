package daemon_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"scribe/internal/daemon"
	"scribe/internal/logging"
	"scribe/internal/queue"
	"scribe/internal/stage"
	"scribe/internal/testsupport"
	"scribe/internal/watcher"
	"scribe/internal/workflow"
)

type noopStage struct{}

func (noopStage) Prepare(context.Context, *queue.Item) error { return nil }
func (noopStage) Execute(context.Context, *queue.Item) error { return nil }
func (noopStage) HealthCheck(context.Context) stage.Health {
	return stage.Healthy("noop")
}

func newTestDaemon(t *testing.T) *daemon.Daemon {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	logger := logging.NewNop()
	mgr := workflow.NewManager(cfg, store, logger)
	mgr.ConfigureStages(workflow.StageSet{
		Inspector:   noopStage{},
		Transcriber: noopStage{},
		Organizer:   noopStage{},
	})
	scanner := watcher.NewScanner(cfg, store, logger)
	d, err := daemon.New(cfg, store, logger, mgr, scanner)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() {
		d.Close()
	})
	return d
}

func TestDaemonStartStop(t *testing.T) {
	d := newTestDaemon(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	status := d.Status(ctx)
	if !status.Running {
		t.Fatal("expected daemon to report running")
	}
	if status.LockFilePath == "" {
		t.Fatal("expected lock file path")
	}

	if err := d.Start(ctx); err == nil {
		t.Fatal("expected second start to fail")
	}

	d.Stop()
	time.Sleep(50 * time.Millisecond)
	status = d.Status(ctx)
	if status.Running {
		t.Fatal("expected daemon to be stopped")
	}
}

func TestDaemonAddFileValidation(t *testing.T) {
	d := newTestDaemon(t)
	ctx := context.Background()

	if _, err := d.AddFile(ctx, "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := d.AddFile(ctx, filepath.Join(t.TempDir(), "missing.mp3")); err == nil {
		t.Fatal("expected error for missing file")
	}

	dir := t.TempDir()
	text := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(text, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := d.AddFile(ctx, text); err == nil {
		t.Fatal("expected error for unsupported extension")
	}

	audio := filepath.Join(dir, "interview.mp3")
	if err := os.WriteFile(audio, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	item, err := d.AddFile(ctx, audio)
	if err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if item.Status != queue.StatusPending {
		t.Fatalf("expected pending status, got %s", item.Status)
	}
}
