package ipc_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"scribe/internal/daemon"
	"scribe/internal/ipc"
	"scribe/internal/logging"
	"scribe/internal/queue"
	"scribe/internal/stage"
	"scribe/internal/testsupport"
	"scribe/internal/workflow"
)

type noopStage struct{}

func (noopStage) Prepare(context.Context, *queue.Item) error { return nil }
func (noopStage) Execute(context.Context, *queue.Item) error { return nil }
func (noopStage) HealthCheck(context.Context) stage.Health {
	return stage.Healthy("noop")
}

func TestIPCServerClient(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	logger := logging.NewNop()
	mgr := workflow.NewManager(cfg, store, logger)
	mgr.ConfigureStages(workflow.StageSet{
		Inspector:   noopStage{},
		Transcriber: noopStage{},
		Organizer:   noopStage{},
	})
	d, err := daemon.New(cfg, store, logger, mgr, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() {
		d.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	socket := filepath.Join(cfg.Paths.LogDir, "scribe.sock")
	srv, err := ipc.NewServer(ctx, socket, d, logger)
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping IPC server test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()
	t.Cleanup(func() {
		srv.Close()
	})

	time.Sleep(50 * time.Millisecond)

	client, err := ipc.Dial(socket)
	if err != nil {
		t.Fatalf("ipc.Dial: %v", err)
	}
	t.Cleanup(func() {
		client.Close()
	})

	startResp, err := client.Start()
	if err != nil {
		t.Fatalf("Start RPC failed: %v", err)
	}
	if !startResp.Started {
		t.Fatalf("expected Started=true, message=%s", startResp.Message)
	}

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status RPC failed: %v", err)
	}
	if !status.Running {
		t.Fatal("expected daemon to be running")
	}

	stopResp, err := client.Stop()
	if err != nil {
		t.Fatalf("Stop RPC failed: %v", err)
	}
	if !stopResp.Stopped {
		t.Fatal("expected stop response to be true")
	}

	itemA, err := store.NewFile(ctx, "/inbox/a.mp3")
	if err != nil {
		t.Fatalf("NewFile a: %v", err)
	}
	itemB, err := store.NewFile(ctx, "/inbox/b.mp3")
	if err != nil {
		t.Fatalf("NewFile b: %v", err)
	}
	itemB.Status = queue.StatusFailed
	if err := store.Update(ctx, itemB); err != nil {
		t.Fatalf("Update itemB: %v", err)
	}
	itemC, err := store.NewFile(ctx, "/inbox/c.mp3")
	if err != nil {
		t.Fatalf("NewFile c: %v", err)
	}
	itemC.Status = queue.StatusTranscribing
	if err := store.Update(ctx, itemC); err != nil {
		t.Fatalf("Update itemC: %v", err)
	}

	manualPath := filepath.Join(cfg.Paths.InboxDir, "Manual Interview.mp3")
	if err := os.WriteFile(manualPath, []byte("data"), 0o644); err != nil {
		t.Fatalf("write manual file: %v", err)
	}
	addResp, err := client.QueueAdd(manualPath)
	if err != nil {
		t.Fatalf("QueueAdd failed: %v", err)
	}
	if addResp.Item.Status != string(queue.StatusPending) {
		t.Fatalf("expected manual item pending, got %s", addResp.Item.Status)
	}
	if addResp.Item.SourcePath == "" {
		t.Fatal("expected manual item to include source path")
	}

	listResp, err := client.QueueList(nil)
	if err != nil {
		t.Fatalf("QueueList failed: %v", err)
	}
	if len(listResp.Items) != 4 {
		t.Fatalf("expected 4 queue items, got %d", len(listResp.Items))
	}

	failedResp, err := client.QueueList([]string{string(queue.StatusFailed)})
	if err != nil {
		t.Fatalf("QueueList failed filter: %v", err)
	}
	if len(failedResp.Items) != 1 || failedResp.Items[0].ID != itemB.ID {
		t.Fatalf("expected failed item %d", itemB.ID)
	}

	descResp, err := client.QueueDescribe(addResp.Item.ID)
	if err != nil {
		t.Fatalf("QueueDescribe failed: %v", err)
	}
	if descResp.Item.ID != addResp.Item.ID {
		t.Fatalf("unexpected describe response: %#v", descResp.Item)
	}

	resetResp, err := client.QueueReset()
	if err != nil {
		t.Fatalf("QueueReset failed: %v", err)
	}
	if resetResp.Updated != 1 {
		t.Fatalf("expected 1 item reset, got %d", resetResp.Updated)
	}
	updatedC, err := store.GetByID(ctx, itemC.ID)
	if err != nil {
		t.Fatalf("GetByID itemC: %v", err)
	}
	if updatedC.Status != queue.StatusInspected {
		t.Fatalf("expected itemC to resume before transcription after reset, got %s", updatedC.Status)
	}

	clearFailedResp, err := client.QueueClearFailed()
	if err != nil {
		t.Fatalf("QueueClearFailed failed: %v", err)
	}
	if clearFailedResp.Removed != 1 {
		t.Fatalf("expected 1 failed item removed, got %d", clearFailedResp.Removed)
	}

	itemA.Status = queue.StatusCompleted
	if err := store.Update(ctx, itemA); err != nil {
		t.Fatalf("Update itemA: %v", err)
	}
	clearCompletedResp, err := client.QueueClearCompleted()
	if err != nil {
		t.Fatalf("QueueClearCompleted failed: %v", err)
	}
	if clearCompletedResp.Removed != 1 {
		t.Fatalf("expected 1 completed item removed, got %d", clearCompletedResp.Removed)
	}

	retryResp, err := client.QueueRetry(nil)
	if err != nil {
		t.Fatalf("QueueRetry failed: %v", err)
	}
	if retryResp.Updated != 0 {
		t.Fatalf("expected 0 retried items, got %d", retryResp.Updated)
	}

	healthResp, err := client.QueueHealth()
	if err != nil {
		t.Fatalf("QueueHealth failed: %v", err)
	}
	if healthResp.Total != 2 || healthResp.Failed != 0 {
		t.Fatalf("unexpected health response: %#v", healthResp)
	}

	removeResp, err := client.QueueRemove([]int64{addResp.Item.ID})
	if err != nil {
		t.Fatalf("QueueRemove failed: %v", err)
	}
	if removeResp.Removed != 1 {
		t.Fatalf("expected 1 item removed, got %d", removeResp.Removed)
	}

	notifyResp, err := client.TestNotification()
	if err != nil {
		t.Fatalf("TestNotification failed: %v", err)
	}
	if notifyResp == nil || notifyResp.Message == "" {
		t.Fatalf("expected notification message, got %#v", notifyResp)
	}

	clearResp, err := client.QueueClear()
	if err != nil {
		t.Fatalf("QueueClear failed: %v", err)
	}
	if clearResp.Removed != 1 {
		t.Fatalf("expected 1 item cleared, got %d", clearResp.Removed)
	}

	status2, err := client.Status()
	if err != nil {
		t.Fatalf("Status RPC failed: %v", err)
	}
	if status2.Running {
		t.Fatal("expected daemon to be stopped")
	}
}
