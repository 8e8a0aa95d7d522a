package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/queue"
	"scribe/internal/testsupport"
)

func TestCLIQueueCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	ctx := context.Background()

	pendingPath := filepath.Join(env.cfg.Paths.InboxDir, "Alpha Interview.mp3")
	if _, err := env.store.NewFile(ctx, pendingPath); err != nil {
		t.Fatalf("NewFile pending: %v", err)
	}

	failedPath := filepath.Join(env.cfg.Paths.InboxDir, "Beta Interview.mp3")
	failed, err := env.store.NewFile(ctx, failedPath)
	if err != nil {
		t.Fatalf("NewFile failed item: %v", err)
	}
	failed.Status = queue.StatusFailed
	failed.ErrorMessage = "ffprobe exited 1"
	if err := env.store.Update(ctx, failed); err != nil {
		t.Fatalf("update failed item: %v", err)
	}

	out, _, err := runCLI(t, []string{"queue", "status"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("queue status: %v", err)
	}
	if !strings.Contains(out, "Pending") || !strings.Contains(out, "Failed") {
		t.Fatalf("unexpected queue status output: %q", out)
	}

	out, _, err = runCLI(t, []string{"queue", "list"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	if !strings.Contains(out, "Alpha Interview") || !strings.Contains(out, "Beta Interview") {
		t.Fatalf("queue list missing items: %q", out)
	}

	out, _, err = runCLI(t, []string{"queue", "list", "--status", "failed"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("queue list --status failed: %v", err)
	}
	if strings.Contains(out, "Alpha Interview") || !strings.Contains(out, "Beta Interview") {
		t.Fatalf("status filter not applied: %q", out)
	}

	out, _, err = runCLI(t, []string{"queue", "describe", fmt.Sprintf("%d", failed.ID)}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("queue describe: %v", err)
	}
	if !strings.Contains(out, "Beta Interview") || !strings.Contains(out, "ffprobe exited 1") {
		t.Fatalf("describe output incomplete: %q", out)
	}

	out, _, err = runCLI(t, []string{"queue", "retry"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("queue retry: %v", err)
	}
	if !strings.Contains(out, "Retried 1 failed items") {
		t.Fatalf("unexpected retry output: %q", out)
	}
	retried, err := env.store.GetByID(ctx, failed.ID)
	if err != nil {
		t.Fatalf("GetByID after retry: %v", err)
	}
	if retried.Status != queue.StatusPending {
		t.Fatalf("expected retried item pending, got %s", retried.Status)
	}

	out, _, err = runCLI(t, []string{"queue", "health"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("queue health: %v", err)
	}
	if !strings.Contains(out, "Total: 2") || !strings.Contains(out, "Pending: 2") {
		t.Fatalf("unexpected health output: %q", out)
	}

	out, _, err = runCLI(t, []string{"queue", "remove", fmt.Sprintf("%d", failed.ID)}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("queue remove: %v", err)
	}
	if !strings.Contains(out, fmt.Sprintf("Item %d removed", failed.ID)) {
		t.Fatalf("unexpected remove output: %q", out)
	}

	out, _, err = runCLI(t, []string{"queue", "remove", "999"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("queue remove missing: %v", err)
	}
	if !strings.Contains(out, "Item 999 not found") {
		t.Fatalf("unexpected remove output for missing item: %q", out)
	}

	out, _, err = runCLI(t, []string{"queue", "clear"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("queue clear: %v", err)
	}
	if !strings.Contains(out, "Cleared 1 queue items") {
		t.Fatalf("unexpected clear output: %q", out)
	}
}

func TestCLIAddCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	audioPath := testsupport.WriteFile(t, filepath.Join(env.cfg.Paths.InboxDir, "Town Hall.mp3"), "fake audio")

	out, _, err := runCLI(t, []string{"add", audioPath}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, "Queued audio file as item #") {
		t.Fatalf("unexpected add output: %q", out)
	}

	items, err := env.store.List(context.Background())
	if err != nil {
		t.Fatalf("list after add: %v", err)
	}
	if len(items) != 1 || items[0].SourcePath != audioPath {
		t.Fatalf("item not enqueued: %+v", items)
	}

	textPath := testsupport.WriteFile(t, filepath.Join(env.cfg.Paths.InboxDir, "notes.txt"), "not audio")
	if _, _, err := runCLI(t, []string{"add", textPath}, env.socketPath, env.configPath); err == nil {
		t.Fatal("expected error for unsupported file")
	}

	missing := filepath.Join(env.cfg.Paths.InboxDir, "missing.mp3")
	if _, _, err := runCLI(t, []string{"add", missing}, env.socketPath, env.configPath); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCLIRetryByIDValidatesStatus(t *testing.T) {
	env := setupCLITestEnv(t)
	ctx := context.Background()

	item, err := env.store.NewFile(ctx, filepath.Join(env.cfg.Paths.InboxDir, "Keynote.mp3"))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	out, _, err := runCLI(t, []string{"queue", "retry", fmt.Sprintf("%d", item.ID)}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("queue retry by id: %v", err)
	}
	if !strings.Contains(out, fmt.Sprintf("Item %d is not in failed state", item.ID)) {
		t.Fatalf("unexpected retry output: %q", out)
	}

	out, _, err = runCLI(t, []string{"queue", "retry", "424242"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("queue retry missing id: %v", err)
	}
	if !strings.Contains(out, "Item 424242 not found") {
		t.Fatalf("unexpected retry output for missing item: %q", out)
	}

	if _, _, err := runCLI(t, []string{"queue", "retry", "zero"}, env.socketPath, env.configPath); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}
