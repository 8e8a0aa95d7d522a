// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"scribe/internal/config"
	"scribe/internal/queue"
)

// NewConfig returns a config rooted in a per-test temporary directory with all
// managed directories created.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()

	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.InboxDir = filepath.Join(root, "inbox")
	cfg.Paths.ProcessedDir = filepath.Join(root, "processed")
	cfg.Paths.TranscriptsDir = filepath.Join(root, "transcripts")
	cfg.Paths.StagingDir = filepath.Join(root, "staging")
	cfg.Paths.LogDir = filepath.Join(root, "logs")
	cfg.Deploy.OutputDir = filepath.Join(root, "deploy")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// MustOpenStore opens a queue store against the test config and registers
// cleanup for closing it.
func MustOpenStore(t *testing.T, cfg *config.Config) *queue.Store {
	t.Helper()

	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("open queue store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close queue store: %v", err)
		}
	})
	return store
}

// WriteFile writes content to path, creating parent directories as needed.
func WriteFile(t *testing.T, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WithStubbedBinaries creates executable stub scripts for the named binaries in
// a temporary directory and prepends it to PATH for the duration of the test.
// The script body receives "$@" via sh, so stubs can inspect arguments.
func WithStubbedBinaries(t *testing.T, stubs map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, body := range stubs {
		script := "#!/bin/sh\n" + body + "\n"
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return dir
}
