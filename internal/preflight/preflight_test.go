package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"scribe/internal/config"
)

func TestCheckDirectoryAccessOK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccessNotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccessNotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDiskSpace(t *testing.T) {
	dir := t.TempDir()
	result := CheckDiskSpace("free space", dir, 1)
	if !result.Passed {
		t.Fatalf("expected pass for tiny minimum, got: %s", result.Detail)
	}

	result = CheckDiskSpace("free space", filepath.Join(dir, "missing"), 1)
	if result.Passed {
		t.Fatal("expected failure for missing path")
	}
}

func TestCheckOpenAIMissingKey(t *testing.T) {
	result := CheckOpenAI(context.Background(), config.OpenAI{})
	if result.Passed {
		t.Fatal("expected failure for missing key")
	}
}

func TestCheckOpenAIReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	result := CheckOpenAI(context.Background(), config.OpenAI{APIKey: "good-key", BaseURL: srv.URL + "/v1"})
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}

	result = CheckOpenAI(context.Background(), config.OpenAI{APIKey: "bad-key", BaseURL: srv.URL + "/v1"})
	if result.Passed {
		t.Fatal("expected failure for rejected key")
	}
}

func TestRunAllNilConfig(t *testing.T) {
	results := RunAll(context.Background(), nil)
	if results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAllMinimalConfig(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.InboxDir = filepath.Join(base, "inbox")
	cfg.Paths.ProcessedDir = filepath.Join(base, "processed")
	cfg.Paths.TranscriptsDir = filepath.Join(base, "transcripts")
	cfg.Paths.StagingDir = filepath.Join(base, "staging")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	cfg.Whisper.Engine = config.EngineWhisper

	results := RunAll(context.Background(), &cfg)
	// Five directory checks plus the staging free-space check.
	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Name == "Staging free space" {
			continue
		}
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
}

func TestRunAllIncludesOpenAIWhenSelected(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.InboxDir = filepath.Join(base, "inbox")
	cfg.Paths.ProcessedDir = filepath.Join(base, "processed")
	cfg.Paths.TranscriptsDir = filepath.Join(base, "transcripts")
	cfg.Paths.StagingDir = filepath.Join(base, "staging")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	cfg.Whisper.Engine = config.EngineOpenAI
	cfg.OpenAI.APIKey = ""

	results := RunAll(context.Background(), &cfg)
	found := false
	for _, r := range results {
		if r.Name == "OpenAI API" {
			found = true
			if r.Passed {
				t.Fatal("expected API check to fail without a key")
			}
		}
	}
	if !found {
		t.Fatal("expected OpenAI API check for hosted engine")
	}
}
