package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("WHISPER_MODEL", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantInbox := filepath.Join(tempHome, "audio", "inbox")
	if cfg.Paths.InboxDir != wantInbox {
		t.Fatalf("unexpected inbox dir: got %q want %q", cfg.Paths.InboxDir, wantInbox)
	}
	if cfg.Paths.TranscriptsDir != filepath.Join(tempHome, "audio", "transcripts") {
		t.Fatalf("unexpected transcripts dir: %q", cfg.Paths.TranscriptsDir)
	}
	if cfg.Whisper.Engine != "whisper" {
		t.Fatalf("unexpected default engine: %q", cfg.Whisper.Engine)
	}
	if cfg.Whisper.Model != "small" {
		t.Fatalf("unexpected default model: %q", cfg.Whisper.Model)
	}
	if cfg.Deploy.WordPressPort != 8000 {
		t.Fatalf("unexpected wordpress port: %d", cfg.Deploy.WordPressPort)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}

	for _, dir := range []string{cfg.Paths.InboxDir, cfg.Paths.ProcessedDir, cfg.Paths.TranscriptsDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "scribe.toml")

	content := strings.Join([]string{
		"[paths]",
		`inbox_dir = "` + filepath.Join(tempDir, "in") + `"`,
		`processed_dir = "` + filepath.Join(tempDir, "done") + `"`,
		"[whisper]",
		`model = "medium"`,
		`language = "EN"`,
	}, "\n")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Paths.InboxDir != filepath.Join(tempDir, "in") {
		t.Fatalf("unexpected inbox dir: %q", cfg.Paths.InboxDir)
	}
	if cfg.Whisper.Model != "medium" {
		t.Fatalf("unexpected model: %q", cfg.Whisper.Model)
	}
	if cfg.Whisper.Language != "en" {
		t.Fatalf("expected language normalized to lowercase, got %q", cfg.Whisper.Language)
	}
	// Unset sections keep defaults.
	if cfg.Paths.TranscriptsDir == "" {
		t.Fatal("expected default transcripts dir")
	}
}

func TestLoadRejectsUnknownEngine(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "scribe.toml")
	if err := os.WriteFile(configPath, []byte("[whisper]\nengine = \"deepgram\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(configPath)
	if err == nil {
		t.Fatal("expected error for unknown engine")
	}
	if !strings.Contains(err.Error(), "whisper.engine") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadOpenAIEngineRequiresKey(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("OPENAI_API_KEY", "")
	configPath := filepath.Join(tempDir, "scribe.toml")
	if err := os.WriteFile(configPath, []byte("[whisper]\nengine = \"openai\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error when openai engine has no api key")
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error with env key: %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Fatalf("expected api key from env, got %q", cfg.OpenAI.APIKey)
	}
}

func TestWhisperModelEnvOverride(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("WHISPER_MODEL", "base")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Whisper.Model != "base" {
		t.Fatalf("expected WHISPER_MODEL override, got %q", cfg.Whisper.Model)
	}
}

func TestKnownWhisperModel(t *testing.T) {
	for _, name := range []string{"tiny", "small", "large", "large-v3", "tiny.en"} {
		if !config.KnownWhisperModel(name) {
			t.Fatalf("expected %q to be a known model", name)
		}
	}
	for _, name := range []string{"", "enormous", "whisper-1"} {
		if config.KnownWhisperModel(name) {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}

func TestCreateSample(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[whisper]") {
		t.Fatal("expected sample to mention [whisper] section")
	}
}
