package whisper

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildArgsDefaults(t *testing.T) {
	svc := NewService(Config{})
	args := svc.buildArgs("/audio/talk.mp3", "/out", "")

	joined := strings.Join(args, " ")
	for _, fragment := range []string{
		"/audio/talk.mp3",
		"--model small",
		"--output_dir /out",
		"--output_format all",
		"--device cpu",
		"--fp16 False",
	} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("expected %q in args %q", fragment, joined)
		}
	}
	if strings.Contains(joined, "--language") {
		t.Fatalf("expected no language flag without a hint, got %q", joined)
	}
}

func TestBuildArgsLanguageAndCUDA(t *testing.T) {
	svc := NewService(Config{Model: "medium", Device: CUDADevice})
	args := svc.buildArgs("/audio/talk.mp3", "/out", "eng")

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "--language en") {
		t.Fatalf("expected normalized language flag, got %q", joined)
	}
	if !strings.Contains(joined, "--model medium") {
		t.Fatalf("expected configured model, got %q", joined)
	}
	if !strings.Contains(joined, "--device cuda") {
		t.Fatalf("expected cuda device, got %q", joined)
	}
	if strings.Contains(joined, "--fp16") {
		t.Fatalf("expected no fp16 override on cuda, got %q", joined)
	}
}

func TestBuildArgsSkipsUnsupportedLanguage(t *testing.T) {
	svc := NewService(Config{})
	args := svc.buildArgs("/audio/talk.mp3", "/out", "tlh")
	if strings.Contains(strings.Join(args, " "), "--language") {
		t.Fatal("expected unsupported language hint to be dropped")
	}
}

func TestTranscribeFileReadsJSONOutput(t *testing.T) {
	outputDir := t.TempDir()
	source := filepath.Join(t.TempDir(), "standup.wav")
	if err := os.WriteFile(source, []byte("fake audio"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	svc := NewService(Config{Model: "tiny"})
	var invoked []string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		invoked = append([]string{name}, args...)
		jsonPath := filepath.Join(outputDir, "standup.json")
		return os.WriteFile(jsonPath, []byte(`{"text":"hello world","language":"en","segments":[{"id":0,"text":"hello world","start":0,"end":1.5}]}`), 0o644)
	})

	result, err := svc.TranscribeFile(context.Background(), source, outputDir, "")
	if err != nil {
		t.Fatalf("TranscribeFile: %v", err)
	}
	if result.Text != "hello world" {
		t.Fatalf("unexpected transcript %q", result.Text)
	}
	if result.Language != "en" {
		t.Fatalf("expected detected language, got %q", result.Language)
	}
	if result.TextPath != filepath.Join(outputDir, "standup.txt") {
		t.Fatalf("unexpected text path %q", result.TextPath)
	}
	if len(invoked) == 0 || invoked[0] != "whisper" {
		t.Fatalf("expected whisper binary invoked, got %v", invoked)
	}

	segments, err := LoadSegments(result.JSONPath)
	if err != nil {
		t.Fatalf("LoadSegments: %v", err)
	}
	if len(segments) != 1 || segments[0].End != 1.5 {
		t.Fatalf("unexpected segments %+v", segments)
	}
}

func TestTranscribeFileFallsBackToTextFile(t *testing.T) {
	outputDir := t.TempDir()
	source := filepath.Join(t.TempDir(), "memo.mp3")
	if err := os.WriteFile(source, []byte("fake audio"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	svc := NewService(Config{})
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return os.WriteFile(filepath.Join(outputDir, "memo.txt"), []byte("just the text\n"), 0o644)
	})

	result, err := svc.TranscribeFile(context.Background(), source, outputDir, "")
	if err != nil {
		t.Fatalf("TranscribeFile: %v", err)
	}
	if result.Text != "just the text" {
		t.Fatalf("unexpected transcript %q", result.Text)
	}
}

func TestTranscribeFileRequiresSource(t *testing.T) {
	svc := NewService(Config{})
	if _, err := svc.TranscribeFile(context.Background(), "", t.TempDir(), ""); err == nil {
		t.Fatal("expected error for empty source")
	}
}
