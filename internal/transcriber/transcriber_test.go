package transcriber_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"scribe/internal/queue"
	"scribe/internal/services"
	"scribe/internal/testsupport"
	"scribe/internal/transcriber"
)

type fakeEngine struct {
	name      string
	result    transcriber.EngineResult
	err       error
	writeText bool
	outputDir string
	language  string
}

func (f *fakeEngine) Name() string {
	if f.name == "" {
		return "whisper"
	}
	return f.name
}

func (f *fakeEngine) Transcribe(ctx context.Context, source, outputDir, language string) (transcriber.EngineResult, error) {
	f.outputDir = outputDir
	f.language = language
	if f.err != nil {
		return transcriber.EngineResult{}, f.err
	}
	result := f.result
	if result.TextPath == "" {
		result.TextPath = filepath.Join(outputDir, "out.txt")
	}
	if f.writeText {
		if err := os.WriteFile(result.TextPath, []byte(result.Text), 0o644); err != nil {
			return transcriber.EngineResult{}, err
		}
	}
	return result, nil
}

func TestExecuteRecordsTranscript(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	source := testsupport.WriteFile(t, filepath.Join(cfg.Paths.InboxDir, "briefing.mp3"), "fake audio")
	item, err := store.NewFile(ctx, source)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	item.ProbeJSON = `{"streams":[{"codec_type":"audio"}],"format":{"duration":"10"}}`
	item.Status = queue.StatusTranscribing

	engine := &fakeEngine{result: transcriber.EngineResult{Text: "hello", Language: "en"}, writeText: true}
	tr := transcriber.NewTranscriberWithDependencies(cfg, store, nil, engine, nil)
	if err := tr.Prepare(ctx, item); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if item.Engine != "whisper" {
		t.Fatalf("expected engine recorded on prepare, got %q", item.Engine)
	}
	if err := tr.Execute(ctx, item); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if item.TranscriptFile == "" {
		t.Fatal("expected transcript file recorded")
	}
	if item.Language != "en" {
		t.Fatalf("expected detected language persisted, got %q", item.Language)
	}
	wantDir := filepath.Join(cfg.Paths.StagingDir, "1")
	if engine.outputDir != wantDir {
		t.Fatalf("expected per-item staging dir %q, got %q", wantDir, engine.outputDir)
	}
	if item.ProgressPercent != 100 {
		t.Fatalf("expected progress complete, got %v", item.ProgressPercent)
	}
}

func TestExecutePassesLanguageHint(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	source := testsupport.WriteFile(t, filepath.Join(cfg.Paths.InboxDir, "entretien.mp3"), "fake audio")
	item, err := store.NewFile(ctx, source)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	item.Language = "fr"

	engine := &fakeEngine{result: transcriber.EngineResult{Text: "bonjour"}, writeText: true}
	tr := transcriber.NewTranscriberWithDependencies(cfg, store, nil, engine, nil)
	if err := tr.Execute(ctx, item); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if engine.language != "fr" {
		t.Fatalf("expected language hint forwarded, got %q", engine.language)
	}
	if item.Language != "fr" {
		t.Fatalf("expected hint preserved when engine detects nothing, got %q", item.Language)
	}
}

func TestExecuteMissingSource(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	item, err := store.NewFile(ctx, filepath.Join(cfg.Paths.InboxDir, "ghost.mp3"))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	tr := transcriber.NewTranscriberWithDependencies(cfg, store, nil, &fakeEngine{}, nil)
	err = tr.Execute(ctx, item)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestExecuteWrapsEngineFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	source := testsupport.WriteFile(t, filepath.Join(cfg.Paths.InboxDir, "bad.mp3"), "fake audio")
	item, err := store.NewFile(ctx, source)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	engine := &fakeEngine{err: errors.New("model load failed")}
	tr := transcriber.NewTranscriberWithDependencies(cfg, store, nil, engine, nil)
	err = tr.Execute(ctx, item)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if services.FailureStatus(err) != queue.StatusFailed {
		t.Fatalf("expected failed status, got %s", services.FailureStatus(err))
	}
}

func TestExecuteRejectsEmptyOutput(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	source := testsupport.WriteFile(t, filepath.Join(cfg.Paths.InboxDir, "silent.mp3"), "fake audio")
	item, err := store.NewFile(ctx, source)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	engine := &fakeEngine{result: transcriber.EngineResult{Text: ""}, writeText: false}
	tr := transcriber.NewTranscriberWithDependencies(cfg, store, nil, engine, nil)
	err = tr.Execute(ctx, item)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error for missing output, got %v", err)
	}
}
