package transcriber

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/notifications"
	"scribe/internal/queue"
	"scribe/internal/services"
	"scribe/internal/stage"
)

// Transcriber runs the configured engine against inspected audio files.
type Transcriber struct {
	store    *queue.Store
	cfg      *config.Config
	logger   *slog.Logger
	engine   Engine
	notifier notifications.Service
}

// NewTranscriber constructs the transcription stage handler using default dependencies.
func NewTranscriber(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Transcriber {
	return NewTranscriberWithDependencies(cfg, store, logger, NewEngine(cfg), notifications.NewService(cfg))
}

// NewTranscriberWithDependencies allows injecting collaborators (used in tests).
func NewTranscriberWithDependencies(cfg *config.Config, store *queue.Store, logger *slog.Logger, engine Engine, notifier notifications.Service) *Transcriber {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String("component", "transcriber"))
	}
	return &Transcriber{store: store, cfg: cfg, logger: stageLogger, engine: engine, notifier: notifier}
}

func (t *Transcriber) Prepare(ctx context.Context, item *queue.Item) error {
	if item.ProgressStage == "" {
		item.ProgressStage = "Transcribing"
	}
	item.ProgressMessage = "Preparing transcription"
	item.ProgressPercent = 0
	item.ErrorMessage = ""
	item.Engine = t.engine.Name()
	logging.WithContext(ctx, t.logger).Info(
		"starting transcription preparation",
		logging.String("engine", t.engine.Name()),
		logging.String("source", strings.TrimSpace(item.SourcePath)),
	)
	return nil
}

func (t *Transcriber) Execute(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, t.logger)
	logger.Info(
		"starting transcription",
		logging.String("engine", t.engine.Name()),
		logging.String("language", item.Language),
	)

	if _, err := os.Stat(item.SourcePath); err != nil {
		return services.Wrap(
			services.ErrNotFound, "transcribing", "stat source",
			"Source file disappeared before transcription", err)
	}
	if _, err := stage.ParseProbe(item.ProbeJSON); err != nil {
		return err
	}

	workDir := filepath.Join(t.cfg.Paths.StagingDir, strconv.FormatInt(item.ID, 10))
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return services.Wrap(
			services.ErrTransient, "transcribing", "ensure staging dir",
			"Failed to create staging directory", err)
	}

	if t.notifier != nil {
		if err := t.notifier.NotifyTranscriptionStarted(ctx, item.Title, t.engine.Name()); err != nil {
			logger.Warn("start notification failed", logging.Error(err))
		}
	}

	t.updateProgress(ctx, item, fmt.Sprintf("Running %s", t.engine.Name()), 20)

	runCtx := ctx
	if timeout := t.timeout(); timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	started := time.Now()
	result, err := t.engine.Transcribe(runCtx, item.SourcePath, workDir, item.Language)
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return services.Wrap(
				services.ErrTimeout, "transcribing", t.engine.Name(),
				fmt.Sprintf("Transcription exceeded the %s timeout", t.timeout()), err)
		}
		return services.Wrap(
			services.ErrExternalTool, "transcribing", t.engine.Name(),
			"Transcription engine failed", err)
	}
	if strings.TrimSpace(result.Text) == "" {
		if _, statErr := os.Stat(result.TextPath); statErr != nil {
			return services.Wrap(
				services.ErrExternalTool, "transcribing", t.engine.Name(),
				"Engine produced no transcript output", statErr)
		}
	}

	item.TranscriptFile = result.TextPath
	if result.Language != "" {
		item.Language = result.Language
	}
	item.SetProgressComplete("Transcribed", fmt.Sprintf("Transcript ready (%s)", time.Since(started).Round(time.Second)))

	if t.notifier != nil {
		if err := t.notifier.NotifyTranscriptionCompleted(ctx, item.Title, item.Language); err != nil {
			logger.Warn("completion notification failed", logging.Error(err))
		}
	}
	logger.Info(
		"transcription completed",
		logging.String("transcript", result.TextPath),
		logging.Duration("elapsed", time.Since(started)),
	)
	return nil
}

// HealthCheck verifies the configured engine can run.
func (t *Transcriber) HealthCheck(ctx context.Context) stage.Health {
	switch t.engine.Name() {
	case config.EngineOpenAI:
		if strings.TrimSpace(t.cfg.OpenAI.APIKey) == "" {
			return stage.Unhealthy("transcriber", "openai.api_key not configured")
		}
	default:
		if _, err := exec.LookPath(t.cfg.WhisperBinary()); err != nil {
			return stage.Unhealthy("transcriber", fmt.Sprintf("whisper not found: %v", err))
		}
	}
	return stage.Healthy("transcriber")
}

func (t *Transcriber) timeout() time.Duration {
	if t.engine.Name() == config.EngineOpenAI {
		return time.Duration(t.cfg.OpenAI.TimeoutSeconds) * time.Second
	}
	return time.Duration(t.cfg.Whisper.TimeoutSeconds) * time.Second
}

func (t *Transcriber) updateProgress(ctx context.Context, item *queue.Item, message string, percent float64) {
	item.SetProgress("Transcribing", message, percent)
	if t.store == nil {
		return
	}
	if err := t.store.Update(ctx, item); err != nil {
		logging.WithContext(ctx, t.logger).Warn("failed to persist progress", logging.Error(err))
	}
}
