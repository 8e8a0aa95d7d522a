package inspector

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"scribe/internal/config"
	"scribe/internal/language"
	"scribe/internal/logging"
	"scribe/internal/media/ffprobe"
	"scribe/internal/notifications"
	"scribe/internal/queue"
	"scribe/internal/services"
	"scribe/internal/stage"
)

// probeFunc matches ffprobe.Inspect and allows injection in tests.
type probeFunc func(ctx context.Context, binary, path string) (ffprobe.Result, error)

// Inspector probes source audio files and persists their metadata.
type Inspector struct {
	store    *queue.Store
	cfg      *config.Config
	logger   *slog.Logger
	notifier notifications.Service
	probe    probeFunc
}

// NewInspector constructs the inspection stage handler using default dependencies.
func NewInspector(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Inspector {
	return NewInspectorWithDependencies(cfg, store, logger, notifications.NewService(cfg), ffprobe.Inspect)
}

// NewInspectorWithDependencies allows injecting collaborators (used in tests).
func NewInspectorWithDependencies(cfg *config.Config, store *queue.Store, logger *slog.Logger, notifier notifications.Service, probe probeFunc) *Inspector {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String("component", "inspector"))
	}
	if probe == nil {
		probe = ffprobe.Inspect
	}
	return &Inspector{store: store, cfg: cfg, logger: stageLogger, notifier: notifier, probe: probe}
}

func (i *Inspector) Prepare(ctx context.Context, item *queue.Item) error {
	if item.ProgressStage == "" {
		item.ProgressStage = "Inspecting"
	}
	item.ProgressMessage = "Preparing inspection"
	item.ProgressPercent = 0
	item.ErrorMessage = ""
	logging.WithContext(ctx, i.logger).Info(
		"starting inspection preparation",
		logging.String("source", strings.TrimSpace(item.SourcePath)),
	)
	return nil
}

func (i *Inspector) Execute(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, i.logger)
	logger.Info("starting inspection", logging.String("source", item.SourcePath))

	info, err := os.Stat(item.SourcePath)
	if err != nil {
		return services.Wrap(
			services.ErrNotFound, "inspecting", "stat source",
			"Source file missing or unreadable; it may have been removed from the inbox", err)
	}
	if info.IsDir() {
		return services.Wrap(
			services.ErrValidation, "inspecting", "stat source",
			"Source path is a directory, not an audio file", nil)
	}

	i.updateProgress(ctx, item, "Probing audio streams", 30)
	result, err := i.probe(ctx, i.cfg.FFprobeBinary(), item.SourcePath)
	if err != nil {
		return services.Wrap(
			services.ErrExternalTool, "inspecting", "ffprobe",
			"ffprobe failed; confirm the file is readable media", err)
	}
	if !result.HasAudio() {
		if i.notifier != nil {
			if nerr := i.notifier.NotifyReviewRequired(ctx, item.Title, "no audio stream"); nerr != nil {
				logger.Warn("review notification failed", logging.Error(nerr))
			}
		}
		return services.Wrap(
			services.ErrValidation, "inspecting", "validate streams",
			"File contains no audio stream", nil)
	}

	item.ProbeJSON = string(result.RawJSON())
	if item.Language == "" {
		if tag := language.Normalize(result.AudioLanguage()); tag != "" {
			item.Language = tag
			logger.Info("language inferred from stream tags", logging.String("language", tag))
		}
	}

	duration := time.Duration(result.DurationSeconds() * float64(time.Second)).Round(time.Second)
	item.SetProgressComplete("Inspected", fmt.Sprintf("Audio verified (%s)", duration))
	logger.Info(
		"inspection completed",
		logging.Float64("duration_seconds", result.DurationSeconds()),
		logging.Int("audio_streams", result.AudioStreamCount()),
	)
	return nil
}

// HealthCheck verifies the ffprobe binary is resolvable.
func (i *Inspector) HealthCheck(ctx context.Context) stage.Health {
	if _, err := exec.LookPath(i.cfg.FFprobeBinary()); err != nil {
		return stage.Unhealthy("inspector", fmt.Sprintf("ffprobe not found: %v", err))
	}
	return stage.Healthy("inspector")
}

func (i *Inspector) updateProgress(ctx context.Context, item *queue.Item, message string, percent float64) {
	item.SetProgress("Inspecting", message, percent)
	if i.store == nil {
		return
	}
	if err := i.store.Update(ctx, item); err != nil {
		logging.WithContext(ctx, i.logger).Warn("failed to persist progress", logging.Error(err))
	}
}
