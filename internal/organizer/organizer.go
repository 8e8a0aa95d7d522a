package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	textlang "golang.org/x/text/language"

	"scribe/internal/config"
	"scribe/internal/fileutil"
	"scribe/internal/logging"
	"scribe/internal/notifications"
	"scribe/internal/queue"
	"scribe/internal/services"
	"scribe/internal/stage"
)

// transcript sibling extensions whisper writes next to the .txt output.
var artifactExtensions = []string{".txt", ".json", ".srt", ".vtt", ".tsv"}

// Organizer moves finished audio and transcripts into their final locations.
type Organizer struct {
	store    *queue.Store
	cfg      *config.Config
	logger   *slog.Logger
	notifier notifications.Service
}

// NewOrganizer constructs the organization stage handler using default dependencies.
func NewOrganizer(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Organizer {
	return NewOrganizerWithDependencies(cfg, store, logger, notifications.NewService(cfg))
}

// NewOrganizerWithDependencies allows injecting collaborators (used in tests).
func NewOrganizerWithDependencies(cfg *config.Config, store *queue.Store, logger *slog.Logger, notifier notifications.Service) *Organizer {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String("component", "organizer"))
	}
	return &Organizer{store: store, cfg: cfg, logger: stageLogger, notifier: notifier}
}

func (o *Organizer) Prepare(ctx context.Context, item *queue.Item) error {
	if item.ProgressStage == "" {
		item.ProgressStage = "Organizing"
	}
	item.ProgressMessage = "Preparing organization"
	item.ProgressPercent = 0
	item.ErrorMessage = ""
	logging.WithContext(ctx, o.logger).Info(
		"starting organization preparation",
		logging.String("transcript", strings.TrimSpace(item.TranscriptFile)),
	)
	return nil
}

func (o *Organizer) Execute(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, o.logger)
	logger.Info(
		"starting organization",
		logging.String("transcript", item.TranscriptFile),
		logging.String("source", item.SourcePath),
	)

	if strings.TrimSpace(item.TranscriptFile) == "" {
		return services.Wrap(
			services.ErrValidation, "organizing", "validate inputs",
			"No transcript present for organization; run transcription first", nil)
	}
	if _, err := os.Stat(item.TranscriptFile); err != nil {
		return services.Wrap(
			services.ErrValidation, "organizing", "validate inputs",
			"Transcript file missing from staging; rerun transcription", err)
	}

	o.updateProgress(ctx, item, "Moving transcript files", 30)
	stagingDir := filepath.Dir(item.TranscriptFile)
	transcriptDest, err := o.moveTranscripts(item)
	if err != nil {
		return services.Wrap(
			services.ErrTransient, "organizing", "move transcripts",
			"Failed to move transcript into the transcripts directory", err)
	}
	item.TranscriptFile = transcriptDest

	o.updateProgress(ctx, item, "Moving source audio", 70)
	audioDest := filepath.Join(o.cfg.Paths.ProcessedDir, filepath.Base(item.SourcePath))
	if err := fileutil.MoveFile(item.SourcePath, audioDest); err != nil {
		return services.Wrap(
			services.ErrTransient, "organizing", "move audio",
			"Failed to move source audio into the processed directory", err)
	}
	item.FinalAudioFile = audioDest

	o.cleanStaging(stagingDir, logger)

	displayTitle := DisplayTitle(item.Title)
	item.SetProgressComplete("Completed", fmt.Sprintf("Transcript: %s", filepath.Base(transcriptDest)))
	if o.notifier != nil {
		if err := o.notifier.NotifyProcessingCompleted(ctx, displayTitle, transcriptDest); err != nil {
			logger.Warn("completion notification failed", logging.Error(err))
		}
	}
	logger.Info(
		"organization completed",
		logging.String("transcript", transcriptDest),
		logging.String("audio", audioDest),
	)
	return nil
}

// HealthCheck verifies the destination directories are writable.
func (o *Organizer) HealthCheck(ctx context.Context) stage.Health {
	for _, dir := range []string{o.cfg.Paths.ProcessedDir, o.cfg.Paths.TranscriptsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return stage.Unhealthy("organizer", fmt.Sprintf("cannot create %s: %v", dir, err))
		}
	}
	return stage.Healthy("organizer")
}

// moveTranscripts relocates the transcript and its sibling artifacts,
// replacing any previous files with the same name. Returns the final .txt path.
func (o *Organizer) moveTranscripts(item *queue.Item) (string, error) {
	baseName := strings.TrimSuffix(filepath.Base(item.TranscriptFile), filepath.Ext(item.TranscriptFile))
	stagingDir := filepath.Dir(item.TranscriptFile)
	if err := os.MkdirAll(o.cfg.Paths.TranscriptsDir, 0o755); err != nil {
		return "", err
	}

	dest := filepath.Join(o.cfg.Paths.TranscriptsDir, baseName+".txt")
	for _, ext := range artifactExtensions {
		src := filepath.Join(stagingDir, baseName+ext)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		target := filepath.Join(o.cfg.Paths.TranscriptsDir, baseName+ext)
		_ = os.Remove(target)
		if err := fileutil.MoveFile(src, target); err != nil {
			return "", err
		}
	}
	if _, err := os.Stat(dest); err != nil {
		return "", fmt.Errorf("transcript %s missing after move: %w", dest, err)
	}
	return dest, nil
}

func (o *Organizer) cleanStaging(stagingDir string, logger *slog.Logger) {
	rel, err := filepath.Rel(o.cfg.Paths.StagingDir, stagingDir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return
	}
	if err := os.RemoveAll(stagingDir); err != nil {
		logger.Warn("failed to clean staging dir", logging.Error(err))
	}
}

// DisplayTitle renders a queue title for user-facing output.
func DisplayTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Unknown"
	}
	return cases.Title(textlang.English, cases.NoLower).String(title)
}

func (o *Organizer) updateProgress(ctx context.Context, item *queue.Item, message string, percent float64) {
	item.SetProgress("Organizing", message, percent)
	if o.store == nil {
		return
	}
	if err := o.store.Update(ctx, item); err != nil {
		logging.WithContext(ctx, o.logger).Warn("failed to persist progress", logging.Error(err))
	}
}
