package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/notifications"
	"scribe/internal/queue"
)

// audioExtensions lists the container formats the pipeline accepts.
var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".m4a":  {},
	".flac": {},
	".ogg":  {},
	".opus": {},
	".aac":  {},
	".wma":  {},
	".mp4":  {},
	".mkv":  {},
	".webm": {},
}

// Scanner polls the inbox and enqueues stable audio files.
type Scanner struct {
	cfg      *config.Config
	store    *queue.Store
	logger   *slog.Logger
	notifier notifications.Service

	lastSizes map[string]int64
}

// NewScanner constructs an inbox scanner using default dependencies.
func NewScanner(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Scanner {
	return NewScannerWithDependencies(cfg, store, logger, notifications.NewService(cfg))
}

// NewScannerWithDependencies allows injecting collaborators (used in tests).
func NewScannerWithDependencies(cfg *config.Config, store *queue.Store, logger *slog.Logger, notifier notifications.Service) *Scanner {
	scanLogger := logger
	if scanLogger != nil {
		scanLogger = scanLogger.With(logging.String("component", "watcher"))
	}
	return &Scanner{
		cfg:       cfg,
		store:     store,
		logger:    scanLogger,
		notifier:  notifier,
		lastSizes: make(map[string]int64),
	}
}

// Run polls the inbox until the context is cancelled.
func (s *Scanner) Run(ctx context.Context) error {
	interval := time.Duration(s.cfg.Workflow.InboxScanInterval) * time.Second
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.Scan(ctx); err != nil {
			logging.WithContext(ctx, s.logger).Warn("inbox scan failed", logging.Error(err))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Scan walks the inbox once and returns the number of newly enqueued items.
func (s *Scanner) Scan(ctx context.Context) (int, error) {
	logger := logging.WithContext(ctx, s.logger)

	entries, err := os.ReadDir(s.cfg.Paths.InboxDir)
	if err != nil {
		return 0, fmt.Errorf("read inbox: %w", err)
	}

	seen := make(map[string]struct{}, len(entries))
	enqueued := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !EligibleName(name) {
			continue
		}
		path := filepath.Join(s.cfg.Paths.InboxDir, name)
		info, err := entry.Info()
		if err != nil {
			logger.Warn("stat inbox entry failed", logging.String("path", path), logging.Error(err))
			continue
		}
		seen[path] = struct{}{}

		size := info.Size()
		previous, tracked := s.lastSizes[path]
		s.lastSizes[path] = size
		if size == 0 || !tracked || previous != size {
			continue
		}

		existing, err := s.store.FindBySourcePath(ctx, path)
		if err != nil {
			return enqueued, fmt.Errorf("lookup %s: %w", path, err)
		}
		if existing != nil && existing.Status != queue.StatusCompleted {
			continue
		}

		item, err := s.store.NewFile(ctx, path)
		if err != nil {
			return enqueued, fmt.Errorf("enqueue %s: %w", path, err)
		}
		enqueued++
		logger.Info(
			"audio file queued",
			logging.Int64("item_id", item.ID),
			logging.String("path", path),
		)
		if s.notifier != nil {
			if err := s.notifier.NotifyFileDetected(ctx, item.Title); err != nil {
				logger.Warn("detection notification failed", logging.Error(err))
			}
		}
	}

	for path := range s.lastSizes {
		if _, ok := seen[path]; !ok {
			delete(s.lastSizes, path)
		}
	}
	return enqueued, nil
}

// EligibleName reports whether a file name looks like an audio input the
// pipeline should accept. Hidden files and in-progress uploads are excluded.
func EligibleName(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".part") || strings.HasSuffix(lower, ".tmp") {
		return false
	}
	_, ok := audioExtensions[filepath.Ext(lower)]
	return ok
}
