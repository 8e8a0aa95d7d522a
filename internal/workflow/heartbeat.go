package workflow

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"scribe/internal/logging"
	"scribe/internal/queue"
)

// HeartbeatMonitor manages item heartbeats and stale item reclamation.
type HeartbeatMonitor struct {
	store             *queue.Store
	logger            *slog.Logger
	heartbeatInterval time.Duration
	heartbeatTimeout  time.Duration
}

// NewHeartbeatMonitor creates a new monitor.
func NewHeartbeatMonitor(store *queue.Store, logger *slog.Logger, interval, timeout time.Duration) *HeartbeatMonitor {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &HeartbeatMonitor{
		store:             store,
		logger:            logger,
		heartbeatInterval: interval,
		heartbeatTimeout:  timeout,
	}
}

// ReclaimStaleItems identifies items that have stopped sending heartbeats and resets them.
func (h *HeartbeatMonitor) ReclaimStaleItems(ctx context.Context, logger *slog.Logger) error {
	if h.heartbeatTimeout <= 0 {
		return nil
	}
	cutoff := time.Now().Add(-h.heartbeatTimeout)
	reclaimed, err := h.store.ReclaimStaleProcessing(ctx, cutoff)
	if err != nil {
		return err
	}
	if reclaimed > 0 && logger != nil {
		logger.Info("reclaimed stale items", logging.Int64("count", reclaimed))
	}
	return nil
}

// StartLoop runs a heartbeat updater for a specific item until context cancellation.
func (h *HeartbeatMonitor) StartLoop(ctx context.Context, wg *sync.WaitGroup, itemID int64) {
	defer wg.Done()
	ticker := time.NewTicker(h.heartbeatInterval)
	defer ticker.Stop()

	base := h.logger
	if base == nil {
		base = logging.NewNop()
	}
	logger := logging.WithContext(ctx, base.With(logging.String("component", "workflow-heartbeat")))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := h.store.UpdateHeartbeat(ctx, itemID); err != nil {
				if errors.Is(err, context.Canceled) {
					logger.Info("daemon shutting down, heartbeat update cancelled")
				} else {
					logger.Warn("heartbeat update failed", logging.Error(err))
				}
			}
		}
	}
}
