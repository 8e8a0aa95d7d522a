package workflow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"scribe/internal/logging"
	"scribe/internal/queue"
)

// Start begins background processing.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return errors.New("workflow already running")
	}
	if len(m.statusOrder) == 0 {
		m.mu.Unlock()
		return errors.New("workflow stages not configured")
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true
	m.wg.Add(1)
	m.mu.Unlock()

	go m.run(runCtx)
	return nil
}

// Stop terminates background processing and waits for completion.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
}

func (m *Manager) run(ctx context.Context) {
	defer m.wg.Done()
	logger := m.logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(logging.String("component", "workflow-manager"))

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := m.heartbeat.ReclaimStaleItems(ctx, logger); err != nil {
			logger.Warn("reclaim stale processing failed; stuck items may remain",
				logging.Error(err),
				logging.String(logging.FieldEventType, "heartbeat_reclaim_failed"),
				logging.String(logging.FieldErrorHint, "check queue database access"),
			)
		}

		item, err := m.store.NextForStatuses(ctx, m.statusOrder...)
		if err != nil {
			m.handleNextItemError(ctx, logger, err)
			continue
		}
		if item == nil {
			m.checkQueueCompletion(ctx)
			m.waitForItemOrShutdown(ctx)
			continue
		}

		if err := m.processItem(ctx, logger, item); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
		}
	}
}

func (m *Manager) handleNextItemError(ctx context.Context, logger *slog.Logger, err error) {
	m.setLastError(err)
	logger.Error("failed to fetch next queue item",
		logging.Error(err),
		logging.String(logging.FieldEventType, "queue_fetch_failed"),
		logging.String(logging.FieldErrorHint, "check queue database access"),
	)
	retry := time.Duration(m.cfg.Workflow.ErrorRetryInterval) * time.Second
	if retry <= 0 {
		retry = m.pollInterval
	}
	select {
	case <-ctx.Done():
	case <-time.After(retry):
	}
}

func (m *Manager) waitForItemOrShutdown(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(m.pollInterval):
	}
}

// checkQueueCompletion emits a summary notification when an active run drains.
func (m *Manager) checkQueueCompletion(ctx context.Context) {
	m.mu.Lock()
	if !m.queueActive {
		m.mu.Unlock()
		return
	}
	processed := m.queueProcessed
	failed := m.queueFailed
	elapsed := time.Since(m.queueStart)
	m.queueActive = false
	m.queueProcessed = 0
	m.queueFailed = 0
	m.mu.Unlock()

	if m.notifier != nil {
		if err := m.notifier.NotifyQueueCompleted(ctx, processed, failed, elapsed); err != nil {
			logger := m.logger
			if logger == nil {
				logger = logging.NewNop()
			}
			logger.Warn("queue completion notification failed", logging.Error(err))
		}
	}
}

func (m *Manager) noteItemStarted() {
	m.mu.Lock()
	if !m.queueActive {
		m.queueActive = true
		m.queueStart = time.Now()
	}
	m.mu.Unlock()
}

func (m *Manager) noteItemFinished(status queue.Status) {
	m.mu.Lock()
	switch status {
	case queue.StatusCompleted:
		m.queueProcessed++
	case queue.StatusFailed, queue.StatusReview:
		m.queueFailed++
	}
	m.mu.Unlock()
}
