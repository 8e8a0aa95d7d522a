package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"scribe/internal/logging"
	"scribe/internal/queue"
	"scribe/internal/services"
)

func (m *Manager) processItem(ctx context.Context, logger *slog.Logger, item *queue.Item) error {
	stg, ok := m.stageForStatus(item.Status)
	if !ok {
		logger.Warn("no stage configured for status", logging.String("status", string(item.Status)))
		m.waitForItemOrShutdown(ctx)
		return nil
	}

	stageCtx := services.WithRequestID(ctx, uuid.NewString())
	stageCtx = services.WithItemID(stageCtx, item.ID)
	stageCtx = services.WithStage(stageCtx, stg.name)
	stageLogger := logging.WithContext(stageCtx, logger)

	if err := m.transitionToProcessing(stageCtx, stg, item); err != nil {
		stageLogger.Error("failed to transition item to processing", logging.Error(err))
		m.setLastError(err)
		return err
	}

	return m.executeStage(stageCtx, stageLogger, stg, item)
}

func (m *Manager) executeStage(ctx context.Context, stageLogger *slog.Logger, stg pipelineStage, item *queue.Item) error {
	stageStart := time.Now()
	stageLogger.Info(
		"stage started",
		logging.String(logging.FieldEventType, "stage_start"),
		logging.String("processing_status", string(stg.processingStatus)),
		logging.String("title", strings.TrimSpace(item.Title)),
		logging.String("source_file", strings.TrimSpace(item.SourcePath)),
	)

	handler := stg.handler
	if handler == nil {
		stageLogger.Warn("missing stage handler", logging.String("stage", stg.name))
		item.SetFailed(fmt.Sprintf("stage %s missing handler", stg.name))
		if err := m.store.Update(ctx, item); err != nil {
			stageLogger.Error("failed to persist missing handler failure", logging.Error(err))
		}
		err := errors.New("stage handler unavailable")
		m.setLastError(err)
		return err
	}

	if err := handler.Prepare(ctx, item); err != nil {
		m.handleStageFailure(ctx, stg.name, item, err)
		m.setLastError(err)
		return err
	}
	if err := m.store.Update(ctx, item); err != nil {
		wrapped := fmt.Errorf("persist stage preparation: %w", err)
		stageLogger.Error("failed to persist stage preparation", logging.Error(wrapped))
		m.setLastError(wrapped)
		return wrapped
	}

	execErr := m.executeWithHeartbeat(ctx, handler, item)
	if execErr != nil {
		if errors.Is(execErr, context.Canceled) {
			stageLogger.Debug("stage interrupted by shutdown")
			return execErr
		}
		m.handleStageFailure(ctx, stg.name, item, execErr)
		m.setLastError(execErr)
		return execErr
	}

	if item.Status == stg.processingStatus || item.Status == "" {
		item.Status = stg.doneStatus
	}
	item.LastHeartbeat = nil
	if item.Status == queue.StatusCompleted {
		if item.ProgressPercent < 100 {
			item.ProgressPercent = 100
		}
		if strings.TrimSpace(item.ProgressMessage) == "" {
			item.ProgressMessage = queue.StageLabel(queue.StatusCompleted)
		}
	}
	if err := m.store.Update(ctx, item); err != nil {
		wrapped := fmt.Errorf("persist stage result: %w", err)
		stageLogger.Error("failed to persist stage result", logging.Error(wrapped))
		m.setLastError(wrapped)
		return wrapped
	}
	stageLogger.Info(
		"stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.String("next_status", string(item.Status)),
		logging.String("progress_message", strings.TrimSpace(item.ProgressMessage)),
		logging.Duration("stage_duration", time.Since(stageStart)),
	)
	m.setLastItem(item)
	if item.Status == queue.StatusCompleted {
		m.noteItemFinished(item.Status)
	}
	return nil
}

func (m *Manager) executeWithHeartbeat(ctx context.Context, handler interface {
	Execute(context.Context, *queue.Item) error
}, item *queue.Item) error {
	hbCtx, hbCancel := context.WithCancel(ctx)
	var hbWG sync.WaitGroup
	hbWG.Add(1)
	go m.heartbeat.StartLoop(hbCtx, &hbWG, item.ID)

	execErr := handler.Execute(ctx, item)
	hbCancel()
	hbWG.Wait()
	return execErr
}

func (m *Manager) transitionToProcessing(ctx context.Context, stg pipelineStage, item *queue.Item) error {
	now := time.Now().UTC()
	item.Status = stg.processingStatus
	if item.ProgressStage == "" {
		item.ProgressStage = queue.StageLabel(stg.processingStatus)
	}
	if item.ProgressMessage == "" {
		item.ProgressMessage = fmt.Sprintf("%s started", queue.StageLabel(stg.processingStatus))
	}
	item.ProgressPercent = 0
	item.ErrorMessage = ""
	item.LastHeartbeat = &now

	if err := m.store.Update(ctx, item); err != nil {
		return fmt.Errorf("persist processing transition: %w", err)
	}
	m.setLastItem(item)
	m.noteItemStarted()
	return nil
}

func (m *Manager) handleStageFailure(ctx context.Context, stageName string, item *queue.Item, stageErr error) {
	logger := m.logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.WithContext(ctx, logger).With(logging.String("component", "workflow-manager"))

	resolved := services.FailureStatus(stageErr)
	message := failureMessage(stageName, stageErr)

	item.SetFailed(message)
	if resolved == queue.StatusReview {
		item.Status = queue.StatusReview
		item.NeedsReview = true
		item.ReviewReason = message
		item.ProgressStage = queue.StageLabel(queue.StatusReview)
	}

	logger.Error("stage failed",
		logging.String(logging.FieldEventType, "stage_failure"),
		logging.String("resolved_status", string(item.Status)),
		logging.String("error_message", message),
		logging.Error(stageErr),
	)

	if err := m.store.Update(ctx, item); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Debug("daemon shutting down, could not update stage failure")
		} else {
			logger.Error("failed to persist stage failure", logging.Error(err))
		}
	}

	m.setLastItem(item)
	m.noteItemFinished(item.Status)
	if m.notifier != nil {
		if resolved == queue.StatusReview {
			if err := m.notifier.NotifyReviewRequired(ctx, item.Title, message); err != nil {
				logger.Warn("review notification failed", logging.Error(err))
			}
		} else if err := m.notifier.NotifyError(ctx, stageErr, stageName); err != nil {
			logger.Warn("error notification failed", logging.Error(err))
		}
	}
}

func failureMessage(stageName string, stageErr error) string {
	if stageErr == nil {
		if stageName != "" {
			return fmt.Sprintf("%s failed without error detail", stageName)
		}
		return "workflow failed without error detail"
	}
	message := strings.TrimSpace(stageErr.Error())
	if message == "" {
		message = fmt.Sprintf("%s failed", stageName)
	}
	return message
}
