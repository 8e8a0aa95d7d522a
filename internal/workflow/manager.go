package workflow

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"scribe/internal/config"
	"scribe/internal/notifications"
	"scribe/internal/queue"
	"scribe/internal/stage"
)

// StageSet bundles the concrete workflow handlers the manager orchestrates.
type StageSet struct {
	Inspector   stage.Handler
	Transcriber stage.Handler
	Organizer   stage.Handler
}

type pipelineStage struct {
	name             string
	handler          stage.Handler
	startStatus      queue.Status
	processingStatus queue.Status
	doneStatus       queue.Status
}

// Manager coordinates queue processing using registered stage handlers.
type Manager struct {
	cfg          *config.Config
	store        *queue.Store
	logger       *slog.Logger
	notifier     notifications.Service
	pollInterval time.Duration

	heartbeat *HeartbeatMonitor

	stages       []pipelineStage
	statusOrder  []queue.Status
	stageByStart map[queue.Status]pipelineStage

	mu       sync.RWMutex
	running  bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	lastErr  error
	lastItem *queue.Item

	queueActive    bool
	queueStart     time.Time
	queueProcessed int
	queueFailed    int
}

// NewManager constructs a workflow manager with default dependencies.
func NewManager(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Manager {
	return NewManagerWithNotifier(cfg, store, logger, notifications.NewService(cfg))
}

// NewManagerWithNotifier constructs a workflow manager with a custom notifier (used in tests).
func NewManagerWithNotifier(cfg *config.Config, store *queue.Store, logger *slog.Logger, notifier notifications.Service) *Manager {
	pollInterval := time.Duration(cfg.Workflow.QueuePollInterval) * time.Second
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	return &Manager{
		cfg:          cfg,
		store:        store,
		logger:       logger,
		notifier:     notifier,
		pollInterval: pollInterval,
		heartbeat: NewHeartbeatMonitor(
			store,
			logger,
			time.Duration(cfg.Workflow.HeartbeatInterval)*time.Second,
			time.Duration(cfg.Workflow.HeartbeatTimeout)*time.Second,
		),
	}
}

// ConfigureStages registers the pipeline handlers in processing order.
func (m *Manager) ConfigureStages(set StageSet) {
	m.stages = []pipelineStage{
		{
			name:             "inspect",
			handler:          set.Inspector,
			startStatus:      queue.StatusPending,
			processingStatus: queue.StatusInspecting,
			doneStatus:       queue.StatusInspected,
		},
		{
			name:             "transcribe",
			handler:          set.Transcriber,
			startStatus:      queue.StatusInspected,
			processingStatus: queue.StatusTranscribing,
			doneStatus:       queue.StatusTranscribed,
		},
		{
			name:             "organize",
			handler:          set.Organizer,
			startStatus:      queue.StatusTranscribed,
			processingStatus: queue.StatusOrganizing,
			doneStatus:       queue.StatusCompleted,
		},
	}
	m.stageByStart = make(map[queue.Status]pipelineStage, len(m.stages))
	m.statusOrder = m.statusOrder[:0]
	for _, stg := range m.stages {
		m.stageByStart[stg.startStatus] = stg
		m.statusOrder = append(m.statusOrder, stg.startStatus)
	}
}

func (m *Manager) stageForStatus(status queue.Status) (pipelineStage, bool) {
	stg, ok := m.stageByStart[status]
	return stg, ok
}

func (m *Manager) setLastError(err error) {
	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()
}

// LastError returns the most recent processing error, if any.
func (m *Manager) LastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

func (m *Manager) setLastItem(item *queue.Item) {
	m.mu.Lock()
	copied := *item
	m.lastItem = &copied
	m.mu.Unlock()
}

// LastItem returns a copy of the most recently processed item, if any.
func (m *Manager) LastItem() *queue.Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.lastItem == nil {
		return nil
	}
	copied := *m.lastItem
	return &copied
}

// Running reports whether the manager loop is active.
func (m *Manager) Running() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running
}
