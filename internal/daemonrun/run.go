// Package daemonrun wires the daemon process together: logging, queue store,
// workflow stages, inbox watcher, and the IPC server. The scribe and scribed
// entry points both call Run.
package daemonrun

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"scribe/internal/config"
	"scribe/internal/daemon"
	"scribe/internal/deps"
	"scribe/internal/inspector"
	"scribe/internal/ipc"
	"scribe/internal/logging"
	"scribe/internal/organizer"
	"scribe/internal/preflight"
	"scribe/internal/queue"
	"scribe/internal/transcriber"
	"scribe/internal/watcher"
	"scribe/internal/workflow"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel    string
	Development bool
	// SocketPath overrides the IPC socket location, which otherwise
	// defaults to scribe.sock in the log directory.
	SocketPath string
}

// Run starts the scribe daemon runtime loop and blocks until a signal arrives.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	runID := time.Now().UTC().Format("20060102T150405Z")
	logPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("scribe-%s.log", runID))

	logger, err := logging.New(logging.Options{
		Level:            opts.LogLevel,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout", logPath},
		ErrorOutputPaths: []string{"stderr", logPath},
		Development:      opts.Development,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	if err := ensureCurrentLogPointer(cfg.Paths.LogDir, logPath); err != nil {
		fmt.Fprintf(os.Stderr, "warn: unable to update scribe.log link: %v\n", err)
	}

	logDependencySnapshot(logger, cfg)
	logPreflight(signalCtx, logger, cfg)

	pidPath := filepath.Join(cfg.Paths.LogDir, "scribe.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	store, err := queue.Open(cfg)
	if err != nil {
		logger.Error("open queue store", logging.Error(err))
		return err
	}
	defer store.Close()

	workflowManager := workflow.NewManager(cfg, store, logger)
	workflowManager.ConfigureStages(workflow.StageSet{
		Inspector:   inspector.NewInspector(cfg, store, logger),
		Transcriber: transcriber.NewTranscriber(cfg, store, logger),
		Organizer:   organizer.NewOrganizer(cfg, store, logger),
	})

	scanner := watcher.NewScanner(cfg, store, logger)

	d, err := daemon.New(cfg, store, logger, workflowManager, scanner)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	socketPath := strings.TrimSpace(opts.SocketPath)
	if socketPath == "" {
		socketPath = filepath.Join(cfg.Paths.LogDir, "scribe.sock")
	}
	ipcServer, err := ipc.NewServer(signalCtx, socketPath, d, logger)
	if err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(signalCtx); err != nil {
		logger.Warn("daemon start failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "daemon_start_failed"),
			logging.String(logging.FieldErrorHint, "check configuration and queue database access"),
		)
	}

	<-signalCtx.Done()
	logger.Info("scribe daemon shutting down")
	return nil
}

func ensureCurrentLogPointer(logDir, target string) error {
	if logDir == "" || target == "" {
		return nil
	}
	current := filepath.Join(logDir, "scribe.log")
	if err := os.Remove(current); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing log pointer: %w", err)
	}
	if err := os.Symlink(target, current); err == nil {
		return nil
	}
	if err := os.Link(target, current); err != nil {
		return fmt.Errorf("link log pointer: %w", err)
	}
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}

func logDependencySnapshot(logger *slog.Logger, cfg *config.Config) {
	if logger == nil || cfg == nil {
		return
	}
	attrs := []logging.Attr{
		logging.String(logging.FieldEventType, "dependency_snapshot"),
		logging.String("engine", cfg.Whisper.Engine),
	}
	for _, status := range deps.Check(cfg) {
		attrs = append(attrs, logging.Bool(status.Name+"_available", status.Available))
	}
	logger.Info("dependency snapshot", logging.Args(attrs...)...)
}

func logPreflight(ctx context.Context, logger *slog.Logger, cfg *config.Config) {
	for _, result := range preflight.RunAll(ctx, cfg) {
		if result.Passed {
			logger.Debug("preflight check passed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail))
			continue
		}
		logger.Warn("preflight check failed",
			logging.String(logging.FieldEventType, "preflight_failed"),
			logging.String("check", result.Name),
			logging.String("detail", result.Detail))
	}
}
