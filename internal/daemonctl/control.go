// Package daemonctl orchestrates the daemon process from the CLI side:
// launching a detached scribed process, waiting for its IPC socket, and
// stopping or force-killing it when graceful shutdown stalls.
package daemonctl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"scribe/internal/config"
	"scribe/internal/ipc"
	"scribe/internal/queue"
)

// LaunchOptions controls daemon process launch behavior.
type LaunchOptions struct {
	SocketPath string
	ConfigPath string
}

type StartState string

const (
	StartStateStarted        StartState = "started"
	StartStateAlreadyRunning StartState = "already_running"
	StartStateRequested      StartState = "start_requested"
)

// StartResult captures daemon start orchestration state.
type StartResult struct {
	State    StartState
	Launched bool
	Message  string
}

// ErrDaemonNotRunning indicates daemon IPC is unavailable.
var ErrDaemonNotRunning = errors.New("daemon not running")

// Launch starts a detached scribe daemon process.
func Launch(executablePath string, opts LaunchOptions) error {
	if strings.TrimSpace(executablePath) == "" {
		return fmt.Errorf("resolve executable: executable path is empty")
	}

	args := []string{"daemon"}
	if socket := strings.TrimSpace(opts.SocketPath); socket != "" {
		args = append(args, "--socket", socket)
	}
	if cfg := strings.TrimSpace(opts.ConfigPath); cfg != "" {
		args = append(args, "--config", cfg)
	}

	proc := exec.Command(executablePath, args...)
	if err := proc.Start(); err != nil {
		return fmt.Errorf("launch daemon: %w", err)
	}
	return proc.Process.Release()
}

// WaitForClient waits for IPC socket availability and returns a connected client.
func WaitForClient(socketPath string, timeout time.Duration) (*ipc.Client, error) {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		client, err := ipc.Dial(socketPath)
		if err == nil {
			return client, nil
		}
		lastErr = err
		time.Sleep(200 * time.Millisecond)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("timeout waiting for daemon")
	}
	return nil, fmt.Errorf("daemon failed to start: %w", lastErr)
}

// EnsureStarted launches and/or starts the daemon and returns the resulting state.
func EnsureStarted(socketPath, executablePath string, opts LaunchOptions, waitTimeout time.Duration) (StartResult, error) {
	client, err := ipc.Dial(socketPath)
	launched := false
	if err != nil {
		if launchErr := Launch(executablePath, opts); launchErr != nil {
			return StartResult{}, launchErr
		}
		client, err = WaitForClient(socketPath, waitTimeout)
		if err != nil {
			return StartResult{}, err
		}
		launched = true
	}
	defer client.Close()

	statusResp, statusErr := client.Status()
	if statusErr == nil && statusResp != nil && statusResp.Running {
		if launched {
			return StartResult{State: StartStateStarted, Launched: true}, nil
		}
		return StartResult{State: StartStateAlreadyRunning}, nil
	}

	resp, err := client.Start()
	if err != nil {
		return StartResult{}, err
	}

	if resp != nil {
		message := strings.TrimSpace(resp.Message)
		if resp.Started {
			return StartResult{State: StartStateStarted, Launched: launched, Message: message}, nil
		}
		if strings.EqualFold(message, "daemon already running") {
			if launched {
				return StartResult{State: StartStateStarted, Launched: true, Message: message}, nil
			}
			return StartResult{State: StartStateAlreadyRunning, Message: message}, nil
		}
		if message != "" {
			return StartResult{State: StartStateRequested, Launched: launched, Message: message}, nil
		}
	}

	return StartResult{State: StartStateRequested, Launched: launched, Message: "Start request sent"}, nil
}

// WaitForShutdown waits for daemon IPC to disappear or report not-running.
func WaitForShutdown(socketPath string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		client, err := ipc.Dial(socketPath)
		if err != nil {
			if isDaemonUnavailable(err) {
				return nil
			}
			lastErr = err
			time.Sleep(200 * time.Millisecond)
			continue
		}
		status, statusErr := client.Status()
		_ = client.Close()
		if statusErr == nil && !status.Running {
			return nil
		}
		if statusErr != nil {
			lastErr = statusErr
		} else {
			lastErr = fmt.Errorf("daemon still running")
		}
		time.Sleep(200 * time.Millisecond)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("timeout waiting for shutdown")
	}
	return fmt.Errorf("daemon did not stop: %w", lastErr)
}

// ProcessInfo returns whether daemon IPC is reachable and the daemon PID when available.
func ProcessInfo(socketPath string) (bool, int, error) {
	client, err := ipc.Dial(socketPath)
	if err != nil {
		if isDaemonUnavailable(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	defer client.Close()
	status, statusErr := client.Status()
	if statusErr != nil {
		return true, 0, statusErr
	}
	pid := 0
	if status != nil {
		pid = status.PID
	}
	return true, pid, nil
}

// DeriveLogDir determines daemon log directory from status and config hints.
func DeriveLogDir(lockPath, queueDBPath string, cfg *config.Config) string {
	if lockPath != "" {
		return filepath.Dir(lockPath)
	}
	if queueDBPath != "" {
		return filepath.Dir(queueDBPath)
	}
	if cfg != nil && strings.TrimSpace(cfg.Paths.LogDir) != "" {
		return cfg.Paths.LogDir
	}
	return ""
}

// ForceKillProcess sends SIGKILL to the daemon process and cleans pid/lock files.
func ForceKillProcess(pidPath, lockPath string, fallbackPID int) (int, error) {
	pid := fallbackPID
	data, err := os.ReadFile(pidPath)
	if err == nil {
		pidStr := strings.TrimSpace(string(data))
		if pidStr != "" {
			if parsed, parseErr := strconv.Atoi(pidStr); parseErr == nil && parsed > 0 {
				pid = parsed
			}
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("read daemon pid file %q: %w", pidPath, err)
	}
	if pid <= 0 {
		return 0, fmt.Errorf("unable to determine daemon pid (pid file: %s)", pidPath)
	}
	if pid == os.Getpid() {
		return 0, fmt.Errorf("refusing to kill current process (pid %d)", pid)
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return 0, fmt.Errorf("locate daemon process %d: %w", pid, err)
	}
	if err := proc.Kill(); err != nil {
		return 0, fmt.Errorf("kill daemon process %d: %w", pid, err)
	}
	if err := os.Remove(pidPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("remove pid file %q: %w", pidPath, err)
	}
	if lockPath != "" {
		_ = os.Remove(lockPath)
	}
	return pid, nil
}

// StopResult captures daemon stop/termination outcome.
type StopResult struct {
	StopAcknowledged bool
	ForcedKill       bool
	PID              int
}

// RestartResult captures stop/start outcomes for daemon restart.
type RestartResult struct {
	WasRunning bool
	Stop       StopResult
	Start      StartResult
}

// StopAndTerminate requests daemon stop and force-kills the process if still
// alive after gracePeriod.
func StopAndTerminate(socketPath string, cfg *config.Config, gracePeriod time.Duration) (StopResult, error) {
	client, err := ipc.Dial(socketPath)
	if err != nil {
		if isDaemonUnavailable(err) {
			return StopResult{}, ErrDaemonNotRunning
		}
		return StopResult{}, err
	}
	statusResp, statusErr := client.Status()
	var lockPath, queueDBPath string
	pid := 0
	if statusErr == nil && statusResp != nil {
		lockPath = statusResp.LockPath
		queueDBPath = statusResp.QueueDBPath
		pid = statusResp.PID
	}
	resp, err := client.Stop()
	_ = client.Close()
	if err != nil {
		return StopResult{}, err
	}
	result := StopResult{PID: pid}
	if resp != nil {
		result.StopAcknowledged = resp.Stopped
	}

	_ = WaitForShutdown(socketPath, gracePeriod)
	alive, livePID, aliveErr := ProcessInfo(socketPath)
	if aliveErr != nil {
		alive = false
	}
	if !alive {
		return result, nil
	}

	currentPID := livePID
	if currentPID == 0 {
		currentPID = pid
	}
	logDir := DeriveLogDir(lockPath, queueDBPath, cfg)
	if logDir == "" {
		return result, fmt.Errorf("unable to determine daemon log directory")
	}
	pidPath := filepath.Join(logDir, "scribe.pid")
	lockFile := filepath.Join(logDir, "scribed.lock")
	killedPID, killErr := ForceKillProcess(pidPath, lockFile, currentPID)
	if killErr != nil {
		return result, fmt.Errorf("failed to stop daemon process: %w", killErr)
	}
	_ = os.Remove(socketPath)
	result.ForcedKill = true
	result.PID = killedPID
	return result, nil
}

// Restart stops the daemon if running, then ensures it is started.
func Restart(socketPath string, cfg *config.Config, executablePath string, opts LaunchOptions, stopGracePeriod, startWaitTimeout time.Duration) (RestartResult, error) {
	stopResult, stopErr := StopAndTerminate(socketPath, cfg, stopGracePeriod)
	if stopErr != nil && !errors.Is(stopErr, ErrDaemonNotRunning) {
		return RestartResult{}, stopErr
	}

	startResult, err := EnsureStarted(socketPath, executablePath, opts, startWaitTimeout)
	if err != nil {
		return RestartResult{}, err
	}

	return RestartResult{
		WasRunning: stopErr == nil,
		Stop:       stopResult,
		Start:      startResult,
	}, nil
}

// BuildStatusSnapshot collects daemon status, falling back to a direct queue
// read when the daemon is offline.
func BuildStatusSnapshot(ctx context.Context, socketPath string, cfg *config.Config) (*ipc.StatusResponse, error) {
	if cfg == nil {
		return nil, errors.New("configuration not available")
	}
	statusResp := &ipc.StatusResponse{}

	client, err := ipc.Dial(socketPath)
	if err == nil {
		defer client.Close()
		if resp, statusErr := client.Status(); statusErr == nil && resp != nil {
			statusResp = resp
		}
	}

	if !statusResp.Running {
		queryCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		store, openErr := queue.Open(cfg)
		if openErr == nil {
			stats, statsErr := store.Stats(queryCtx)
			_ = store.Close()
			if statsErr == nil {
				queueStats := make(map[string]int, len(stats))
				for status, count := range stats {
					queueStats[string(status)] = count
				}
				statusResp.QueueStats = queueStats
			}
		}
	}

	return statusResp, nil
}

func isDaemonUnavailable(err error) bool {
	return os.IsNotExist(err) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, syscall.ENOENT) ||
		errors.Is(err, syscall.ECONNREFUSED)
}
