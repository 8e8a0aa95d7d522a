package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"scribe/internal/daemonctl"
	"scribe/internal/deps"
	"scribe/internal/preflight"
)

func newDaemonCommands(ctx *commandContext) []*cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the scribe daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			exe, err := daemonExecutable()
			if err != nil {
				return err
			}

			result, err := daemonctl.EnsureStarted(
				ctx.socketPath(),
				exe,
				daemonLaunchOptions(ctx),
				10*time.Second,
			)
			if err != nil {
				return err
			}

			if result.Launched {
				fmt.Fprintln(stdout, "Daemon not running, launching...")
			}

			switch result.State {
			case daemonctl.StartStateStarted:
				fmt.Fprintln(stdout, "Daemon started")
			case daemonctl.StartStateAlreadyRunning:
				fmt.Fprintln(stdout, "Daemon already running")
			case daemonctl.StartStateRequested:
				if strings.TrimSpace(result.Message) != "" {
					fmt.Fprintln(stdout, result.Message)
					return nil
				}
				fmt.Fprintln(stdout, "Start request sent")
			}
			return nil
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the scribe daemon (completely terminates the process)",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			result, err := daemonctl.StopAndTerminate(ctx.socketPath(), ctx.configValue(), 5*time.Second)
			if errors.Is(err, daemonctl.ErrDaemonNotRunning) {
				fmt.Fprintln(stdout, "Daemon is not running")
				return nil
			}
			if err != nil {
				return err
			}
			if !result.StopAcknowledged {
				fmt.Fprintln(stdout, "Stop request sent")
			} else {
				fmt.Fprintln(stdout, "Stopping daemon workflow...")
			}
			if result.ForcedKill && result.PID > 0 {
				fmt.Fprintf(stdout, "Stopping daemon process (pid %d)...\n", result.PID)
			}
			fmt.Fprintln(stdout, "Daemon stopped")
			return nil
		},
	}

	restartCmd := &cobra.Command{
		Use:   "restart",
		Short: "Restart the scribe daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			exe, err := daemonExecutable()
			if err != nil {
				return err
			}

			result, err := daemonctl.Restart(
				ctx.socketPath(),
				ctx.configValue(),
				exe,
				daemonLaunchOptions(ctx),
				5*time.Second,
				10*time.Second,
			)
			if err != nil {
				return err
			}

			if result.WasRunning {
				if result.Stop.ForcedKill && result.Stop.PID > 0 {
					fmt.Fprintf(stdout, "Stopping daemon process (pid %d)...\n", result.Stop.PID)
				}
				fmt.Fprintln(stdout, "Daemon stopped")
			}

			switch result.Start.State {
			case daemonctl.StartStateStarted, daemonctl.StartStateAlreadyRunning:
				fmt.Fprintln(stdout, "Daemon restarted")
			case daemonctl.StartStateRequested:
				if strings.TrimSpace(result.Start.Message) != "" {
					fmt.Fprintln(stdout, result.Start.Message)
					return nil
				}
				fmt.Fprintln(stdout, "Start request sent")
			}
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show system and queue status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatusCommand(ctx, cmd)
		},
	}

	return []*cobra.Command{startCmd, stopCmd, restartCmd, statusCmd}
}

func runStatusCommand(ctx *commandContext, cmd *cobra.Command) error {
	cfg := ctx.configValue()
	snapshot, err := daemonctl.BuildStatusSnapshot(cmd.Context(), ctx.socketPath(), cfg)
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	colorize := shouldColorize(stdout)

	for _, line := range renderSectionHeader("System Status", colorize) {
		fmt.Fprintln(stdout, line)
	}
	runningKind := statusWarn
	runningDetail := "stopped"
	if snapshot.Running {
		runningKind = statusOK
		runningDetail = fmt.Sprintf("running (pid %d)", snapshot.PID)
	}
	fmt.Fprintln(stdout, renderStatusLine("Daemon", runningKind, runningDetail, colorize))
	if snapshot.LockPath != "" {
		fmt.Fprintln(stdout, renderStatusLine("Lock file", statusInfo, snapshot.LockPath, colorize))
	}
	if snapshot.QueueDBPath != "" {
		fmt.Fprintln(stdout, renderStatusLine("Queue database", statusInfo, snapshot.QueueDBPath, colorize))
	}
	if snapshot.LastError != "" {
		fmt.Fprintln(stdout, renderStatusLine("Last error", statusError, snapshot.LastError, colorize))
	}
	fmt.Fprintln(stdout)

	for _, line := range renderSectionHeader("Dependencies", colorize) {
		fmt.Fprintln(stdout, line)
	}
	for _, line := range dependencyLines(deps.Check(cfg), colorize) {
		fmt.Fprintln(stdout, line)
	}
	fmt.Fprintln(stdout)

	for _, line := range renderSectionHeader("Preflight", colorize) {
		fmt.Fprintln(stdout, line)
	}
	for _, result := range preflight.RunAll(cmd.Context(), cfg) {
		kind := statusOK
		if !result.Passed {
			kind = statusError
		}
		fmt.Fprintln(stdout, renderStatusLine(result.Name, kind, result.Detail, colorize))
	}
	fmt.Fprintln(stdout)

	if len(snapshot.StageHealth) > 0 {
		for _, line := range renderSectionHeader("Stage Health", colorize) {
			fmt.Fprintln(stdout, line)
		}
		for _, stage := range snapshot.StageHealth {
			kind := statusOK
			detail := "ready"
			if !stage.Ready {
				kind = statusWarn
				detail = stage.Detail
			}
			fmt.Fprintln(stdout, renderStatusLine(stage.Name, kind, detail, colorize))
		}
		fmt.Fprintln(stdout)
	}

	for _, line := range renderSectionHeader("Queue Status", colorize) {
		fmt.Fprintln(stdout, line)
	}
	rows := buildQueueStatusRows(snapshot.QueueStats)
	if len(rows) == 0 {
		fmt.Fprintln(stdout, "Queue is empty")
		return nil
	}
	fmt.Fprint(stdout, renderTable([]string{"Status", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
	return nil
}

func dependencyLines(statuses []deps.Status, colorize bool) []string {
	lines := make([]string, 0, len(statuses)+1)
	missing := make([]string, 0)
	for _, dep := range statuses {
		if dep.Available {
			message := "Ready"
			if dep.Command != "" {
				message = fmt.Sprintf("Ready (command: %s)", dep.Command)
			}
			lines = append(lines, renderStatusLine(dep.Name, statusOK, message, colorize))
			continue
		}

		detail := strings.TrimSpace(dep.Detail)
		if detail == "" {
			detail = "not available"
		}
		kind := statusError
		if dep.Optional {
			kind = statusWarn
		}
		lines = append(lines, renderStatusLine(dep.Name, kind, detail, colorize))
		if !dep.Optional {
			missing = append(missing, dep.Name)
		}
	}
	if len(missing) > 0 {
		lines = append(lines, renderStatusLine("Missing dependencies", statusWarn, strings.Join(missing, ", "), colorize))
	}
	return lines
}

func daemonExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	return exe, nil
}

func daemonLaunchOptions(ctx *commandContext) daemonctl.LaunchOptions {
	opts := daemonctl.LaunchOptions{}
	if ctx.socketFlag != nil {
		if socket := strings.TrimSpace(*ctx.socketFlag); socket != "" {
			opts.SocketPath = socket
		}
	}
	if ctx.configFlag != nil {
		if config := strings.TrimSpace(*ctx.configFlag); config != "" {
			opts.ConfigPath = config
		}
	}
	return opts
}
