package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"scribe/internal/config"
	"scribe/internal/daemon"
	"scribe/internal/ipc"
	"scribe/internal/logging"
	"scribe/internal/queue"
	"scribe/internal/stage"
	"scribe/internal/testsupport"
	"scribe/internal/workflow"
)

type idleStage struct{}

func (idleStage) Prepare(context.Context, *queue.Item) error { return nil }

func (idleStage) Execute(context.Context, *queue.Item) error { return nil }

func (idleStage) HealthCheck(context.Context) stage.Health { return stage.Healthy("idle") }

type cliTestEnv struct {
	cfg        *config.Config
	store      *queue.Store
	daemon     *daemon.Daemon
	server     *ipc.Server
	socketPath string
	configPath string
	cancel     context.CancelFunc
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	configPath := filepath.Join(cfg.Paths.LogDir, "config.toml")
	writeTestConfig(t, configPath, cfg)

	store := testsupport.MustOpenStore(t, cfg)
	logger := logging.NewNop()

	mgr := workflow.NewManager(cfg, store, logger)
	mgr.ConfigureStages(workflow.StageSet{
		Inspector:   idleStage{},
		Transcriber: idleStage{},
		Organizer:   idleStage{},
	})

	d, err := daemon.New(cfg, store, logger, mgr, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	socketPath := filepath.Join(cfg.Paths.LogDir, "cli.sock")
	srv, err := ipc.NewServer(ctx, socketPath, d, logger)
	if err != nil {
		cancel()
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("unix sockets unavailable: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()

	env := &cliTestEnv{
		cfg:        cfg,
		store:      store,
		daemon:     d,
		server:     srv,
		socketPath: socketPath,
		configPath: configPath,
		cancel:     cancel,
	}

	t.Cleanup(func() {
		cancel()
		srv.Close()
		d.Close()
	})

	return env
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()

	encoded, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	testsupport.WriteFile(t, path, string(encoded))
}

func runCLI(t *testing.T, args []string, socket, configPath string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--socket", socket}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
