package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/ipc"
	"scribe/internal/queue"
)

type commandContext struct {
	socketFlag *string
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(socketFlag, configFlag *string) *commandContext {
	return &commandContext{
		socketFlag: socketFlag,
		configFlag: configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) socketPath() string {
	if c.socketFlag == nil {
		return c.defaultSocketPath()
	}
	if strings.TrimSpace(*c.socketFlag) == "" {
		*c.socketFlag = c.defaultSocketPath()
	}
	return *c.socketFlag
}

func (c *commandContext) withClient(fn func(*ipc.Client) error) error {
	client, err := c.dialClient()
	if err != nil {
		return err
	}
	defer client.Close()
	return fn(client)
}

// withStore runs fn with an IPC client when the daemon is reachable,
// otherwise with a directly opened queue store. Exactly one of the two
// arguments is non-nil.
func (c *commandContext) withStore(fn func(*ipc.Client, *queue.Store) error) error {
	client, err := ipc.Dial(c.socketPath())
	if err == nil {
		defer client.Close()
		return fn(client, nil)
	}
	if !isSocketUnavailable(err) {
		return wrapDialError(err, c.socketPath())
	}

	cfg, cfgErr := c.ensureConfig()
	if cfgErr != nil {
		return cfgErr
	}
	store, storeErr := queue.Open(cfg)
	if storeErr != nil {
		return fmt.Errorf("open queue store: %w", storeErr)
	}
	defer store.Close()
	return fn(nil, store)
}

func (c *commandContext) dialClient() (*ipc.Client, error) {
	socket := c.socketPath()
	client, err := ipc.Dial(socket)
	if err != nil {
		return nil, wrapDialError(err, socket)
	}
	return client, nil
}

func (c *commandContext) defaultSocketPath() string {
	cfg, err := c.ensureConfig()
	if err == nil && cfg != nil {
		return filepath.Join(cfg.Paths.LogDir, "scribe.sock")
	}

	logDir, err2 := config.ExpandPath("~/.local/share/scribe/logs")
	if err2 != nil {
		return filepath.Join(os.TempDir(), "scribe.sock")
	}
	return filepath.Join(logDir, "scribe.sock")
}

func isSocketUnavailable(err error) bool {
	return errors.Is(err, syscall.ENOENT) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, syscall.ECONNREFUSED)
}

func wrapDialError(err error, socket string) error {
	switch {
	case errors.Is(err, syscall.ENOENT) || os.IsNotExist(err):
		return fmt.Errorf("connect to daemon: socket %s not found; start the daemon with `scribe start`", socket)
	case errors.Is(err, syscall.ECONNREFUSED):
		return fmt.Errorf("connect to daemon: socket %s refused the connection; verify the daemon is running", socket)
	default:
		return fmt.Errorf("connect to daemon: %w", err)
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
