// Command scribed runs the scribe daemon directly, without the CLI
// wrapper. It is intended for service managers that want a single
// foreground process.
package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"scribe/internal/config"
	"scribe/internal/daemonrun"
)

func main() {
	configPath := flag.String("config", "", "Configuration file path")
	flag.Parse()

	cfg, _, _, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("ensure directories: %v", err)
	}

	err = daemonrun.Run(context.Background(), cfg, daemonrun.Options{
		LogLevel:    cfg.Logging.Level,
		Development: cfg.Logging.Format == "console",
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("run daemon: %v", err)
	}
}
