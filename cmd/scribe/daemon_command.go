package main

import (
	"github.com/spf13/cobra"

	"scribe/internal/daemonrun"
)

func newDaemonRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:          "daemon",
		Short:        "Run the scribe daemon (internal)",
		Hidden:       true,
		Annotations:  map[string]string{"skipConfigLoad": "true"},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			opts := daemonrun.Options{
				LogLevel:    cfg.Logging.Level,
				Development: cfg.Logging.Format == "console",
			}
			if ctx.socketFlag != nil {
				opts.SocketPath = *ctx.socketFlag
			}
			return daemonrun.Run(cmd.Context(), cfg, opts)
		},
	}
}
