package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/deploy"
)

func newDeployCommand(ctx *commandContext) *cobra.Command {
	deployCmd := &cobra.Command{
		Use:   "deploy",
		Short: "Render and check the WordPress deployment stack",
	}

	deployCmd.AddCommand(newDeployRenderCommand(ctx))
	deployCmd.AddCommand(newDeployEnvCheckCommand(ctx))

	return deployCmd
}

func newDeployRenderCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Write docker compose files for the WordPress and whisper services",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			written, err := deploy.Render(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, path := range written {
				fmt.Fprintf(out, "Wrote %s\n", path)
			}
			if len(written) > 0 {
				fmt.Fprintf(out, "Start the stack with: docker compose -f %s up -d\n", written[0])
			}
			return nil
		},
	}
}

func newDeployEnvCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "env-check",
		Short: "Verify deployment credentials are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			missing, err := deploy.EnvCheck(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(missing) == 0 {
				fmt.Fprintln(out, "All deployment credentials are set")
				return nil
			}
			fmt.Fprintf(out, "Missing credentials: %s\n", strings.Join(missing, ", "))
			return fmt.Errorf("%d deployment credentials missing", len(missing))
		},
	}
}
