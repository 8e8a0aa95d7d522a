package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"scribe/internal/ipc"
	"scribe/internal/queue"
	"scribe/internal/watcher"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <path>",
		Short: "Add an audio file to the processing queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			info, err := os.Stat(absPath)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("file does not exist: %s", absPath)
				}
				return fmt.Errorf("inspect file: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("%s is a directory", absPath)
			}
			if !watcher.EligibleName(info.Name()) {
				return fmt.Errorf("unsupported file %q", info.Name())
			}

			return ctx.withStore(func(client *ipc.Client, store *queue.Store) error {
				var id int64
				if client != nil {
					resp, err := client.QueueAdd(absPath)
					if err != nil {
						return err
					}
					id = resp.Item.ID
				} else {
					item, err := store.NewFile(cmd.Context(), absPath)
					if err != nil {
						return err
					}
					id = item.ID
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Queued audio file as item #%d (%s)\n", id, filepath.Base(absPath))
				return nil
			})
		},
	}
}
