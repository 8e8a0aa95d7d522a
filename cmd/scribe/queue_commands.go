package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/ipc"
	"scribe/internal/queue"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage the work queue",
	}

	queueCmd.AddCommand(newQueueStatusCommand(ctx))
	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueDescribeCommand(ctx))
	queueCmd.AddCommand(newQueueClearCommand(ctx))
	queueCmd.AddCommand(newQueueClearFailedCommand(ctx))
	queueCmd.AddCommand(newQueueRemoveCommand(ctx))
	queueCmd.AddCommand(newQueueResetCommand(ctx))
	queueCmd.AddCommand(newQueueRetryCommand(ctx))
	queueCmd.AddCommand(newQueueHealthCommand(ctx))

	return queueCmd
}

func newQueueStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show queue status summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(client *ipc.Client, store *queue.Store) error {
				stats := make(map[string]int)
				if client != nil {
					status, err := client.Status()
					if err != nil {
						return err
					}
					for key, count := range status.QueueStats {
						stats[key] = count
					}
				} else {
					storeStats, err := store.Stats(cmd.Context())
					if err != nil {
						return err
					}
					for status, count := range storeStats {
						stats[string(status)] = count
					}
				}

				rows := buildQueueStatusRows(stats)
				if len(rows) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
					return nil
				}
				table := renderTable([]string{"Status", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
				fmt.Fprint(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var listStatuses []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queue items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(client *ipc.Client, store *queue.Store) error {
				var wireItems []ipc.QueueItem
				if client != nil {
					resp, err := client.QueueList(listStatuses)
					if err != nil {
						return err
					}
					wireItems = resp.Items
				} else {
					statuses := make([]queue.Status, 0, len(listStatuses))
					for _, value := range listStatuses {
						status, ok := queue.ParseStatus(value)
						if !ok {
							return fmt.Errorf("unknown queue status %q", value)
						}
						statuses = append(statuses, status)
					}

					items, err := store.List(cmd.Context(), statuses...)
					if err != nil {
						return err
					}
					wireItems = make([]ipc.QueueItem, 0, len(items))
					for _, item := range items {
						wireItems = append(wireItems, ipc.FromQueueItem(item))
					}
				}

				if len(wireItems) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
					return nil
				}
				table := renderTable(
					[]string{"ID", "Title", "Status", "Language", "Created"},
					buildQueueListRows(wireItems),
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprint(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVarP(&listStatuses, "status", "s", nil, "Filter by queue status (repeatable)")
	return cmd
}

func newQueueDescribeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <itemID>",
		Short: "Show details for a queue item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			return ctx.withStore(func(client *ipc.Client, store *queue.Store) error {
				var item ipc.QueueItem
				if client != nil {
					resp, err := client.QueueDescribe(id)
					if err != nil {
						return err
					}
					item = resp.Item
				} else {
					stored, err := store.GetByID(cmd.Context(), id)
					if err != nil {
						return err
					}
					if stored == nil {
						return fmt.Errorf("queue item %d not found", id)
					}
					item = ipc.FromQueueItem(stored)
				}

				printQueueItemDetail(cmd, item)
				return nil
			})
		},
	}
}

func printQueueItemDetail(cmd *cobra.Command, item ipc.QueueItem) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Item #%d\n", item.ID)
	fmt.Fprintf(out, "  Title:       %s\n", queueItemTitle(item))
	fmt.Fprintf(out, "  Status:      %s\n", formatStatusLabel(item.Status))
	fmt.Fprintf(out, "  Source:      %s\n", item.SourcePath)
	if item.Language != "" {
		fmt.Fprintf(out, "  Language:    %s\n", item.Language)
	}
	if item.Engine != "" {
		fmt.Fprintf(out, "  Engine:      %s\n", item.Engine)
	}
	if item.TranscriptFile != "" {
		fmt.Fprintf(out, "  Transcript:  %s\n", item.TranscriptFile)
	}
	if item.FinalAudioFile != "" {
		fmt.Fprintf(out, "  Audio:       %s\n", item.FinalAudioFile)
	}
	if item.ProgressStage != "" {
		fmt.Fprintf(out, "  Progress:    %s %.0f%% %s\n", item.ProgressStage, item.ProgressPercent, item.ProgressMessage)
	}
	if item.NeedsReview {
		fmt.Fprintf(out, "  Review:      %s\n", item.ReviewReason)
	}
	if item.ErrorMessage != "" {
		fmt.Fprintf(out, "  Error:       %s\n", item.ErrorMessage)
	}
	fmt.Fprintf(out, "  Created:     %s\n", formatDisplayTime(item.CreatedAt))
	fmt.Fprintf(out, "  Updated:     %s\n", formatDisplayTime(item.UpdatedAt))
}

func newQueueClearCommand(ctx *commandContext) *cobra.Command {
	var clearCompleted bool
	var clearFailed bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove queue items",
		RunE: func(cmd *cobra.Command, args []string) error {
			if clearCompleted && clearFailed {
				return errors.New("specify only one of --completed or --failed")
			}
			return ctx.withStore(func(client *ipc.Client, store *queue.Store) error {
				out := cmd.OutOrStdout()
				var removed int64
				var label string
				var err error

				switch {
				case clearCompleted:
					label = "completed items"
					if client != nil {
						var resp *ipc.QueueClearCompletedResponse
						resp, err = client.QueueClearCompleted()
						if err == nil {
							removed = resp.Removed
						}
					} else {
						removed, err = store.ClearCompleted(cmd.Context())
					}
				case clearFailed:
					label = "failed items"
					if client != nil {
						var resp *ipc.QueueClearFailedResponse
						resp, err = client.QueueClearFailed()
						if err == nil {
							removed = resp.Removed
						}
					} else {
						removed, err = store.ClearFailed(cmd.Context())
					}
				default:
					label = "queue items"
					if client != nil {
						var resp *ipc.QueueClearResponse
						resp, err = client.QueueClear()
						if err == nil {
							removed = resp.Removed
						}
					} else {
						removed, err = store.Clear(cmd.Context())
					}
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Cleared %d %s\n", removed, label)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&clearCompleted, "completed", false, "Remove only completed items")
	cmd.Flags().BoolVar(&clearFailed, "failed", false, "Remove only failed items")
	return cmd
}

func newQueueClearFailedCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-failed",
		Short: "Remove failed queue items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(client *ipc.Client, store *queue.Store) error {
				var removed int64
				if client != nil {
					resp, err := client.QueueClearFailed()
					if err != nil {
						return err
					}
					removed = resp.Removed
				} else {
					var err error
					removed, err = store.ClearFailed(cmd.Context())
					if err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d failed items\n", removed)
				return nil
			})
		},
	}
}

func newQueueRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <itemID...>",
		Short: "Remove specific queue items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseItemIDs(args)
			if err != nil {
				return err
			}

			return ctx.withStore(func(client *ipc.Client, store *queue.Store) error {
				out := cmd.OutOrStdout()
				for _, id := range ids {
					var removed bool
					if client != nil {
						resp, err := client.QueueRemove([]int64{id})
						if err != nil {
							return err
						}
						removed = resp.Removed > 0
					} else {
						var err error
						removed, err = store.Remove(cmd.Context(), id)
						if err != nil {
							return err
						}
					}
					if removed {
						fmt.Fprintf(out, "Item %d removed\n", id)
					} else {
						fmt.Fprintf(out, "Item %d not found\n", id)
					}
				}
				return nil
			})
		},
	}
}

func newQueueResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-stuck",
		Short: "Return in-flight items to their previous status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(client *ipc.Client, store *queue.Store) error {
				var updated int64
				if client != nil {
					resp, err := client.QueueReset()
					if err != nil {
						return err
					}
					updated = resp.Updated
				} else {
					var err error
					updated, err = store.ResetStuckProcessing(cmd.Context())
					if err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reset %d items\n", updated)
				return nil
			})
		},
	}
}

func newQueueRetryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retry [itemID...]",
		Short: "Retry failed queue items",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseItemIDs(args)
			if err != nil {
				return err
			}

			return ctx.withStore(func(client *ipc.Client, store *queue.Store) error {
				out := cmd.OutOrStdout()
				if len(ids) == 0 {
					var updated int64
					if client != nil {
						resp, err := client.QueueRetry(nil)
						if err != nil {
							return err
						}
						updated = resp.Updated
					} else {
						var err error
						updated, err = store.RetryFailed(cmd.Context())
						if err != nil {
							return err
						}
					}
					fmt.Fprintf(out, "Retried %d failed items\n", updated)
					return nil
				}

				for _, id := range ids {
					item, err := describeItem(cmd, client, store, id)
					if err != nil {
						return err
					}
					if item == nil {
						fmt.Fprintf(out, "Item %d not found\n", id)
						continue
					}
					if status, ok := queue.ParseStatus(item.Status); !ok || status != queue.StatusFailed {
						fmt.Fprintf(out, "Item %d is not in failed state\n", id)
						continue
					}

					var updated int64
					if client != nil {
						resp, err := client.QueueRetry([]int64{id})
						if err != nil {
							return err
						}
						updated = resp.Updated
					} else {
						updated, err = store.RetryFailed(cmd.Context(), id)
						if err != nil {
							return err
						}
					}
					if updated > 0 {
						fmt.Fprintf(out, "Item %d reset for retry\n", id)
					} else {
						fmt.Fprintf(out, "Item %d is not in failed state\n", id)
					}
				}
				return nil
			})
		},
	}
}

func newQueueHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show queue health summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(client *ipc.Client, store *queue.Store) error {
				var total, pending, processing, failed, review, completed int
				if client != nil {
					health, err := client.QueueHealth()
					if err != nil {
						return err
					}
					total, pending, processing = health.Total, health.Pending, health.Processing
					failed, review, completed = health.Failed, health.Review, health.Completed
				} else {
					health, err := store.Health(cmd.Context())
					if err != nil {
						return err
					}
					total, pending, processing = health.Total, health.Pending, health.Processing
					failed, review, completed = health.Failed, health.Review, health.Completed
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Total: %d\nPending: %d\nProcessing: %d\nFailed: %d\nReview: %d\nCompleted: %d\n",
					total, pending, processing, failed, review, completed)
				return nil
			})
		},
	}
}

func describeItem(cmd *cobra.Command, client *ipc.Client, store *queue.Store, id int64) (*ipc.QueueItem, error) {
	if client != nil {
		resp, err := client.QueueDescribe(id)
		if err != nil {
			if strings.Contains(err.Error(), "not found") {
				return nil, nil
			}
			return nil, err
		}
		item := resp.Item
		return &item, nil
	}

	stored, err := store.GetByID(cmd.Context(), id)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, nil
	}
	item := ipc.FromQueueItem(stored)
	return &item, nil
}

func parseItemID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item id %q", arg)
	}
	return id, nil
}

func parseItemIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseItemID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
