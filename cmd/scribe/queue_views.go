package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"scribe/internal/ipc"
)

func buildQueueStatusRows(stats map[string]int) [][]string {
	if len(stats) == 0 {
		return nil
	}
	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{formatStatusLabel(key), fmt.Sprintf("%d", stats[key])})
	}
	return rows
}

func buildQueueListRows(items []ipc.QueueItem) [][]string {
	if len(items) == 0 {
		return nil
	}
	sorted := make([]ipc.QueueItem, len(items))
	copy(sorted, items)

	sort.Slice(sorted, func(i, j int) bool {
		ti := parseQueueTime(sorted[i].CreatedAt)
		tj := parseQueueTime(sorted[j].CreatedAt)
		if ti.Equal(tj) {
			return sorted[i].ID > sorted[j].ID
		}
		return ti.After(tj)
	})

	rows := make([][]string, 0, len(sorted))
	for _, item := range sorted {
		rows = append(rows, []string{
			fmt.Sprintf("%d", item.ID),
			queueItemTitle(item),
			formatStatusLabel(item.Status),
			formatLanguage(item.Language),
			formatDisplayTime(item.CreatedAt),
		})
	}
	return rows
}

func queueItemTitle(item ipc.QueueItem) string {
	title := strings.TrimSpace(item.Title)
	if title != "" {
		return title
	}
	source := strings.TrimSpace(item.SourcePath)
	if source != "" {
		return filepath.Base(source)
	}
	return "Unknown"
}

func formatStatusLabel(status string) string {
	status = strings.TrimSpace(status)
	if status == "" {
		return ""
	}
	parts := strings.Split(status, "_")
	for i, part := range parts {
		lower := strings.ToLower(part)
		if lower == "" {
			continue
		}
		parts[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(parts, " ")
}

func formatLanguage(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "-"
	}
	return value
}

func formatDisplayTime(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC().Format("2006-01-02 15:04")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC().Format("2006-01-02 15:04")
	}
	return value
}

func parseQueueTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t
	}
	return time.Time{}
}
