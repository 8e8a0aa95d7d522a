package preflight

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sys/unix"

	"scribe/internal/config"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDiskSpace verifies the filesystem holding path has at least minBytes free.
func CheckDiskSpace(name, path string, minBytes uint64) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	if free < minBytes {
		return Result{Name: name, Detail: fmt.Sprintf("%s (%.1f GiB free, need %.1f GiB)",
			path, float64(free)/(1<<30), float64(minBytes)/(1<<30))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%.1f GiB free)", path, float64(free)/(1<<30))}
}

// CheckOpenAI verifies the hosted transcription API is reachable and the key
// is accepted. Single attempt with a short timeout.
func CheckOpenAI(ctx context.Context, cfg config.OpenAI) Result {
	const name = "OpenAI API"

	if strings.TrimSpace(cfg.APIKey) == "" {
		return Result{Name: name, Detail: "API key missing"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if strings.TrimSpace(cfg.BaseURL) != "" {
		clientConfig.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	}
	client := openai.NewClientWithConfig(clientConfig)

	if _, err := client.ListModels(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeAPIError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "API reachable"}
}

func summarizeAPIError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "401"):
		return "auth failed (invalid api key)"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline"):
		return "API unreachable (timeout)"
	default:
		if len(msg) > 120 {
			msg = msg[:120]
		}
		return fmt.Sprintf("API check failed (%s)", msg)
	}
}
