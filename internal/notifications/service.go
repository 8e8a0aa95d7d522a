package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"scribe/internal/config"
)

const userAgent = "Scribe-Go/0.1.0"

// Service defines the notification surface exposed to workflow components.
type Service interface {
	NotifyFileDetected(ctx context.Context, title string) error
	NotifyTranscriptionStarted(ctx context.Context, title, engine string) error
	NotifyTranscriptionCompleted(ctx context.Context, title, language string) error
	NotifyProcessingCompleted(ctx context.Context, title, transcriptFile string) error
	NotifyReviewRequired(ctx context.Context, filename, reason string) error
	NotifyError(ctx context.Context, err error, context string) error
	NotifyQueueCompleted(ctx context.Context, processed, failed int, duration time.Duration) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:      topic,
		client:        &http.Client{Timeout: timeout},
		transcription: cfg.Notifications.Transcription,
		organization:  cfg.Notifications.Organization,
		errors:        cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint      string
	client        *http.Client
	transcription bool
	organization  bool
	errors        bool
}

func (n *ntfyService) NotifyFileDetected(ctx context.Context, title string) error {
	if !n.transcription {
		return nil
	}
	data := payload{
		title:   "Scribe - File Detected",
		message: fmt.Sprintf("New audio queued: %s", strings.TrimSpace(title)),
		tags:    []string{"scribe", "inbox", "detected"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyTranscriptionStarted(ctx context.Context, title, engine string) error {
	if !n.transcription {
		return nil
	}
	engine = strings.TrimSpace(engine)
	if engine == "" {
		engine = "unknown"
	}
	data := payload{
		title:   "Scribe - Transcription Started",
		message: fmt.Sprintf("Started transcribing: %s (%s)", strings.TrimSpace(title), engine),
		tags:    []string{"scribe", "transcribe", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyTranscriptionCompleted(ctx context.Context, title, language string) error {
	if !n.transcription {
		return nil
	}
	message := fmt.Sprintf("Transcription complete: %s", strings.TrimSpace(title))
	if language = strings.TrimSpace(language); language != "" {
		message = fmt.Sprintf("%s (%s)", message, language)
	}
	data := payload{
		title:   "Scribe - Transcribed",
		message: message,
		tags:    []string{"scribe", "transcribe", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyProcessingCompleted(ctx context.Context, title, transcriptFile string) error {
	if !n.organization {
		return nil
	}
	message := fmt.Sprintf("Transcript ready: %s", strings.TrimSpace(title))
	if transcriptFile = strings.TrimSpace(transcriptFile); transcriptFile != "" {
		message = fmt.Sprintf("%s\nFile: %s", message, transcriptFile)
	}
	data := payload{
		title:    "Scribe - Complete",
		message:  message,
		tags:     []string{"scribe", "workflow", "completed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyReviewRequired(ctx context.Context, filename, reason string) error {
	if !n.errors {
		return nil
	}
	message := fmt.Sprintf("Needs review: %s", strings.TrimSpace(filename))
	if reason = strings.TrimSpace(reason); reason != "" {
		message = fmt.Sprintf("%s\nReason: %s", message, reason)
	}
	data := payload{
		title:   "Scribe - Review Required",
		message: message,
		tags:    []string{"scribe", "review"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Scribe - Error",
		message:  builder.String(),
		tags:     []string{"scribe", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyQueueCompleted(ctx context.Context, processed, failed int, duration time.Duration) error {
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}

	var title, message string
	if failed == 0 {
		title = "Scribe - Queue Complete"
		message = fmt.Sprintf("Queue processing complete: %d items processed in %s", processed, duration)
	} else {
		title = "Scribe - Queue Complete (with errors)"
		message = fmt.Sprintf("Queue processing complete: %d succeeded, %d failed in %s", processed, failed, duration)
	}

	data := payload{
		title:   title,
		message: message,
		tags:    []string{"scribe", "queue", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Scribe - Test",
		message:  "Notification system test",
		tags:     []string{"scribe", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyFileDetected(context.Context, string) error                    { return nil }
func (noopService) NotifyTranscriptionStarted(context.Context, string, string) error    { return nil }
func (noopService) NotifyTranscriptionCompleted(context.Context, string, string) error  { return nil }
func (noopService) NotifyProcessingCompleted(context.Context, string, string) error     { return nil }
func (noopService) NotifyReviewRequired(context.Context, string, string) error          { return nil }
func (noopService) NotifyError(context.Context, error, string) error                    { return nil }
func (noopService) NotifyQueueCompleted(context.Context, int, int, time.Duration) error { return nil }
func (noopService) TestNotification(context.Context) error                              { return nil }
