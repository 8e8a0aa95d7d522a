package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"scribe/internal/config"
	"scribe/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyTranscriptionCompleted(context.Background(), "Example", "en"); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

type captured struct {
	title    string
	message  string
	tags     string
	priority string
}

func newCaptureServer(t *testing.T, sink *[]captured) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		*sink = append(*sink, captured{
			title:    r.Header.Get("Title"),
			message:  string(body),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
		})
		w.WriteHeader(http.StatusOK)
	}))
}

func newTestService(t *testing.T, endpoint string) notifications.Service {
	t.Helper()
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = endpoint
	cfg.Notifications.Transcription = true
	cfg.Notifications.Organization = true
	cfg.Notifications.Errors = true
	return notifications.NewService(&cfg)
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	var received []captured
	server := newCaptureServer(t, &received)
	defer server.Close()
	svc := newTestService(t, server.URL)
	ctx := context.Background()

	tests := []struct {
		name           string
		publish        func() error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name:          "file detected",
			publish:       func() error { return svc.NotifyFileDetected(ctx, "weekly standup") },
			expectTitle:   "Scribe - File Detected",
			expectMessage: "New audio queued: weekly standup",
			expectTags:    "scribe,inbox,detected",
		},
		{
			name:          "transcription started",
			publish:       func() error { return svc.NotifyTranscriptionStarted(ctx, "weekly standup", "whisper") },
			expectTitle:   "Scribe - Transcription Started",
			expectMessage: "Started transcribing: weekly standup (whisper)",
			expectTags:    "scribe,transcribe,started",
		},
		{
			name:          "transcription completed",
			publish:       func() error { return svc.NotifyTranscriptionCompleted(ctx, "weekly standup", "en") },
			expectTitle:   "Scribe - Transcribed",
			expectMessage: "Transcription complete: weekly standup (en)",
			expectTags:    "scribe,transcribe,completed",
		},
		{
			name:           "processing completed",
			publish:        func() error { return svc.NotifyProcessingCompleted(ctx, "weekly standup", "weekly_standup.txt") },
			expectTitle:    "Scribe - Complete",
			expectMessage:  "Transcript ready: weekly standup\nFile: weekly_standup.txt",
			expectTags:     "scribe,workflow,completed",
			expectPriority: "high",
		},
		{
			name:          "review required",
			publish:       func() error { return svc.NotifyReviewRequired(ctx, "broken.mp3", "no audio stream") },
			expectTitle:   "Scribe - Review Required",
			expectMessage: "Needs review: broken.mp3\nReason: no audio stream",
			expectTags:    "scribe,review",
		},
		{
			name:           "error",
			publish:        func() error { return svc.NotifyError(ctx, errors.New("whisper crashed"), "transcribing") },
			expectTitle:    "Scribe - Error",
			expectMessage:  "Error with transcribing: whisper crashed",
			expectTags:     "scribe,error,alert",
			expectPriority: "high",
		},
		{
			name:          "queue completed with failures",
			publish:       func() error { return svc.NotifyQueueCompleted(ctx, 3, 1, 90*time.Second) },
			expectTitle:   "Scribe - Queue Complete (with errors)",
			expectMessage: "Queue processing complete: 3 succeeded, 1 failed in 1m30s",
			expectTags:    "scribe,queue,completed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			received = received[:0]
			if err := tc.publish(); err != nil {
				t.Fatalf("publish: %v", err)
			}
			if len(received) != 1 {
				t.Fatalf("expected exactly one request, got %d", len(received))
			}
			got := received[0]
			if got.title != tc.expectTitle {
				t.Fatalf("title = %q, want %q", got.title, tc.expectTitle)
			}
			if got.message != tc.expectMessage {
				t.Fatalf("message = %q, want %q", got.message, tc.expectMessage)
			}
			if got.tags != tc.expectTags {
				t.Fatalf("tags = %q, want %q", got.tags, tc.expectTags)
			}
			if got.priority != tc.expectPriority {
				t.Fatalf("priority = %q, want %q", got.priority, tc.expectPriority)
			}
		})
	}
}

func TestNtfyServiceHonorsEventToggles(t *testing.T) {
	var received []captured
	server := newCaptureServer(t, &received)
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.Transcription = false
	cfg.Notifications.Organization = false
	cfg.Notifications.Errors = false
	svc := notifications.NewService(&cfg)
	ctx := context.Background()

	if err := svc.NotifyTranscriptionStarted(ctx, "muted", "whisper"); err != nil {
		t.Fatalf("muted transcription notify: %v", err)
	}
	if err := svc.NotifyProcessingCompleted(ctx, "muted", ""); err != nil {
		t.Fatalf("muted organization notify: %v", err)
	}
	if err := svc.NotifyError(ctx, errors.New("boom"), "test"); err != nil {
		t.Fatalf("muted error notify: %v", err)
	}
	if len(received) != 0 {
		t.Fatalf("expected no requests with all toggles off, got %d", len(received))
	}

	if err := svc.TestNotification(ctx); err != nil {
		t.Fatalf("test notification: %v", err)
	}
	if len(received) != 1 {
		t.Fatalf("expected test notification to bypass toggles, got %d requests", len(received))
	}
}

func TestNtfyServiceSurfacesHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)
	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
