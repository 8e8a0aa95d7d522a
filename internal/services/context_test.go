package services_test

import (
	"context"
	"testing"

	"scribe/internal/services"
)

func TestItemIDRoundTrip(t *testing.T) {
	ctx := services.WithItemID(context.Background(), 42)
	id, ok := services.ItemIDFromContext(ctx)
	if !ok || id != 42 {
		t.Fatalf("expected item id 42, got %d (ok=%v)", id, ok)
	}
}

func TestItemIDMissing(t *testing.T) {
	if _, ok := services.ItemIDFromContext(context.Background()); ok {
		t.Fatal("expected no item id on empty context")
	}
}

func TestStageRoundTrip(t *testing.T) {
	ctx := services.WithStage(context.Background(), "transcribing")
	stage, ok := services.StageFromContext(ctx)
	if !ok || stage != "transcribing" {
		t.Fatalf("expected stage transcribing, got %q (ok=%v)", stage, ok)
	}
}

func TestStageEmptyIsNoop(t *testing.T) {
	ctx := services.WithStage(context.Background(), "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected empty stage to be ignored")
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := services.WithRequestID(context.Background(), "req-1")
	id, ok := services.RequestIDFromContext(ctx)
	if !ok || id != "req-1" {
		t.Fatalf("expected request id req-1, got %q (ok=%v)", id, ok)
	}
}
