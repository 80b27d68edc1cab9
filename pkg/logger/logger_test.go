package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func TestGetSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"Warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range cases {
		if got := getSlogLevel(in); got != want {
			t.Errorf("getSlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCloudRunHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newCloudRunHandler(slog.LevelInfo, &buf)).With("uid", "u1")

	log.Warn("failed to load dashboard layout, using defaults", "error", errors.New("boom"))

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("expected json line, got %q: %v", buf.String(), err)
	}
	if event["severity"] != "WARNING" {
		t.Errorf("expected WARNING severity, got %v", event["severity"])
	}
	data, _ := event["data"].(map[string]any)
	if data["uid"] != "u1" || data["error"] != "boom" {
		t.Errorf("unexpected data %v", data)
	}
}

func TestCloudRunHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newCloudRunHandler(slog.LevelWarn, &buf))
	log.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered, got %q", buf.String())
	}
}

func TestContext_RoundTrip(t *testing.T) {
	base := slog.New(NewTestHandler(slog.LevelDebug))
	ctx := ToContext(context.Background(), base)
	if FromContext(ctx) != base {
		t.Error("expected stored logger")
	}
	if !IsDebugEnabled(ctx) {
		t.Error("expected debug enabled")
	}
	if FromContext(context.Background()) == nil {
		t.Error("expected default logger fallback")
	}

	l, ctx2 := With(ctx, "uid", "u1")
	if FromContext(ctx2) != l {
		t.Error("expected With to store enriched logger")
	}
}
