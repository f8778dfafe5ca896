package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewFanoutHandlerCollapses(t *testing.T) {
	if _, ok := newFanoutHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler for all nil handlers")
	}
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := newFanoutHandler(nil, inner); h != inner {
		t.Fatal("expected single non-nil handler to be returned unwrapped")
	}
}

func TestFanoutHandlerRoutesByLevel(t *testing.T) {
	var warnBuf, debugBuf bytes.Buffer
	warnOnly := slog.NewJSONHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn})
	everything := slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})

	logger := slog.New(newFanoutHandler(warnOnly, everything)).With("run_id", "r1")
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected fanout enabled when any child accepts debug")
	}
	logger.Debug("quiet")
	logger.Warn("loud")

	if strings.Contains(warnBuf.String(), "quiet") {
		t.Fatalf("warn handler received debug line: %q", warnBuf.String())
	}
	if !strings.Contains(warnBuf.String(), "loud") || !strings.Contains(warnBuf.String(), "r1") {
		t.Fatalf("warn handler missing warn line: %q", warnBuf.String())
	}
	if !strings.Contains(debugBuf.String(), "quiet") || !strings.Contains(debugBuf.String(), "loud") {
		t.Fatalf("debug handler missing lines: %q", debugBuf.String())
	}
}
