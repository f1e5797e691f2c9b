package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestConsoleHandlerFormatsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	handler := newConsoleHandler(&buf, lvl)
	logger := slog.New(handler).With("subject", "LD4001_v1").WithGroup("scan")

	logger.Info("classified scan", "id", "4", "finding", "duplicate type")

	line := buf.String()
	for _, want := range []string{"INFO", "classified scan", "subject=LD4001_v1", "scan.id=4", `scan.finding="duplicate type"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in output, got %q", want, line)
		}
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	handler := newConsoleHandler(&buf, lvl)

	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("info should be disabled at warn level")
	}
	record := slog.NewRecord(time.Now(), slog.LevelError, "write failed", 0)
	if err := handler.Handle(context.Background(), record); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !strings.Contains(buf.String(), "ERROR write failed") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
