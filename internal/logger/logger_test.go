package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	t.Setenv("FACTCHECK_LOG_LEVEL", "")
	t.Setenv("FACTCHECK_LOG_FORMAT", "")

	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info", "json")
	l.Debug("hidden")
	l.Info("kb request", "id", "Q7842")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}

	var rec map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if rec["msg"] != "kb request" || rec["id"] != "Q7842" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestNewWithWriter_EnvOverride(t *testing.T) {
	t.Setenv("FACTCHECK_LOG_LEVEL", "debug")
	t.Setenv("FACTCHECK_LOG_FORMAT", "text")

	var buf bytes.Buffer
	l := NewWithWriter(&buf, "error", "json")
	l.Debug("visible")

	out := buf.String()
	if !strings.Contains(out, "msg=visible") {
		t.Errorf("expected text debug output, got %q", out)
	}
}
