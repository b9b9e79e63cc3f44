package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	if logger == nil {
		t.Fatal("NewLogger() returned nil")
	}
	if logger.Logger == nil {
		t.Fatal("Logger.Logger is nil")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected slog.Level
	}{
		{"debug level", "DEBUG", slog.LevelDebug},
		{"info level", "INFO", slog.LevelInfo},
		{"warn level", "WARN", slog.LevelWarn},
		{"warning level", "WARNING", slog.LevelWarn},
		{"error level", "ERROR", slog.LevelError},
		{"lowercase debug", "debug", slog.LevelDebug},
		{"padded", "  warn ", slog.LevelWarn},
		{"invalid level", "INVALID", slog.LevelInfo},
		{"empty value", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if level := ParseLevel(tt.value); level != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.value, level, tt.expected)
			}
		})
	}
}

func TestLogLevelFromEnv(t *testing.T) {
	original := os.Getenv(EnvLogLevel)
	defer os.Setenv(EnvLogLevel, original)

	os.Setenv(EnvLogLevel, "error")
	if level := getLogLevelFromEnv(); level != slog.LevelError {
		t.Errorf("getLogLevelFromEnv() = %v, want %v", level, slog.LevelError)
	}
}

func TestFormatFromEnv(t *testing.T) {
	original := os.Getenv(EnvLogFormat)
	defer os.Setenv(EnvLogFormat, original)

	tests := []struct {
		value    string
		expected Format
	}{
		{"text", FormatText},
		{"TEXT", FormatText},
		{"json", FormatJSON},
		{"", FormatJSON},
		{"yaml", FormatJSON},
	}
	for _, tt := range tests {
		os.Setenv(EnvLogFormat, tt.value)
		if got := getFormatFromEnv(); got != tt.expected {
			t.Errorf("getFormatFromEnv() with %q = %v, want %v", tt.value, got, tt.expected)
		}
	}
}

func TestRunID(t *testing.T) {
	t.Run("generate run ID", func(t *testing.T) {
		id1 := GenerateRunID()
		id2 := GenerateRunID()
		if id1 == id2 {
			t.Error("GenerateRunID() returned duplicate IDs")
		}
		if len(id1) != 16 {
			t.Errorf("GenerateRunID() returned wrong length: %d", len(id1))
		}
	})

	t.Run("context with run ID", func(t *testing.T) {
		ctx := WithRunID(context.Background(), "run-1")
		if got := GetRunID(ctx); got != "run-1" {
			t.Errorf("GetRunID() = %q, want %q", got, "run-1")
		}
	})

	t.Run("context without run ID", func(t *testing.T) {
		if got := GetRunID(context.Background()); got != "" {
			t.Errorf("GetRunID() = %q, want empty string", got)
		}
	})

	t.Run("auto-generate run ID", func(t *testing.T) {
		ctx := WithRunID(context.Background(), "")
		if got := GetRunID(ctx); len(got) != 16 {
			t.Errorf("auto-generated run ID has wrong length: %d", len(got))
		}
	})
}

func TestLoggerMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelDebug, FormatJSON)
	ctx := WithRunID(context.Background(), "test-run")

	decode := func(t *testing.T) map[string]interface{} {
		t.Helper()
		var entry map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("Failed to parse log JSON: %v", err)
		}
		return entry
	}

	t.Run("info logging", func(t *testing.T) {
		buf.Reset()
		logger.Info(ctx, "ship landed", "tick", 42)
		entry := decode(t)
		if entry["msg"] != "ship landed" {
			t.Errorf("msg = %v, want %q", entry["msg"], "ship landed")
		}
		if entry["level"] != "INFO" {
			t.Errorf("level = %v, want INFO", entry["level"])
		}
		if entry["run_id"] != "test-run" {
			t.Errorf("run_id = %v, want test-run", entry["run_id"])
		}
		if entry["tick"] != float64(42) {
			t.Errorf("tick = %v, want 42", entry["tick"])
		}
	})

	t.Run("error logging", func(t *testing.T) {
		buf.Reset()
		logger.Error(ctx, "present failed", errors.New("lost context"))
		entry := decode(t)
		if entry["level"] != "ERROR" {
			t.Errorf("level = %v, want ERROR", entry["level"])
		}
		if entry["error"] != "lost context" {
			t.Errorf("error = %v, want %q", entry["error"], "lost context")
		}
	})

	t.Run("debug logging", func(t *testing.T) {
		buf.Reset()
		logger.Debug(ctx, "draw")
		if entry := decode(t); entry["level"] != "DEBUG" {
			t.Errorf("level = %v, want DEBUG", entry["level"])
		}
	})

	t.Run("warn logging", func(t *testing.T) {
		buf.Reset()
		logger.Warn(ctx, "no line vertices set")
		if entry := decode(t); entry["level"] != "WARN" {
			t.Errorf("level = %v, want WARN", entry["level"])
		}
	})
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, FormatText)
	logger.Info(context.Background(), "gear deployed", "step", 200)

	out := buf.String()
	if !strings.Contains(out, "gear deployed") {
		t.Errorf("text output %q does not contain message", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("text output looks like JSON: %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn, FormatJSON)
	logger.Info(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Errorf("info record written at warn level: %q", buf.String())
	}
}

func TestWrapError(t *testing.T) {
	t.Run("wrap nil error", func(t *testing.T) {
		if result := WrapError(nil, "context"); result != nil {
			t.Errorf("WrapError(nil) should return nil, got %v", result)
		}
	})

	t.Run("wrap error with formatted context", func(t *testing.T) {
		originalErr := errors.New("original error")
		wrapped := WrapError(originalErr, "load %s", "props.yaml")

		expected := "load props.yaml: original error"
		if wrapped.Error() != expected {
			t.Errorf("WrapError() = %q, want %q", wrapped.Error(), expected)
		}
		if !errors.Is(wrapped, originalErr) {
			t.Error("WrapError() should preserve original error")
		}
	})
}

func TestLogWithoutRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, FormatJSON)
	logger.Info(context.Background(), "test message")

	if strings.Contains(buf.String(), "run_id") {
		t.Error("Log should not contain run_id when none is set in context")
	}
}
