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

func TestLogLevelFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected slog.Level
	}{
		{"debug level", "DEBUG", slog.LevelDebug},
		{"info level", "INFO", slog.LevelInfo},
		{"warn level", "WARN", slog.LevelWarn},
		{"warning level", "WARNING", slog.LevelWarn},
		{"error level", "ERROR", slog.LevelError},
		{"lowercase debug", "debug", slog.LevelDebug},
		{"mixed case", "Info", slog.LevelInfo},
		{"invalid level", "INVALID", slog.LevelInfo},
		{"empty value", "", slog.LevelInfo},
	}

	originalLevel := os.Getenv("GUNSHIP_LOG_LEVEL")
	defer os.Setenv("GUNSHIP_LOG_LEVEL", originalLevel)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("GUNSHIP_LOG_LEVEL", tt.envValue)
			level := getLogLevelFromEnv()
			if level != tt.expected {
				t.Errorf("getLogLevelFromEnv() = %v, want %v", level, tt.expected)
			}
		})
	}
}

func TestRunID(t *testing.T) {
	t.Run("generate run ID", func(t *testing.T) {
		id1 := GenerateRunID()
		id2 := GenerateRunID()

		if id1 == "" {
			t.Error("GenerateRunID() returned empty string")
		}
		if id2 == "" {
			t.Error("GenerateRunID() returned empty string")
		}
		if id1 == id2 {
			t.Error("GenerateRunID() returned duplicate IDs")
		}
		if len(id1) != 16 { // 8 bytes = 16 hex characters
			t.Errorf("GenerateRunID() returned wrong length: %d", len(id1))
		}
	})

	t.Run("context with run ID", func(t *testing.T) {
		ctx := context.Background()
		expectedID := "test-run-id"

		ctx = WithRunID(ctx, expectedID)
		actualID := GetRunID(ctx)

		if actualID != expectedID {
			t.Errorf("GetRunID() = %q, want %q", actualID, expectedID)
		}
	})

	t.Run("context without run ID", func(t *testing.T) {
		ctx := context.Background()
		id := GetRunID(ctx)

		if id != "" {
			t.Errorf("GetRunID() = %q, want empty string", id)
		}
	})

	t.Run("auto-generate run ID", func(t *testing.T) {
		ctx := context.Background()
		ctx = WithRunID(ctx, "")

		id := GetRunID(ctx)
		if id == "" {
			t.Error("WithRunID() with empty string should auto-generate ID")
		}
		if len(id) != 16 {
			t.Errorf("Auto-generated run ID has wrong length: %d", len(id))
		}
	})
}

func TestSanitizeAttributes(t *testing.T) {
	tests := []struct {
		name     string
		attr     slog.Attr
		expected string
	}{
		{
			"password field",
			slog.String("password", "secret123"),
			"[REDACTED]",
		},
		{
			"token field",
			slog.String("auth_token", "bearer-token"),
			"[REDACTED]",
		},
		{
			"secret field",
			slog.String("api_secret", "my-secret"),
			"[REDACTED]",
		},
		{
			"normal field",
			slog.String("ship_id", "7"),
			"7",
		},
		{
			"run id is not masked",
			slog.String("run_id", "abc123"),
			"abc123",
		},
		{
			"case insensitive password",
			slog.String("PASSWORD", "secret123"),
			"[REDACTED]",
		},
		{
			"partial match authorization",
			slog.String("authorization_header", "Bearer token"),
			"[REDACTED]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := sanitizeAttributes(nil, tt.attr)
			if result.Value.String() != tt.expected {
				t.Errorf("sanitizeAttributes() = %q, want %q", result.Value.String(), tt.expected)
			}
		})
	}
}

func TestLoggerMethods(t *testing.T) {
	var buf bytes.Buffer

	// Create a logger that writes to our buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	logger := &Logger{slog.New(handler)}

	ctx := WithRunID(context.Background(), "test-id-123")

	t.Run("info logging", func(t *testing.T) {
		buf.Reset()
		logger.Info(ctx, "test info message", "key", "value")

		var logEntry map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
			t.Fatalf("Failed to parse log JSON: %v", err)
		}

		if logEntry["msg"] != "test info message" {
			t.Errorf("Expected message 'test info message', got %v", logEntry["msg"])
		}
		if logEntry["level"] != "INFO" {
			t.Errorf("Expected level 'INFO', got %v", logEntry["level"])
		}
		if logEntry["run_id"] != "test-id-123" {
			t.Errorf("Expected run_id 'test-id-123', got %v", logEntry["run_id"])
		}
		if logEntry["key"] != "value" {
			t.Errorf("Expected key 'value', got %v", logEntry["key"])
		}
	})

	t.Run("error logging", func(t *testing.T) {
		buf.Reset()
		testErr := errors.New("test error")
		logger.Error(ctx, "test error message", testErr, "context", "test")

		var logEntry map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
			t.Fatalf("Failed to parse log JSON: %v", err)
		}

		if logEntry["msg"] != "test error message" {
			t.Errorf("Expected message 'test error message', got %v", logEntry["msg"])
		}
		if logEntry["level"] != "ERROR" {
			t.Errorf("Expected level 'ERROR', got %v", logEntry["level"])
		}
		if logEntry["error"] != "test error" {
			t.Errorf("Expected error 'test error', got %v", logEntry["error"])
		}
	})

	t.Run("debug logging", func(t *testing.T) {
		buf.Reset()
		logger.Debug(ctx, "debug message", "debug_key", "debug_value")

		var logEntry map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
			t.Fatalf("Failed to parse log JSON: %v", err)
		}

		if logEntry["level"] != "DEBUG" {
			t.Errorf("Expected level 'DEBUG', got %v", logEntry["level"])
		}
	})

	t.Run("warn logging", func(t *testing.T) {
		buf.Reset()
		logger.Warn(ctx, "warning message", "warn_key", "warn_value")

		var logEntry map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
			t.Fatalf("Failed to parse log JSON: %v", err)
		}

		if logEntry["level"] != "WARN" {
			t.Errorf("Expected level 'WARN', got %v", logEntry["level"])
		}
	})
}

func TestWrapError(t *testing.T) {
	t.Run("wrap nil error", func(t *testing.T) {
		result := WrapError(nil, "context")
		if result != nil {
			t.Errorf("WrapError(nil) should return nil, got %v", result)
		}
	})

	t.Run("wrap error with context", func(t *testing.T) {
		originalErr := errors.New("original error")
		wrapped := WrapError(originalErr, "additional context")

		expectedMsg := "additional context: original error"
		if wrapped.Error() != expectedMsg {
			t.Errorf("WrapError() = %q, want %q", wrapped.Error(), expectedMsg)
		}

		// Test that the original error is preserved
		if !errors.Is(wrapped, originalErr) {
			t.Error("WrapError() should preserve original error")
		}
	})

	t.Run("wrap error with formatted context", func(t *testing.T) {
		originalErr := errors.New("original error")
		wrapped := WrapError(originalErr, "context with %s and %d", "string", 42)

		expectedMsg := "context with string and 42: original error"
		if wrapped.Error() != expectedMsg {
			t.Errorf("WrapError() = %q, want %q", wrapped.Error(), expectedMsg)
		}
	})
}

func TestLogWithoutRunID(t *testing.T) {
	var buf bytes.Buffer

	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	logger := &Logger{slog.New(handler)}

	ctx := context.Background() // No run ID
	logger.Info(ctx, "test message")

	logOutput := buf.String()
	if strings.Contains(logOutput, "run_id") {
		t.Error("Log should not contain run_id when none is set in context")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.name); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestNewLoggerTo(t *testing.T) {
	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLoggerTo(&buf, slog.LevelInfo, "text")
		logger.Info(context.Background(), "tick", "frame", 3)

		out := buf.String()
		if !strings.Contains(out, "msg=tick") || !strings.Contains(out, "frame=3") {
			t.Errorf("text output = %q, want msg=tick frame=3", out)
		}
	})

	t.Run("json format filters by level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLoggerTo(&buf, slog.LevelWarn, "json")
		logger.Info(context.Background(), "dropped")
		if buf.Len() != 0 {
			t.Errorf("info logged at warn level: %q", buf.String())
		}

		logger.Warn(context.Background(), "kept", "api_token", "abc")
		var logEntry map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
			t.Fatalf("Failed to parse log JSON: %v", err)
		}
		if logEntry["api_token"] != "[REDACTED]" {
			t.Errorf("Expected api_token to be redacted, got %v", logEntry["api_token"])
		}
	})

	t.Run("discard", func(t *testing.T) {
		Discard().Error(context.Background(), "nothing", errors.New("boom"))
	})
}
