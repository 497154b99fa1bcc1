package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("production writes json", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, "production", slog.LevelInfo).Info("Budget exceeded", "category", "Food")

		var line map[string]any
		if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
			t.Fatalf("expected json output, got %q", buf.String())
		}
		if line["category"] != "Food" {
			t.Errorf("expected category Food, got %v", line["category"])
		}
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, "production", slog.LevelWarn).Info("dropped")
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("development uses text", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, "development", slog.LevelInfo).Info("Server starting")
		if !strings.Contains(buf.String(), "Server starting") {
			t.Errorf("expected message in output, got %q", buf.String())
		}
	})
}
