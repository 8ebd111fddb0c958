package utils

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"info", "info", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"trace", "trace", LevelTrace},
		{"uppercase DEBUG", "DEBUG", slog.LevelDebug},
		{"mixed case Trace", "Trace", LevelTrace},
		{"unknown defaults to info", "unknown", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	for _, s := range []string{"", "info", "DEBUG", "trace"} {
		if !ValidLevel(s) {
			t.Errorf("ValidLevel(%q) = false", s)
		}
	}
	if ValidLevel("warn") {
		t.Error("ValidLevel(\"warn\") = true")
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("info hides debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger("info", &buf)
		logger.Debug("hidden")
		logger.Info("shown")
		out := buf.String()
		if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
			t.Errorf("unexpected output: %q", out)
		}
	})

	t.Run("trace level is labelled", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger("trace", &buf)
		logger.Log(context.Background(), LevelTrace, "frame")
		if !strings.Contains(buf.String(), "level=TRACE") {
			t.Errorf("expected TRACE label, got %q", buf.String())
		}
	})
}
