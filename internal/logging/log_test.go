package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSetLevel(t *testing.T) {
	l := Logger()
	defer SetLevel("info")

	SetLevel("error")
	if l.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("expected warn to be disabled at error level")
	}

	SetLevel("debug")
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug to be enabled at debug level")
	}
}
