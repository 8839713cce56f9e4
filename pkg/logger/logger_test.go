package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "debug"},
		{LogLevelInfo, "info"},
		{LogLevelWarn, "warn"},
		{LogLevelError, "error"},
		{LogLevelOff, "off"},
		{LogLevel(99), "info"}, // Unknown defaults to info
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			if tc.level.String() != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, tc.level.String())
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"off", LogLevelOff},
		{"none", LogLevelOff},
		{"disabled", LogLevelOff},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := ParseLogLevel(tc.input); got != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("TYPEDROUTES_LOG_LEVEL", "error")
	if got := LevelFromEnv(); got != LogLevelError {
		t.Errorf("LevelFromEnv() = %v, want error", got)
	}
}

func TestLogger_Filtering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LogLevelWarn)

	log.Debug("debug %d", 1)
	log.Info("info %d", 2)
	log.Warn("warn %d", 3)
	log.Error("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("messages below warn should be dropped, got %q", out)
	}
	if !strings.Contains(out, "[typedroutes] WARN warn 3\n") {
		t.Errorf("missing warn line in %q", out)
	}
	if !strings.Contains(out, "[typedroutes] ERROR error 4\n") {
		t.Errorf("missing error line in %q", out)
	}
}

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LogLevelInfo)

	log.Info("generated %d routes", 3)

	if got := buf.String(); got != "[typedroutes] generated 3 routes\n" {
		t.Errorf("got %q", got)
	}
}

func TestLogger_Timestamps(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LogLevelInfo)
	log.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	log.SetTimestamps(true)

	log.Info("ready")

	if got := buf.String(); got != "03:04:05 [typedroutes] ready\n" {
		t.Errorf("got %q", got)
	}
}

func TestLogger_Off(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LogLevelOff)

	log.Error("nope")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestLogger_Nil(t *testing.T) {
	var log *Logger
	log.Info("no panic")
}
