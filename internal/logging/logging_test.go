package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLoggerWithWriter_Formats(t *testing.T) {
	tests := []struct {
		format string
		wants  []string
	}{
		{"text", []string{"msg=\"status updated\"", "submission_id=SUB-004", "status=approved", "service=optrack"}},
		{"json", []string{`"msg":"status updated"`, `"submission_id":"SUB-004"`, `"status":"approved"`, `"service":"optrack"`}},
		{"JSON", []string{`"msg":"status updated"`}},
		{"", []string{"msg=\"status updated\""}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerWithWriter(slog.LevelInfo, tt.format, &buf)

			logger.Info("status updated", "submission_id", "SUB-004", "status", "approved")

			for _, want := range tt.wants {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %s: %s", want, buf.String())
				}
			}
		})
	}
}

func TestNewLoggerWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(slog.LevelWarn, "text", &buf)

	logger.Info("job loop started")
	logger.Warn("reminder lookup failed")

	output := buf.String()
	if strings.Contains(output, "job loop started") {
		t.Errorf("INFO record written at WARN level: %s", output)
	}
	if !strings.Contains(output, "reminder lookup failed") {
		t.Errorf("WARN record missing: %s", output)
	}
}

func TestNewLoggerWithWriter_ComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(slog.LevelDebug, "text", &buf).With("component", "jobs")

	logger.Debug("job finished", "job", "reminders")

	for _, want := range []string{"component=jobs", "job=reminders", "service=optrack"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %s: %s", want, buf.String())
		}
	}
}

func TestNewLoggerWithWriter_UTCTime(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(slog.LevelInfo, "json", &buf)

	logger.Info("tick")

	if !strings.Contains(buf.String(), `Z","level"`) {
		t.Errorf("expected UTC RFC3339 time, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
