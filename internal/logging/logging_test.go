package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Level
	}{
		{"trace", "trace", Trace},
		{"debug", "debug", Debug},
		{"info", "info", Info},
		{"warn", "warn", Warn},
		{"error", "error", Error},
		{"unknown defaults to info", "bogus", Info},
		{"empty defaults to info", "", Info},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoggerFiltersBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Warn, false)

	log.Info("should not appear")
	log.Debug("should not appear either")

	if buf.Len() != 0 {
		t.Fatalf("expected no output below min level, got %q", buf.String())
	}

	log.Warn("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Fatalf("expected warn output, got %q", buf.String())
	}
}

func TestLoggerTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Trace, false)

	log.Error("disk full: %s", "/tmp")

	out := buf.String()
	if !strings.Contains(out, "[error]") {
		t.Fatalf("expected level tag in text output, got %q", out)
	}
	if !strings.Contains(out, "disk full: /tmp") {
		t.Fatalf("expected formatted message in text output, got %q", out)
	}
}

func TestLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Trace, true)

	log.Warn("retrying %d", 3)

	var entry struct {
		Time  string
		Level string
		Msg   string
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected valid JSON line, got %q: %v", buf.String(), err)
	}
	if entry.Msg != "retrying 3" {
		t.Fatalf("expected formatted message, got %q", entry.Msg)
	}
	if entry.Level != "warn" {
		t.Fatalf("expected warn level, got %q", entry.Level)
	}
}
