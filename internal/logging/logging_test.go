package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Warn)

	log.Debug("dropped")
	log.Info("dropped too")
	log.Warn("kept")
	log.Error("kept as well")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("below-threshold lines written: %q", out)
	}
	if !strings.Contains(out, "level=warn msg=kept") {
		t.Fatalf("warn line missing: %q", out)
	}
	if !strings.Contains(out, "level=error") {
		t.Fatalf("error line missing: %q", out)
	}
}

func TestLoggerFieldsAndQuoting(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Debug)

	log.Info("saved note", F("folder", "/tmp/My Notes"), F("bytes", 42))

	out := buf.String()
	if !strings.Contains(out, `folder="/tmp/My Notes"`) {
		t.Fatalf("value with spaces not quoted: %q", out)
	}
	if !strings.Contains(out, "bytes=42") {
		t.Fatalf("numeric field missing: %q", out)
	}
}

func TestWithAddsPersistentFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Debug).With(F("component", "backend"))

	log.Info("scan complete")
	if !strings.Contains(buf.String(), "component=backend") {
		t.Fatalf("With field missing: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		"info":    Info,
		"warn":    Warn,
		"WARNING": Warn,
		"error":   Error,
		"":        Info,
		"bogus":   Info,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}
