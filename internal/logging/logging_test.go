package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_TextAndJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := New(&buf, "debug", "text")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	l.Debug("serve", slog.String("toward", "left"))
	if !strings.Contains(buf.String(), "toward=left") {
		t.Fatalf("unexpected text output: %q", buf.String())
	}

	buf.Reset()
	l, err = New(&buf, "info", "json")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	l.Debug("hidden")
	l.Info("goal", slog.Int("left", 1))
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug record should be filtered at info level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"left":1`) {
		t.Fatalf("unexpected json output: %q", buf.String())
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	if _, err := New(&bytes.Buffer{}, "loud", "text"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if _, err := New(&bytes.Buffer{}, "info", "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestNew_NilWriterDiscards(t *testing.T) {
	t.Parallel()

	l, err := New(nil, "warn", "json")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	l.Info("dropped")
	if _, err := New(nil, "bogus", ""); err == nil {
		t.Fatalf("options are validated even without a writer")
	}
}
