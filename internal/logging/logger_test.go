package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.With("component", "extract").Info("frame written", "index", 3, "pts", "1.5s")

	line := buf.String()
	if !strings.Contains(line, "INFO extract: frame written") {
		t.Fatalf("component prefix missing: %q", line)
	}
	if !strings.Contains(line, "index=3") || !strings.Contains(line, "pts=1.5s") {
		t.Fatalf("attrs missing: %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("probe complete", "source", "my movie.mkv")
	if !strings.Contains(buf.String(), `source="my movie.mkv"`) {
		t.Fatalf("value with spaces must be quoted: %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "WARN shown") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestJSONHandlerRemapsKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("run finished", slog.Int("frames", 12))
	out := buf.String()
	for _, want := range []string{`"ts":`, `"level":"info"`, `"msg":"run finished"`, `"frames":12`} {
		if !strings.Contains(out, want) {
			t.Fatalf("json output missing %s: %q", want, out)
		}
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "logfmt"}); err == nil {
		t.Fatal("unsupported format must error")
	}
}
