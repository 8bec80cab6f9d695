package deps

import (
	"os"
	"path/filepath"
	"testing"

	"framepipe/internal/config"
)

func TestRequirementsHonorOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.FFmpeg = "/opt/ffmpeg/bin/ffmpeg"

	reqs := Requirements(&cfg)
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	if reqs[0].Command != "ffprobe" {
		t.Fatalf("ffprobe should default to PATH name, got %q", reqs[0].Command)
	}
	if reqs[1].Command != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("override not applied: %q", reqs[1].Command)
	}
}

func TestCheckBinaries(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "faketool")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}

	statuses := CheckBinaries([]Requirement{
		{Name: "present", Command: fake},
		{Name: "missing", Command: filepath.Join(dir, "no-such-tool")},
		{Name: "unset", Command: ""},
	})

	if !statuses[0].Available {
		t.Fatalf("existing binary reported unavailable: %+v", statuses[0])
	}
	if statuses[1].Available || statuses[1].Detail == "" {
		t.Fatalf("missing binary should carry detail: %+v", statuses[1])
	}
	if statuses[2].Available || statuses[2].Detail != "command not configured" {
		t.Fatalf("unset command mishandled: %+v", statuses[2])
	}
}
