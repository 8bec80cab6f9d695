package media

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestWrapTagsSentinel(t *testing.T) {
	err := Wrap(ErrParse, "probe", "malformed ffprobe output", nil)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse classification, got %v", err)
	}
	if errors.Is(err, ErrIO) {
		t.Fatalf("error must not match a different sentinel: %v", err)
	}
	if !strings.Contains(err.Error(), "probe: malformed ffprobe output") {
		t.Fatalf("missing detail in %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fs.ErrPermission
	err := Wrap(ErrLaunch, "ffmpeg", "spawn", cause)
	if !errors.Is(err, ErrLaunch) {
		t.Fatalf("expected ErrLaunch classification, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to survive, got %v", err)
	}
}

func TestWrapDefaultsToIO(t *testing.T) {
	err := Wrap(nil, "", "", nil)
	if !errors.Is(err, ErrIO) {
		t.Fatalf("nil sentinel should default to ErrIO, got %v", err)
	}
	if !strings.Contains(err.Error(), "pipeline failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}
