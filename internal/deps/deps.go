// Package deps reports the availability of the external tools framepipe
// drives as subprocesses.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"framepipe/internal/config"
	"framepipe/internal/media/extract"
	"framepipe/internal/media/probe"
)

// Requirement defines an external tool framepipe relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a tool.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Detail      string
}

// Requirements returns the tool set for the given configuration, honoring
// configured overrides before PATH resolution.
func Requirements(cfg *config.Config) []Requirement {
	ffprobe := probe.DefaultBinary
	ffmpeg := extract.DefaultBinary
	if cfg != nil {
		if v := strings.TrimSpace(cfg.Tools.FFprobe); v != "" {
			ffprobe = v
		}
		if v := strings.TrimSpace(cfg.Tools.FFmpeg); v != "" {
			ffmpeg = v
		}
	}
	return []Requirement{
		{Name: "ffprobe", Command: ffprobe, Description: "Probes stream geometry and container metadata"},
		{Name: "ffmpeg", Command: ffmpeg, Description: "Decodes frames to the raw pixel pipe"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Command = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}
