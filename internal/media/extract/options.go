package extract

import "time"

// DefaultBinary is the decoder executable resolved from PATH when no
// override is configured.
const DefaultBinary = "ffmpeg"

// Options configures an extraction session. The zero value decodes every
// frame with both tools resolved from PATH.
type Options struct {
	// SamplingInterval decodes one frame per interval instead of every
	// frame. Zero means no sampling filter.
	SamplingInterval time.Duration
	// FFmpegPath overrides the decoder executable.
	FFmpegPath string
	// FFprobePath overrides the probing executable used to discover the
	// stream geometry.
	FFprobePath string
}
