package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"framepipe/internal/media"
)

// DefaultBinary is the executable resolved from PATH when no override is
// configured.
const DefaultBinary = "ffprobe"

// rawOutput mirrors the ffprobe JSON schema. Numeric fields arrive as
// strings and are converted after decoding; width/height are pointers so a
// missing dimension (audio, data streams) is distinguishable from zero.
type rawOutput struct {
	Streams []rawStream `json:"streams"`
	Format  rawFormat   `json:"format"`
}

type rawStream struct {
	CodecName    string `json:"codec_name"`
	CodecType    string `json:"codec_type"`
	Width        *int   `json:"width"`
	Height       *int   `json:"height"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	NBFrames     string `json:"nb_frames"`
}

type rawFormat struct {
	Duration string            `json:"duration"`
	Tags     map[string]string `json:"tags"`
}

// Inspect executes ffprobe against the provided path and decodes the result.
// The path is checked before any subprocess is spawned so a bad input is
// distinguishable from a tool launch failure. The call blocks until ffprobe
// exits and its output is fully drained.
func Inspect(ctx context.Context, path, binary string) (Info, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultBinary
	}

	if _, err := os.Stat(path); err != nil {
		return Info{}, media.Wrap(media.ErrSourceNotFound, "probe", path, nil)
	}

	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-hide_banner",
		"-show_streams",
		"-show_format",
		"-of", "json",
		"--", path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail := strings.TrimSpace(stderr.String())
			return Info{}, media.Wrap(media.ErrParse, "probe", detail, err)
		}
		return Info{}, media.Wrap(media.ErrLaunch, "probe", binary, err)
	}

	return decodeInfo(stdout.Bytes())
}

// decodeInfo converts raw ffprobe JSON into an Info. Only streams carrying
// both dimensions qualify as video streams; their string-typed numerics are
// parsed strictly, and any malformation fails the whole probe.
func decodeInfo(payload []byte) (Info, error) {
	var raw rawOutput
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Info{}, media.Wrap(media.ErrParse, "probe", "malformed ffprobe output", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(raw.Format.Duration), 64)
	if err != nil {
		return Info{}, media.Wrap(media.ErrParse, "probe", "format duration", err)
	}

	info := Info{
		Duration: time.Duration(seconds * float64(time.Second)),
		Tags:     raw.Format.Tags,
	}

	for _, stream := range raw.Streams {
		if stream.Width == nil || stream.Height == nil {
			continue
		}
		if *stream.Width <= 0 || *stream.Height <= 0 {
			continue
		}
		if _, err := parseRational(stream.RFrameRate); err != nil {
			return Info{}, media.Wrap(media.ErrParse, "probe", "r_frame_rate", err)
		}
		frameRate, err := parseRational(stream.AvgFrameRate)
		if err != nil {
			return Info{}, media.Wrap(media.ErrParse, "probe", "avg_frame_rate", err)
		}
		framesCount, err := parseFrameCount(stream.NBFrames)
		if err != nil {
			return Info{}, media.Wrap(media.ErrParse, "probe", "nb_frames", err)
		}
		info.Streams = append(info.Streams, VideoStream{
			Width:       *stream.Width,
			Height:      *stream.Height,
			FrameRate:   frameRate,
			FramesCount: framesCount,
		})
	}

	return info, nil
}

// parseFrameCount decodes the advisory nb_frames field. Containers that do
// not declare a total omit the field entirely; that decodes as zero.
// A present but malformed value still fails.
func parseFrameCount(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	return strconv.ParseInt(value, 10, 64)
}
