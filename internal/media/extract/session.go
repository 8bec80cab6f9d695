package extract

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"framepipe/internal/media"
	"framepipe/internal/media/frame"
	"framepipe/internal/media/probe"
)

// Video is a live extraction session. It exclusively owns both subprocess
// pipes; the sequence of frames is forward-only and not restartable.
type Video struct {
	cmd         *exec.Cmd
	pixels      io.ReadCloser
	diagnostics *bufio.Reader
	diagCloser  io.Closer

	info   probe.Info
	stream probe.VideoStream

	done   bool
	err    error
	waited bool
}

// Open probes the source, selects its primary video stream, and starts the
// decode subprocess with both output pipes captured. Inheriting either pipe
// would make the pacing protocol impossible to reason about, so stdout and
// stderr are always piped.
func Open(ctx context.Context, path string, opts Options) (*Video, error) {
	info, err := probe.Inspect(ctx, path, opts.FFprobePath)
	if err != nil {
		return nil, err
	}
	stream, ok := info.PrimaryVideoStream()
	if !ok {
		return nil, media.Wrap(media.ErrParse, "extract", "no unambiguous primary video stream", nil)
	}

	binary := strings.TrimSpace(opts.FFmpegPath)
	if binary == "" {
		binary = DefaultBinary
	}

	cmd := exec.CommandContext(ctx, binary, buildArgs(path, opts)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, media.Wrap(media.ErrLaunch, "extract", "pixel pipe", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, media.Wrap(media.ErrLaunch, "extract", "diagnostic pipe", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, media.Wrap(media.ErrLaunch, "extract", binary, err)
	}

	return &Video{
		cmd:         cmd,
		pixels:      stdout,
		diagnostics: bufio.NewReader(stderr),
		diagCloser:  stderr,
		info:        info,
		stream:      stream,
	}, nil
}

// buildArgs assembles the decoder invocation: optional frame-rate reduction
// ahead of the mandatory showinfo filter, raw concatenated RGB frames on
// stdout, audio and subtitles disabled.
func buildArgs(path string, opts Options) []string {
	filters := make([]string, 0, 2)
	if opts.SamplingInterval > 0 {
		seconds := strconv.FormatFloat(opts.SamplingInterval.Seconds(), 'f', -1, 64)
		filters = append(filters, "fps=1/"+seconds)
	}
	filters = append(filters, "showinfo")

	return []string{
		"-i", path,
		"-vf", strings.Join(filters, ","),
		"-f", "image2pipe",
		"-an",
		"-sn",
		"-pix_fmt", "rgb24",
		"-nostats",
		"-vcodec", "rawvideo",
		"-",
	}
}

// Info returns the probe result the session was opened with.
func (v *Video) Info() probe.Info { return v.info }

// Stream returns the selected primary video stream.
func (v *Video) Stream() probe.VideoStream { return v.stream }

// Duration returns the container duration reported by the probe.
func (v *Video) Duration() time.Duration { return v.info.Duration }

// Next produces the next decoded frame. It returns io.EOF once the decoder
// has closed both pipes at a cycle boundary; any other error is terminal and
// is returned again on subsequent calls without touching the pipes.
func (v *Video) Next() (*frame.Frame, error) {
	if v.err != nil {
		return nil, v.err
	}
	if v.done {
		return nil, io.EOF
	}

	f, err := v.cycle()
	if err == nil {
		return f, nil
	}
	if errors.Is(err, io.EOF) {
		v.done = true
		v.reap()
		return nil, io.EOF
	}
	v.err = err
	return nil, err
}

// cycle runs one pacing cycle: two recognized diagnostic lines, the
// pts_time extraction, then exactly one frame's pixel bytes.
func (v *Video) cycle() (*frame.Frame, error) {
	// Diagnostic phase. The showinfo filter emits two lines per processed
	// frame; both must be consumed or the pipe eventually stalls the
	// decoder. Unrecognized lines (banners, config sub-lines) do not count
	// toward the quota.
	fields := make(map[string]string)
	recognized := 0
	for recognized < 2 {
		line, err := v.diagnostics.ReadString('\n')
		if line != "" && parseShowinfo(line, fields) {
			recognized++
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, media.Wrap(media.ErrIO, "extract", "read diagnostics", err)
			}
			if recognized >= 2 {
				break
			}
			if recognized == 0 {
				// Clean shutdown: the decoder finished and closed its
				// pipes before this cycle started.
				return nil, io.EOF
			}
			// One recognized line then end-of-stream means the pixel and
			// diagnostic streams have desynchronized.
			return nil, media.Wrap(media.ErrIO, "extract", "diagnostic stream ended mid-frame", io.ErrUnexpectedEOF)
		}
	}

	value, ok := fields["pts_time"]
	if !ok {
		return nil, media.Wrap(media.ErrParse, "extract", "showinfo output missing pts_time", nil)
	}
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, media.Wrap(media.ErrParse, "extract", "pts_time "+value, err)
	}

	// Pixel phase. Exactly one frame's worth of bytes; a zero-byte
	// end-of-stream is the clean termination twin of the diagnostic phase,
	// while a partial frame is truncation.
	buf := make([]byte, v.stream.Width*v.stream.Height*frame.BytesPerPixel)
	if _, err := io.ReadFull(v.pixels, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, media.Wrap(media.ErrIO, "extract", "pixel stream ended mid-frame", err)
		}
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, media.Wrap(media.ErrIO, "extract", "read pixels", err)
	}

	image, err := frame.NewBuffer(v.stream.Width, v.stream.Height, buf)
	if err != nil {
		return nil, media.Wrap(media.ErrIO, "extract", "internal: frame buffer", err)
	}

	return &frame.Frame{
		Image:      image,
		TimeOffset: time.Duration(seconds * float64(time.Second)),
	}, nil
}

// reap waits for the subprocess after a clean end-of-stream. Both pipes are
// fully drained at that point, so Wait can close them safely.
func (v *Video) reap() {
	if v.cmd == nil || v.waited {
		return
	}
	v.waited = true
	_ = v.cmd.Wait()
}

// Close releases the session: both pipes are closed and the subprocess is
// reaped, killing it first if it is still running. Close is idempotent and
// safe after exhaustion.
func (v *Video) Close() error {
	if v.pixels != nil {
		_ = v.pixels.Close()
	}
	if v.diagCloser != nil {
		_ = v.diagCloser.Close()
	}
	if v.cmd != nil && !v.waited {
		v.waited = true
		if v.cmd.Process != nil {
			_ = v.cmd.Process.Kill()
		}
		_ = v.cmd.Wait()
	}
	return nil
}
