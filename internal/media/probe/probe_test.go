package probe

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"framepipe/internal/media"
)

const sampleJSON = `{
  "streams": [
    {
      "codec_name": "h264",
      "codec_type": "video",
      "width": 1920,
      "height": 1080,
      "r_frame_rate": "24000/1001",
      "avg_frame_rate": "24000/1001",
      "nb_frames": "143"
    },
    {
      "codec_name": "aac",
      "codec_type": "audio",
      "r_frame_rate": "0/0",
      "avg_frame_rate": "0/0"
    }
  ],
  "format": {
    "duration": "5.964000",
    "tags": {"encoder": "Lavf61.1.100"}
  }
}`

func TestDecodeInfo(t *testing.T) {
	info, err := decodeInfo([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("decodeInfo: %v", err)
	}
	if got, want := info.Duration, time.Duration(5.964*float64(time.Second)); got != want {
		t.Fatalf("duration %v, want %v", got, want)
	}
	if len(info.Streams) != 1 {
		t.Fatalf("expected one admitted stream, got %d", len(info.Streams))
	}
	video, ok := info.Streams[0].(VideoStream)
	if !ok {
		t.Fatalf("expected VideoStream variant, got %T", info.Streams[0])
	}
	if video.Width != 1920 || video.Height != 1080 {
		t.Fatalf("unexpected geometry %dx%d", video.Width, video.Height)
	}
	if math.Abs(video.FrameRate-23.976) > 0.001 {
		t.Fatalf("unexpected frame rate %v", video.FrameRate)
	}
	if video.FramesCount != 143 {
		t.Fatalf("unexpected frames count %d", video.FramesCount)
	}
	if info.Tags["encoder"] != "Lavf61.1.100" {
		t.Fatalf("format tags not carried through: %v", info.Tags)
	}
}

func TestDecodeInfoFailures(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"malformed json", `{"streams": [`},
		{"missing duration", `{"streams": [], "format": {}}`},
		{"bad rational", `{"streams": [{"codec_type": "video", "width": 10, "height": 10, "r_frame_rate": "30", "avg_frame_rate": "30/1"}], "format": {"duration": "1.0"}}`},
		{"bad frame count", `{"streams": [{"codec_type": "video", "width": 10, "height": 10, "r_frame_rate": "30/1", "avg_frame_rate": "30/1", "nb_frames": "many"}], "format": {"duration": "1.0"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := decodeInfo([]byte(tc.payload)); !errors.Is(err, media.ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
		})
	}
}

func TestParseRational(t *testing.T) {
	cases := []struct {
		value string
		want  float64
		ok    bool
	}{
		{"24000/1001", 23.976, true},
		{"30/1", 30.0, true},
		{"30", 0, false},
		{"a/b", 0, false},
		{"1/2/3", 0, false},
	}
	for _, tc := range cases {
		got, err := parseRational(tc.value)
		if tc.ok != (err == nil) {
			t.Fatalf("parseRational(%q) error = %v, want ok=%v", tc.value, err, tc.ok)
		}
		if err == nil && math.Abs(got-tc.want) > 0.001 {
			t.Fatalf("parseRational(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestPrimaryVideoStream(t *testing.T) {
	video := VideoStream{Width: 1280, Height: 720, FrameRate: 30}

	single := Info{Streams: []Stream{video}}
	selected, ok := single.PrimaryVideoStream()
	if !ok {
		t.Fatal("expected a primary stream for a single candidate")
	}
	if selected != video {
		t.Fatalf("unexpected selection %+v", selected)
	}

	if _, ok := (Info{}).PrimaryVideoStream(); ok {
		t.Fatal("zero candidates must yield no selection")
	}

	ambiguous := Info{Streams: []Stream{video, VideoStream{Width: 640, Height: 480}}}
	if _, ok := ambiguous.PrimaryVideoStream(); ok {
		t.Fatal("multiple candidates must yield no selection")
	}
}

func TestInspectMissingSource(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-file.mkv")
	_, err := Inspect(context.Background(), missing, "")
	if !errors.Is(err, media.ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}
}
