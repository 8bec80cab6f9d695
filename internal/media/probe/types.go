package probe

import "time"

// Info describes a probed media file. It is immutable after construction and
// may outlive any extraction session created from it.
type Info struct {
	Duration time.Duration
	Streams  []Stream
	Tags     map[string]string
}

// Stream is a closed sum over media kinds. VideoStream is the only variant
// today; adding audio support later is a new variant plus a selector branch,
// not a schema restructure.
type Stream interface {
	isStream()
}

// VideoStream describes a single video stream.
type VideoStream struct {
	// Width and Height are the frame geometry in pixels. Both are positive
	// for every stream admitted into Info.Streams.
	Width  int
	Height int
	// FrameRate is the average frame rate as a float ratio.
	FrameRate float64
	// FramesCount is the frame total declared in the container metadata.
	// Advisory only: the actual readable frame count may differ and it must
	// never bound a read loop.
	FramesCount int64
}

func (VideoStream) isStream() {}

// PrimaryVideoStream returns the single unambiguous video stream. It reports
// ok only when exactly one video stream exists; zero or several candidates
// yield no selection rather than a guess.
func (i Info) PrimaryVideoStream() (VideoStream, bool) {
	var selected VideoStream
	count := 0
	for _, stream := range i.Streams {
		if video, ok := stream.(VideoStream); ok {
			selected = video
			count++
		}
	}
	if count != 1 {
		return VideoStream{}, false
	}
	return selected, true
}
