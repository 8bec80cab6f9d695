// Package probe inspects media files with ffprobe and exposes a typed
// description of the container and its streams. Selection of the primary
// video stream is pure and recomputable; the probe itself runs exactly one
// short-lived subprocess per call.
package probe
