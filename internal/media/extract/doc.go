// Package extract drives ffmpeg as a decode subprocess and turns its two
// output pipes into an ordered sequence of timestamped frames.
//
// The decoder writes raw RGB pictures to stdout and per-frame showinfo
// diagnostics to stderr, each at its own OS buffering rate. The reader keeps
// the pipes frame-aligned with a fixed pacing cycle: exactly two recognized
// showinfo lines, then exactly one frame's worth of pixel bytes. Reading
// bounded, known quantities from each pipe per cycle is what prevents either
// buffer from starving or overrunning, however long the video runs.
package extract
