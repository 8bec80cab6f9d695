// Command framepipe probes media files and extracts their decoded frames
// through an ffmpeg subprocess pipeline.
package main
