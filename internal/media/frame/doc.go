// Package frame holds the decoded-frame types produced by the extraction
// pipeline: a packed RGB pixel buffer and its presentation time offset.
package frame
