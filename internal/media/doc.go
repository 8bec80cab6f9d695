// Package media defines the error taxonomy shared by the probe and
// extraction pipelines. Every failure surfaced by framepipe is tagged with
// one of the sentinel errors in this package so callers can classify it
// with errors.Is without inspecting message text.
package media
