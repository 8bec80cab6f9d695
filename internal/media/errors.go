package media

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceNotFound reports that the input path does not exist. It is
	// checked before any subprocess is spawned.
	ErrSourceNotFound = errors.New("source not found")
	// ErrParse reports malformed probe output, an ambiguous or missing
	// primary video stream, or a missing per-frame timestamp.
	ErrParse = errors.New("parse failure")
	// ErrLaunch reports that an external tool could not be spawned.
	ErrLaunch = errors.New("launch failure")
	// ErrIO reports a pipe read that failed for a reason other than clean
	// end-of-stream, including mid-frame truncation.
	ErrIO = errors.New("io failure")
)

// Wrap builds an error that includes operation context while tagging it with
// the provided sentinel for later classification. The sentinel must be one of
// the exported errors above.
func Wrap(kind error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if kind == nil {
		kind = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", kind, detail, err)
	}
	return fmt.Errorf("%w: %s", kind, detail)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
