package extract

import (
	"regexp"
	"strings"
)

const (
	// showinfoPrefix tags every line emitted by the showinfo filter.
	showinfoPrefix = "[Parsed_showinfo_"
	// configMarker distinguishes the filter's one-time setup lines, which
	// share the prefix but must never count toward a frame's quota.
	configMarker = "] config"
)

// showinfoTokenPattern extracts key: value tokens. Bracketed multi-part
// values such as plane_checksum:[A B C] are captured as a single token.
var showinfoTokenPattern = regexp.MustCompile(`(\w+):\s*(\[.*?]|\S+)`)

// parseShowinfo reports whether line is a genuine per-frame showinfo line,
// merging its key/value tokens into fields when it is. Later lines overwrite
// keys seen earlier, so across a frame's pair of lines the last value wins.
// Configuration sub-lines, blank lines, and unrelated decoder output are not
// recognized and leave fields untouched.
func parseShowinfo(line string, fields map[string]string) bool {
	if !strings.HasPrefix(line, showinfoPrefix) {
		return false
	}
	if strings.Contains(line, configMarker) {
		return false
	}
	for _, match := range showinfoTokenPattern.FindAllStringSubmatch(line, -1) {
		fields[match[1]] = match[2]
	}
	return true
}
