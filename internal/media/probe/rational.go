package probe

import (
	"fmt"
	"strconv"
	"strings"
)

// parseRational converts an ffprobe "N/D" rational string into a float
// ratio. The string must contain exactly one separator with numeric halves.
func parseRational(value string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(value), "/")
	if len(parts) != 2 {
		return 0, fmt.Errorf("rational %q: expected N/D", value)
	}
	numerator, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, fmt.Errorf("rational %q: %w", value, err)
	}
	denominator, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, fmt.Errorf("rational %q: %w", value, err)
	}
	return numerator / denominator, nil
}
