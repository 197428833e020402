package aggregation

import (
	"fmt"
	"time"
)

// ParseTolerance parses the tolerance window.
// Supports Go duration syntax (e.g., "90s", "12m", "1h") plus "Xd" for days.
func ParseTolerance(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("tolerance must not be empty")
	}

	// Handle "d" suffix (days), not supported by time.ParseDuration.
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err != nil {
			return 0, fmt.Errorf("invalid tolerance %q: %w", s, err)
		}
		if days <= 0 {
			return 0, fmt.Errorf("tolerance must be positive, got %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid tolerance %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("tolerance must be positive, got %q", s)
	}
	return d, nil
}
