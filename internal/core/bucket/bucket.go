// Package bucket holds the fixed-width time-bucket math used for observation counting.
package bucket

import (
	"fmt"
	"strconv"
	"time"
)

// StartEpochMinutes returns the start of the bucket containing t, in minutes since
// the Unix epoch: floor(epochMinutes / width) * width.
func StartEpochMinutes(t time.Time, widthMinutes int) int64 {
	if widthMinutes <= 0 {
		widthMinutes = 1
	}
	minutes := floorDiv(t.Unix(), 60)
	w := int64(widthMinutes)
	return floorDiv(minutes, w) * w
}

// Key forms the composite bucket key "fingerprint#bucketStart".
func Key(fingerprint string, startEpochMinutes int64) string {
	return fingerprint + "#" + strconv.FormatInt(startEpochMinutes, 10)
}

// Time converts a bucket start in epoch minutes back to a UTC timestamp.
func Time(startEpochMinutes int64) time.Time {
	return time.Unix(startEpochMinutes*60, 0).UTC()
}

// ParseDuration parses Go duration syntax (e.g. "90s", "1h") plus "Xd" for days.
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("duration must not be empty")
	}

	// "d" suffix is not supported by time.ParseDuration.
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		if days <= 0 {
			return 0, fmt.Errorf("duration must be positive, got %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %q", s)
	}
	return d, nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
