package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHMS converts a wall-clock duration string into whole seconds.
// Accepted forms:
//   - HH:MM:SS: "02:00:00", "168:00:00" (hours may exceed two digits)
//   - HH:MM:    "2:30" (hours:minutes)
//   - MM:       "45" (bare minutes, as qstat prints for short queues)
func ParseHMS(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration string")
	}

	parts := strings.Split(s, ":")
	var hours, minutes, seconds int
	var err error

	switch len(parts) {
	case 3:
		if hours, err = strconv.Atoi(parts[0]); err != nil {
			return 0, fmt.Errorf("invalid hours: %s", parts[0])
		}
		if minutes, err = strconv.Atoi(parts[1]); err != nil {
			return 0, fmt.Errorf("invalid minutes: %s", parts[1])
		}
		if seconds, err = strconv.Atoi(parts[2]); err != nil {
			return 0, fmt.Errorf("invalid seconds: %s", parts[2])
		}
	case 2:
		if hours, err = strconv.Atoi(parts[0]); err != nil {
			return 0, fmt.Errorf("invalid hours: %s", parts[0])
		}
		if minutes, err = strconv.Atoi(parts[1]); err != nil {
			return 0, fmt.Errorf("invalid minutes: %s", parts[1])
		}
	case 1:
		if minutes, err = strconv.Atoi(parts[0]); err != nil {
			return 0, fmt.Errorf("invalid minutes: %s", parts[0])
		}
	default:
		return 0, fmt.Errorf("invalid time format: %s (use HH:MM:SS)", s)
	}

	return hours*3600 + minutes*60 + seconds, nil
}

// FormatHMS renders whole seconds back into HH:MM:SS. Negative values
// clamp to zero so an overrun reservation reads 00:00:00 rather than
// a negative remainder.
func FormatHMS(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := seconds % 3600 / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
