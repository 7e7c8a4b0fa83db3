package overtime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatHM renders a duration as signed HH:MM, truncating the sub-minute
// remainder: -90m30s becomes "-01:30".
func FormatHM(d time.Duration) string {
	totalSeconds := int64(d / time.Second)
	sign := ""
	if totalSeconds < 0 {
		sign = "-"
		totalSeconds = -totalSeconds
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	return fmt.Sprintf("%s%02d:%02d", sign, hours, minutes)
}

// ParseHM inverts FormatHM at minute granularity.
func ParseHM(value string) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	negative := strings.HasPrefix(trimmed, "-")
	trimmed = strings.TrimPrefix(trimmed, "-")

	parts := strings.Split(trimmed, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("unsupported signed duration format: %q", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("parse hours of %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("parse minutes of %q", value)
	}

	d := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
	if negative {
		d = -d
	}
	return d, nil
}
