package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseClockDuration reads the HH:MM or HH:MM:SS duration column of a Toggl
// export. Hours may exceed 24; negative values are rejected.
func parseClockDuration(raw string) (time.Duration, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0, fmt.Errorf("empty duration")
	}

	parts := strings.Split(cleaned, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("unsupported duration format: %q", raw)
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("parse duration hours %q", raw)
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("parse duration minutes %q", raw)
	}

	seconds := 0
	if len(parts) == 3 {
		seconds, err = strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || seconds < 0 || seconds > 59 {
			return 0, fmt.Errorf("parse duration seconds %q", raw)
		}
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second, nil
}
