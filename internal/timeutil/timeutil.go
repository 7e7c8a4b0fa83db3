package timeutil

import (
	"fmt"
	"strings"
	"time"
)

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ParseDate accepts the free-form date values used on flags, in the
// environment and in spreadsheet exports. Layouts without a zone are read as
// local wall-clock time.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
		"02.01.2006 15:04",
		"02.01.2006",
	}

	for _, layout := range layouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported date format: %q", value)
}

// FromWindowsPath rewrites a Windows absolute path such as C:\Users\me\t.csv
// into its WSL mount form /mnt/c/Users/me/t.csv. Anything without a drive
// prefix passes through unchanged.
func FromWindowsPath(path string) string {
	if len(path) < 2 || path[1] != ':' || !isDriveLetter(path[0]) {
		return path
	}
	rest := strings.ReplaceAll(path[2:], `\`, "/")
	return "/mnt/" + strings.ToLower(string(path[0])) + rest
}

func isDriveLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
