package models

import (
	"fmt"
	"strings"
	"time"
)

// Clock times are stored as minutes since midnight (0-1439).

var clockLayouts = []string{"15:04", "3:04 PM", "3 PM", "15"}

// ParseClock parses a clock time such as "15:04" or "3:04 PM" into minutes
// since midnight.
func ParseClock(s string) (int, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("invalid clock time %q", s)
}

// FormatClock renders minutes since midnight as "15:04".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatHM renders a duration in minutes as "H:MM".
func FormatHM(minutes int64) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%d:%02d", sign, minutes/60, minutes%60)
}
