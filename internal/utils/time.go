package utils

import (
	"fmt"
	"time"
)

const clockLayout = "15:04"

// TimeToMinutes converts time string to minutes since midnight
func TimeToMinutes(timeStr string) int {
	t, _ := time.Parse(clockLayout, timeStr)
	return t.Hour()*60 + t.Minute()
}

// NormalizeClock accepts "H:MM" or "HH:MM" and returns the zero-padded form
func NormalizeClock(timeStr string) (string, error) {
	t, err := time.Parse(clockLayout, timeStr)
	if err != nil {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	return t.Format(clockLayout), nil
}

// DayKey formats t as the calendar day used to group daily tasks
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
