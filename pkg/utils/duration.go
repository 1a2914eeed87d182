package utils

import (
	"fmt"
	"time"
)

// FormatDuration renders job and request durations for logs.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fµs", float64(d.Microseconds()))
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d.Milliseconds()))
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	default:
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}
