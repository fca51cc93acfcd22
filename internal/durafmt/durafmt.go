// Package durafmt provides pure formatting helpers for millisecond
// durations. All functions clamp negative input to zero.
package durafmt

import "fmt"

// Clock formats a millisecond duration as HH:MM:SS.
// Hours grow beyond two digits when needed (e.g. "100:00:00").
func Clock(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalSeconds := ms / 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// Hours formats a millisecond duration as "Nh MMm" with zero-padded
// minutes. Examples: "1h 30m", "1h 05m", "0h 25m".
func Hours(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalMinutes := ms / 1000 / 60
	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	return fmt.Sprintf("%dh %02dm", hours, minutes)
}
