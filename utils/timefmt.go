package utils

import (
	"fmt"
	"math"
)

// FormatElapsed renders an elapsed-seconds counter as "HH:MM:SS".
// Hours are not wrapped at 24, a session can run indefinitely.
func FormatElapsed(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// MinutesToClock renders minutes-from-midnight as a "HH:MM" display string.
func MinutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Round2 rounds a monetary amount to two decimal places. Internal billing
// arithmetic stays in full precision; rounding happens only at display and
// invoice boundaries.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
