package dlutil

import (
	"time"
)

// GetSpeed returns the average transfer speed in bytes per second.
func GetSpeed(downloaded int64, startTime time.Time) float64 {
	if startTime.IsZero() {
		return 0
	}
	elapsed := time.Since(startTime).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(downloaded) / elapsed
}
