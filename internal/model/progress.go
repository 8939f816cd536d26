package model

import "fmt"

// ProgressSnapshot is one observation of a job's state, pushed to progress
// sinks. Only the latest snapshot per job id matters; sinks are not required
// to retain history.
type ProgressSnapshot struct {
	Status    ProgressStatus `json:"status"`
	Progress  float64        `json:"progress"` // 0 to 100
	Elapsed   string         `json:"elapsed"`  // HH:MM:SS
	Remaining string         `json:"remaining"`
	Speed     string         `json:"speed"` // human readable, e.g. "1.2 MB/s"
	Message   string         `json:"message"`
}

// FormatClock formats a second count as HH:MM:SS
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// FormatSpeed formats a bytes-per-second rate in B/s, KB/s or MB/s
func FormatSpeed(bytesPerSecond float64) string {
	switch {
	case bytesPerSecond < 1024:
		return fmt.Sprintf("%.1f B/s", bytesPerSecond)
	case bytesPerSecond < 1024*1024:
		return fmt.Sprintf("%.1f KB/s", bytesPerSecond/1024)
	default:
		return fmt.Sprintf("%.1f MB/s", bytesPerSecond/(1024*1024))
	}
}
