package client

import "fmt"

// FormatElapsed renders a non-negative duration in milliseconds as a short
// human-readable string: sub-second values as integer milliseconds,
// sub-minute values as seconds with two decimals, anything longer as
// minutes plus rounded seconds.
func FormatElapsed(ms int64) string {
	switch {
	case ms < 1000:
		return fmt.Sprintf("%dms", ms)
	case ms < 60000:
		return fmt.Sprintf("%.2fs", float64(ms)/1000)
	default:
		minutes := ms / 60000
		seconds := (ms%60000 + 500) / 1000 // round to nearest
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
}
