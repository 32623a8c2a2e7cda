// Package util holds small formatting helpers shared by handlers and infra.
package util

import "fmt"

// FormatBytes renders a byte count with a binary unit, e.g. "5.0 MB".
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	const suffixes = "KMGTPE"
	value := float64(n) / unit
	idx := 0
	for value >= unit && idx < len(suffixes)-1 {
		value /= unit
		idx++
	}

	return fmt.Sprintf("%.1f %cB", value, suffixes[idx])
}
