package stats

import (
	"fmt"
	"math"
)

// SplitDuration splits fractional hours into whole hours and minutes.
// Minutes never reach 60: a fraction that rounds up to a full hour is held
// at 59. Negative input counts as zero.
func SplitDuration(hours float64) (h, m int) {
	if hours <= 0 || math.IsNaN(hours) {
		return 0, 0
	}
	whole := math.Floor(hours)
	m = int(math.Round((hours - whole) * 60))
	if m > 59 {
		m = 59
	}
	return int(whole), m
}

// FormatDuration renders fractional hours as "{H}h {M}m".
func FormatDuration(hours float64) string {
	h, m := SplitDuration(hours)
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatQuality renders a mean quality on the 1-3 scale.
func FormatQuality(mean float64) string {
	return fmt.Sprintf("%.1f/3", mean)
}

// FormatElapsed renders elapsed seconds as HH:MM:SS.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
