package schedule

import "fmt"

// FormatClock renders a half-hour coordinate as zero-padded "HH:MM".
// The day boundary 24.0 renders as "24:00".
func FormatClock(t float64) string {
	hours := int(t)
	minutes := 0
	if t-float64(hours) >= 0.5 {
		minutes = 30
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// SlotLabel renders the half-hour slot starting at t, e.g. "04:30-05:00".
func SlotLabel(t float64) string {
	return Interval{Start: t, End: t + 0.5}.String()
}

// FormatIntervals renders an interval list as "HH:MM-HH:MM" strings.
func FormatIntervals(intervals []Interval) []string {
	out := make([]string, len(intervals))
	for i, iv := range intervals {
		out[i] = iv.String()
	}
	return out
}
