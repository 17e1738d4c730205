package domain

import "fmt"

// FormatTimestamp renders a second offset as a fixed-width clock string.
//
// The output is HH:MM:SS,mmm (comma=true), HH:MM:SS.mmm (comma=false), or
// HH:MM:SS when includeMillis is false. Hours are not wrapped at 24. All
// fields truncate toward zero; 59.9995 stays at ...:59,999 and never rounds
// up across a unit boundary, which subtitle exports depend on.
func FormatTimestamp(seconds float64, includeMillis, comma bool) string {
	if seconds < 0 {
		seconds = 0
	}

	whole := int64(seconds)
	hours := whole / 3600
	minutes := (whole % 3600) / 60
	secs := whole % 60

	if !includeMillis {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}

	millis := int64((seconds - float64(whole)) * 1000)
	sep := ","
	if !comma {
		sep = "."
	}
	return fmt.Sprintf("%02d:%02d:%02d%s%03d", hours, minutes, secs, sep, millis)
}
