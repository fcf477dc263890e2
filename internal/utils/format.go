package utils

import (
	"fmt"
	"math"
	"strconv"
)

// FormatDuration renders minutes as "45 min" below an hour and "1h 30m"
// otherwise. Minutes are rounded once before splitting, so a remainder that
// rounds up to 60 carries into the hour: 179.6 renders "3h 0m".
func FormatDuration(minutes float64) string {
	total := int64(math.Round(minutes))
	if total < 60 {
		return fmt.Sprintf("%d min", total)
	}
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}

// FormatPercentage renders a 0-100 score with at most two decimals and a
// trailing percent sign: 85.456 -> "85.46%", 70 -> "70%"
func FormatPercentage(score float64) string {
	return strconv.FormatFloat(RoundTo(score, 2), 'f', -1, 64) + "%"
}

// RoundTo rounds to the given number of decimal places
func RoundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}

// MinutesToHours converts minutes to hours, rounded to 1 decimal place
func MinutesToHours(minutes float64) float64 {
	return RoundTo(minutes/60.0, 1)
}
