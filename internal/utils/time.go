package utils

import (
	"fmt"
	"time"
)

// FormatDate formats a time.Time as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDate parses a date string in YYYY-MM-DD format
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

// WeekKey returns the ISO 8601 week identifier "YYYY-Www".
// The year is the ISO year, i.e. the year of the Thursday of t's week, so
// 2024-12-31 is 2025-W01 and 2023-01-01 is 2022-W52.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// MonthKey returns the calendar month identifier "YYYY-MM"
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// FormatHour renders an hour of day on the 12-hour clock ("12 AM", "3 PM")
func FormatHour(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour < 12:
		return fmt.Sprintf("%d AM", hour)
	case hour == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", hour-12)
	}
}

// FormatClock formats a time as HH:MM AM/PM
func FormatClock(t time.Time) string {
	return t.Format("03:04 PM")
}

// HourRangeLabel renders the span of an hour bucket, e.g. "8:00 - 9:00"
func HourRangeLabel(hour int) string {
	return fmt.Sprintf("%d:00 - %d:00", hour, hour+1)
}

// ShortDateLabel renders a YYYY-MM-DD date as "Aug 10"; unparsable input
// is returned unchanged
func ShortDateLabel(dateStr string) string {
	t, err := ParseDate(dateStr)
	if err != nil {
		return dateStr
	}
	return t.Format("Jan 2")
}
