package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekKey(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"tuesday at year end belongs to next year", date(2024, time.December, 31), "2025-W01"},
		{"sunday at year start belongs to previous year", date(2023, time.January, 1), "2022-W52"},
		{"mid year", date(2025, time.August, 10), "2025-W32"},
		{"monday of week 33", date(2025, time.August, 11), "2025-W33"},
		{"53 week year", date(2020, time.December, 31), "2020-W53"},
		{"friday after 53rd week", date(2021, time.January, 1), "2020-W53"},
		{"first thursday", date(2026, time.January, 1), "2026-W01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekKey(tt.in))
		})
	}
}

func TestWeekKey_Deterministic(t *testing.T) {
	d := date(2025, time.March, 3)
	assert.Equal(t, WeekKey(d), WeekKey(d))
	assert.Equal(t, MonthKey(d), MonthKey(d))
}

func TestWeekKey_IgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, time.December, 29, 0, 0, 1, 0, time.UTC)
	night := time.Date(2024, time.December, 29, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "2024-W52", WeekKey(morning))
	assert.Equal(t, WeekKey(morning), WeekKey(night))
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2025-08", MonthKey(date(2025, time.August, 10)))
	assert.Equal(t, "2024-12", MonthKey(date(2024, time.December, 31)))
	assert.Equal(t, "0999-01", MonthKey(date(999, time.January, 5)))
}

func TestFormatHour(t *testing.T) {
	assert.Equal(t, "12 AM", FormatHour(0))
	assert.Equal(t, "1 AM", FormatHour(1))
	assert.Equal(t, "11 AM", FormatHour(11))
	assert.Equal(t, "12 PM", FormatHour(12))
	assert.Equal(t, "1 PM", FormatHour(13))
	assert.Equal(t, "11 PM", FormatHour(23))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "08:05 AM", FormatClock(time.Date(2025, 8, 10, 8, 5, 0, 0, time.UTC)))
	assert.Equal(t, "05:30 PM", FormatClock(time.Date(2025, 8, 10, 17, 30, 0, 0, time.UTC)))
}

func TestHourRangeLabel(t *testing.T) {
	assert.Equal(t, "8:00 - 9:00", HourRangeLabel(8))
	assert.Equal(t, "23:00 - 24:00", HourRangeLabel(23))
}

func TestShortDateLabel(t *testing.T) {
	assert.Equal(t, "Aug 10", ShortDateLabel("2025-08-10"))
	assert.Equal(t, "not-a-date", ShortDateLabel("not-a-date"))
}
