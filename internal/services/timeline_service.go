package services

import (
	"sort"

	"activity-dashboard/internal/models"
	"activity-dashboard/internal/utils"
)

// HourBuckets maps an hour of day to its events, in backend order.
// Only hours with at least one event are present.
type HourBuckets map[int][]models.ActivityEvent

// GroupByHour buckets events by their backend-computed hour
func GroupByHour(events []models.ActivityEvent) HourBuckets {
	buckets := make(HourBuckets)
	for _, event := range events {
		buckets[event.Hour] = append(buckets[event.Hour], event)
	}
	return buckets
}

// SortedHours returns the populated hours ascending
func (b HourBuckets) SortedHours() []int {
	hours := make([]int, 0, len(b))
	for hour := range b {
		hours = append(hours, hour)
	}
	sort.Ints(hours)
	return hours
}

// BuildTimelineView groups a timeline into display-ordered hour groups
func BuildTimelineView(timeline *models.Timeline) models.TimelineView {
	view := models.TimelineView{Hours: []models.HourGroup{}}
	if timeline == nil {
		view.Empty = true
		return view
	}

	view.Username = timeline.Username
	view.Date = timeline.Date
	view.EventCount = len(timeline.Events)
	view.Empty = len(timeline.Events) == 0

	buckets := GroupByHour(timeline.Events)
	for _, hour := range buckets.SortedHours() {
		events := buckets[hour]
		group := models.HourGroup{
			Hour:   hour,
			Range:  utils.HourRangeLabel(hour),
			Events: make([]models.TimelineEntry, 0, len(events)),
		}
		for _, event := range events {
			group.Events = append(group.Events, timelineEntry(event))
		}
		view.Hours = append(view.Hours, group)
	}

	return view
}

func timelineEntry(event models.ActivityEvent) models.TimelineEntry {
	return models.TimelineEntry{
		Timestamp:    event.Timestamp,
		Time:         formatTimestamp(&event.Timestamp),
		EventType:    event.EventType,
		Style:        event.Kind().Style(),
		ComputerName: event.ComputerName,
	}
}

// formatTimestamp renders a clock time, or N/A for a missing instant
func formatTimestamp(ts *models.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return "N/A"
	}
	return utils.FormatClock(ts.Time)
}
