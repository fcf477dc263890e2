package services

import (
	"activity-dashboard/internal/models"
	"activity-dashboard/internal/utils"
)

// HoursPerDay is the fixed width of the heatmap grid
const HoursPerDay = 24

// ClassifyIntensity buckets an hourly intensity. Upper bounds are
// inclusive: 25 is low, 25.01 is moderate. Zero and below is none.
func ClassifyIntensity(x float64) models.IntensityBucket {
	switch {
	case x <= 0:
		return models.IntensityNone
	case x <= 25:
		return models.IntensityLow
	case x <= 50:
		return models.IntensityModerate
	case x <= 75:
		return models.IntensityHigh
	default:
		return models.IntensityPeak
	}
}

// ActiveHourCount counts hours with intensity above zero
func ActiveHourCount(data models.HeatmapData) int {
	count := 0
	for hour := 0; hour < HoursPerDay; hour++ {
		if data.Intensity(hour) > 0 {
			count++
		}
	}
	return count
}

// AverageIntensity is the mean over all 24 hours, missing hours counting as 0
func AverageIntensity(data models.HeatmapData) float64 {
	sum := 0.0
	for hour := 0; hour < HoursPerDay; hour++ {
		sum += data.Intensity(hour)
	}
	return sum / HoursPerDay
}

// WorkPattern names the part of day of the peak hour
func WorkPattern(peakHour int) models.WorkPattern {
	switch {
	case peakHour >= 6 && peakHour < 12:
		return models.PatternMorning
	case peakHour >= 12 && peakHour < 18:
		return models.PatternAfternoon
	case peakHour >= 18 && peakHour < 22:
		return models.PatternEvening
	default:
		return models.PatternNight
	}
}

// BuildHeatmapView fills all 24 cells and the summary figures
func BuildHeatmapView(data *models.HeatmapData) models.HeatmapView {
	if data == nil {
		data = &models.HeatmapData{}
	}

	view := models.HeatmapView{
		Username:         data.Username,
		Date:             data.Date,
		Cells:            make([]models.HeatmapCell, 0, HoursPerDay),
		PeakHour:         data.PeakHour,
		PeakHourLabel:    utils.FormatHour(data.PeakHour),
		PeakIntensity:    utils.RoundTo(data.Intensity(data.PeakHour), 1),
		ActiveHourCount:  ActiveHourCount(*data),
		AverageIntensity: utils.RoundTo(AverageIntensity(*data), 1),
		WorkPattern:      WorkPattern(data.PeakHour),
	}

	for hour := 0; hour < HoursPerDay; hour++ {
		intensity := data.Intensity(hour)
		bucket := ClassifyIntensity(intensity)
		view.Cells = append(view.Cells, models.HeatmapCell{
			Hour:      hour,
			HourLabel: utils.FormatHour(hour),
			Intensity: intensity,
			Bucket:    bucket,
			Style:     bucket.Style(),
		})
	}

	return view
}
