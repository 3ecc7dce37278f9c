package booking

import (
	"fmt"

	"blissdrive/models"
)

// DurationOptions is the fixed set of allowed lesson lengths. Defined at
// startup, never mutated.
var DurationOptions = []models.DurationOption{
	{Minutes: 60, Label: "1 hour"},
	{Minutes: 90, Label: "1.5 hours"},
	{Minutes: 120, Label: "2 hours"},
	{Minutes: 150, Label: "2.5 hours"},
	{Minutes: 180, Label: "3 hours"},
}

// hourlyRates maps every lesson type to its fixed hourly rate. The table is
// not editable at runtime; a rate change is a deploy/config concern.
var hourlyRates = map[models.LessonType]float64{
	models.LessonPractice: 60,
	models.LessonRoadTest: 98,
}

// HourlyRates returns a copy of the rate table keyed by lesson type.
func HourlyRates() map[models.LessonType]float64 {
	rates := make(map[models.LessonType]float64, len(hourlyRates))
	for lt, rate := range hourlyRates {
		rates[lt] = rate
	}
	return rates
}

// ValidDuration reports whether minutes is one of the catalog values.
func ValidDuration(minutes int) bool {
	for _, opt := range DurationOptions {
		if opt.Minutes == minutes {
			return true
		}
	}
	return false
}

// HourlyRate returns the fixed hourly rate for a lesson type.
func HourlyRate(lt models.LessonType) (float64, error) {
	rate, ok := hourlyRates[lt]
	if !ok {
		return 0, fmt.Errorf("unknown lesson type %q", lt)
	}
	return rate, nil
}

// EstimatePrice computes the up-front price estimate for a lesson:
// rate x minutes / 60, in full precision.
func EstimatePrice(lt models.LessonType, minutes int) (float64, error) {
	rate, err := HourlyRate(lt)
	if err != nil {
		return 0, err
	}
	return rate * float64(minutes) / 60, nil
}
