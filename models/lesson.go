package models

// LessonType identifies the kind of driving lesson being booked.
type LessonType string

const (
	LessonPractice LessonType = "practice"
	LessonRoadTest LessonType = "roadtest"
)

// Valid reports whether lt is a known lesson type.
func (lt LessonType) Valid() bool {
	return lt == LessonPractice || lt == LessonRoadTest
}

// DurationOption is an immutable catalog entry for an allowed lesson length.
type DurationOption struct {
	Minutes int    `json:"minutes"`
	Label   string `json:"label"`
}
