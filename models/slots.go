package models

// TimeSlot represents one bookable window on a given date.
// Start and End are minutes from midnight (e.g., 480 for 8:00 AM); StartTime
// and EndTime are the "HH:MM" display strings derived from them. The ID is a
// deterministic composite of date and start time ("<date>-<HH:MM>") so the
// same (date, duration, start) always yields the same identity.
type TimeSlot struct {
	ID        string `bson:"id" json:"id"`
	Date      string `bson:"date" json:"date"` // "2006-01-02"
	Start     int    `bson:"start" json:"start"`
	End       int    `bson:"end" json:"end"`
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
	Available bool   `bson:"available" json:"available"`
}
